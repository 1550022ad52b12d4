package pitch

import "math"

// Plan holds everything the loudness and strength stages need that depends
// only on (fs, min, max, dt) and the tunable constants in Config — never on
// the signal itself. Building it once and reusing it across files with the
// same parameters is what pkg/pitch/cache memoizes.
type Plan struct {
	cfg Config
	fs  float64

	// Ws are the analysis window sizes, descending powers of two.
	Ws []int

	// Pc is the candidate pitch grid in Hz, log-spaced by cfg.Dlog2p.
	Pc []float64

	// D is each candidate's distance coordinate, its log2 position
	// relative to the largest window, used to assign it to one or two
	// windows with triangular weighting.
	D []float64

	// FERBs is the ERB-spaced frequency axis in Hz.
	FERBs []float64

	// Primes flags harmonic number i+1 as usable (prime, or the forced
	// fundamental slot at index 0). Built at the length needed for the
	// smallest candidate, pc[0]; per-candidate kernel construction uses a
	// prefix of this table.
	Primes []bool
}

// NewPlan derives the planner outputs for a given sample rate and
// configuration. cfg is validated (and MaxHz clamped to Nyquist) as a side
// effect, matching the core's contract that it rejects bad parameters
// itself rather than trusting the caller.
func NewPlan(fs float64, cfg Config) (*Plan, error) {
	if err := cfg.Validate(fs); err != nil {
		return nil, err
	}

	minHz, maxHz := cfg.MinHz, cfg.MaxHz

	// Window sizes are anchored to sixteen times the Nyquist frequency
	// (8*fs): before rounding to a power of two, the largest window spans
	// eight periods of the minimum pitch, halving from there until matched
	// to the maximum.
	nyquist16 := 8 * fs
	log2MinBase := math.Log2(nyquist16 / minHz)
	log2MaxBase := math.Log2(nyquist16 / maxHz)

	wsCount := int(math.Round(log2MinBase-log2MaxBase)) + 1
	if wsCount < 1 {
		wsCount = 1
	}
	w0Exp := int(math.Round(log2MinBase))
	w0 := 1 << w0Exp
	ws := make([]int, wsCount)
	for i := range ws {
		ws[i] = w0 >> i
	}

	log2Min := math.Log2(minHz)
	log2Max := math.Log2(maxHz)
	k := int(math.Ceil((log2Max - log2Min) / cfg.Dlog2p))
	if k < 1 {
		k = 1
	}
	pc := make([]float64, k)
	d := make([]float64, k)
	log2ws0 := math.Log2(nyquist16 / float64(ws[0]))
	for i := 0; i < k; i++ {
		log2p := log2Min + float64(i)*cfg.Dlog2p
		pc[i] = math.Pow(2, log2p)
		d[i] = 1 + log2p - log2ws0
	}

	erbMin := hzToERB(minHz / 4)
	erbMax := hzToERB(fs / 2)
	erbLen := int(math.Ceil((erbMax - erbMin) / cfg.Derbs))
	if erbLen < 1 {
		erbLen = 1
	}
	fERBs := make([]float64, erbLen)
	for i := range fERBs {
		fERBs[i] = erbToHz(erbMin + float64(i)*cfg.Derbs)
	}

	fERBsMax := fERBs[len(fERBs)-1]
	primeTableLen := int(math.Floor(fERBsMax/pc[0] - 0.75))
	ps := primeTable(primeTableLen, true)

	return &Plan{
		cfg:    cfg,
		fs:     fs,
		Ws:     ws,
		Pc:     pc,
		D:      d,
		FERBs:  fERBs,
		Primes: ps,
	}, nil
}

// OutputFrames returns the pitch-vector length for n samples at the
// plan's configured timestep.
func (p *Plan) OutputFrames(n int) int {
	return int(math.Ceil((float64(n) / p.fs) / p.cfg.Dt))
}

// harmonicCutoff returns the largest harmonic number usable for candidate
// frequency pcHz: floor(fERBsMax/pcHz - 0.75), the highest harmonic whose
// peak band still fits under the top of the ERB axis.
func (p *Plan) harmonicCutoff(pcHz float64) int {
	fERBsMax := p.FERBs[len(p.FERBs)-1]
	return int(math.Floor(fERBsMax/pcHz - 0.75))
}

// Data returns the cacheable snapshot of the planner's computed fields —
// everything NewPlan derives from (fs, cfg) except cfg and fs themselves.
// pkg/pitch/cache round-trips this through msgpack so repeated
// TrackWithPlan runs with the same parameters skip the sieve and ERB-axis
// construction.
type Data struct {
	Ws     []int
	Pc     []float64
	D      []float64
	FERBs  []float64
	Primes []bool
}

// Data extracts p's cacheable fields.
func (p *Plan) Data() Data {
	return Data{Ws: p.Ws, Pc: p.Pc, D: p.D, FERBs: p.FERBs, Primes: p.Primes}
}

// FromData rebuilds a Plan from a previously cached Data, validating cfg
// against fs exactly as NewPlan does. Use this instead of NewPlan when a
// cache lookup already has the derived fields for this (fs, cfg) pair.
func FromData(fs float64, cfg Config, d Data) (*Plan, error) {
	if err := cfg.Validate(fs); err != nil {
		return nil, err
	}
	return &Plan{
		cfg:    cfg,
		fs:     fs,
		Ws:     d.Ws,
		Pc:     d.Pc,
		D:      d.D,
		FERBs:  d.FERBs,
		Primes: d.Primes,
	}, nil
}
