// Package commands implements cmd/swipe's cobra commands: a pitch-tracking
// root command wrapped around pkg/pitch, plus the `config` subcommand group
// (configcmd.go). The root command has WAV decoding, batch
// processing, and local/S3 I/O as its only ambient concerns (per the
// core's "thin shell" design).
package commands

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/primeharmonic/swipe/cmd/swipe/internal/build"
	appcfg "github.com/primeharmonic/swipe/cmd/swipe/internal/config"
	"github.com/primeharmonic/swipe/internal/applog"
	"github.com/primeharmonic/swipe/pkg/cli"
	"github.com/primeharmonic/swipe/pkg/kv"
	"github.com/primeharmonic/swipe/pkg/pitch"
	"github.com/primeharmonic/swipe/pkg/pitch/cache"
	"github.com/primeharmonic/swipe/pkg/wavio"
)

const appName = "swipe"

var (
	inputPath    string
	outputPath   string
	batchPath    string
	rangeFlag    string
	strengthFlag float64
	timestepFlag float64
	melFlag      bool
	skipUnvoiced bool
	prettyFlag   bool
	jsonFlag     bool
	showVersion  bool
)

var rootCmd = &cobra.Command{
	Use:   "swipe",
	Short: "Monophonic pitch tracking via prime-harmonic SWIPE'",
	Long: `swipe estimates the fundamental frequency of a monophonic WAV
recording at a fixed frame rate, using the SWIPE' (prime-harmonics)
algorithm: multi-resolution STFT, ERB-scaled loudness, prime-harmonic
candidate strength, and sub-bin quadratic refinement.

Examples:
  swipe -i voice.wav -o pitch.txt
  swipe -i voice.wav -r 80:400 -s 0.25 -t 0.01
  cat voice.wav | swipe -m > pitch_mel.txt
  swipe -b jobs.txt -r 100:600`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&inputPath, "input", "i", "", "input WAV file or s3://bucket/key (default stdin)")
	flags.StringVarP(&outputPath, "output", "o", "", "output text file or s3://bucket/key (default stdout)")
	flags.StringVarP(&batchPath, "batch", "b", "", "batch file: each line is 'INPUT OUTPUT'")
	flags.StringVarP(&rangeFlag, "range", "r", "100:600", "pitch range in Hz, MIN:MAX")
	flags.Float64VarP(&strengthFlag, "strength", "s", 0.3, "strength threshold in [0,1]")
	flags.Float64VarP(&timestepFlag, "timestep", "t", 0.001, "output timestep in seconds, >= 0.001")
	flags.BoolVarP(&melFlag, "mel", "m", false, "emit pitch on the Mel scale")
	flags.BoolVarP(&skipUnvoiced, "skip-unvoiced", "n", false, "omit voiceless frames instead of printing them as NaN")
	flags.BoolVar(&prettyFlag, "pretty", false, "render a styled terminal table instead of raw columns")
	flags.BoolVar(&jsonFlag, "json", false, "emit {time, hz, voiced} JSON lines instead of columns")
	flags.BoolVarP(&showVersion, "version", "v", false, "print version information")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, _ []string) error {
	if showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), build.String())
		return nil
	}

	logger := applog.Default()
	ctx := context.Background()

	cfg, err := resolveConfig(cmd, logger)
	if err != nil {
		return err
	}

	opts := outputOptions{mel: melFlag, skipUnvoiced: skipUnvoiced, json: jsonFlag, pretty: prettyFlag}

	if batchPath != "" {
		return runBatch(ctx, batchPath, cfg, opts, logger)
	}
	return runSingle(ctx, inputPath, outputPath, cfg, opts)
}

// resolveConfig builds a pitch.Config from persisted defaults and the
// flags the caller actually set, then applies the shell's warn-and-clamp
// policy: out-of-range strength and timestep are corrected in place with
// a warning rather than aborting; only min/max violations are fatal, and
// those are left for pitch.NewPlan/pitch.Config.Validate to reject.
func resolveConfig(cmd *cobra.Command, logger applog.Logger) (pitch.Config, error) {
	cfg := pitch.DefaultConfig()

	if defaults, err := appcfg.Load(appName); err == nil {
		if defaults.MinHz != 0 {
			cfg.MinHz = defaults.MinHz
		}
		if defaults.MaxHz != 0 {
			cfg.MaxHz = defaults.MaxHz
		}
		if defaults.StrengthThreshold != 0 {
			cfg.StrengthThreshold = defaults.StrengthThreshold
		}
		if defaults.Dt != 0 {
			cfg.Dt = defaults.Dt
		}
	} else {
		logger.Warnf("could not load config defaults: %v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("range") {
		minHz, maxHz, err := parseRange(rangeFlag)
		if err != nil {
			return cfg, err
		}
		cfg.MinHz, cfg.MaxHz = minHz, maxHz
	}
	if flags.Changed("strength") {
		cfg.StrengthThreshold = strengthFlag
	}
	if flags.Changed("timestep") {
		cfg.Dt = timestepFlag
	}

	if cfg.StrengthThreshold < 0 || cfg.StrengthThreshold > 1 {
		clamped := min(max(cfg.StrengthThreshold, 0), 1)
		logger.Warnf("strength threshold %g out of [0,1], clamping to %g", cfg.StrengthThreshold, clamped)
		cfg.StrengthThreshold = clamped
	}
	if cfg.Dt < 0.001 {
		logger.Warnf("timestep %g below minimum, clamping to 0.001", cfg.Dt)
		cfg.Dt = 0.001
	}

	return cfg, nil
}

func parseRange(s string) (minHz, maxHz float64, err error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid range %q: expected MIN:MAX", s)
	}
	minHz, err = strconv.ParseFloat(lo, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range %q: %w", s, err)
	}
	maxHz, err = strconv.ParseFloat(hi, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range %q: %w", s, err)
	}
	return minHz, maxHz, nil
}

func runSingle(ctx context.Context, in, out string, cfg pitch.Config, opts outputOptions) error {
	rc, err := openInput(ctx, in)
	if err != nil {
		return err
	}
	defer rc.Close()

	signal, fs, err := wavio.Decode(rc)
	if err != nil {
		return fmt.Errorf("decode %s: %w", displayName(in), err)
	}

	frames, err := pitch.Track(signal, float64(fs), cfg)
	if err != nil {
		return fmt.Errorf("track %s: %w", displayName(in), err)
	}

	wc, err := openOutput(ctx, out)
	if err != nil {
		return err
	}
	defer wc.Close()

	return writeFrames(wc, frames, opts)
}

// runBatch processes each "INPUT OUTPUT" line of batchPath, sharing one
// Plan cache across every line since a batch run typically uses the same
// pitch range for every file (see pkg/pitch/cache).
func runBatch(ctx context.Context, batchPath string, cfg pitch.Config, opts outputOptions, logger applog.Logger) error {
	rc, err := openInput(ctx, batchPath)
	if err != nil {
		return err
	}
	defer rc.Close()

	paths, err := cli.NewPaths(appName)
	if err != nil {
		return fmt.Errorf("resolve cache dir: %w", err)
	}
	if err := paths.EnsureCacheDir(); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	store, err := kv.NewBadger(kv.BadgerOptions{Dir: paths.CachePath("plans")})
	if err != nil {
		return fmt.Errorf("open plan cache: %w", err)
	}
	planCache := cache.New(store)
	defer planCache.Close()

	var lastErr error
	processed, failed := 0, 0
	scanner := bufio.NewScanner(rc)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		in, out, ok := strings.Cut(line, " ")
		if !ok {
			logger.Errorf("malformed batch line %q, expected 'INPUT OUTPUT'", line)
			lastErr = fmt.Errorf("malformed batch line %q", line)
			failed++
			continue
		}
		out = strings.TrimSpace(out)

		if err := runBatchLine(ctx, strings.TrimSpace(in), out, cfg, opts, planCache); err != nil {
			logger.Errorf("%s: %v", in, err)
			lastErr = err
			failed++
			continue
		}
		logger.Infof("processed %s -> %s", in, out)
		processed++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read batch file: %w", err)
	}
	logger.Infof("batch done: %d processed, %d failed", processed, failed)
	return lastErr
}

func runBatchLine(ctx context.Context, in, out string, cfg pitch.Config, opts outputOptions, planCache *cache.PlanCache) error {
	rc, err := openInput(ctx, in)
	if err != nil {
		return err
	}
	defer rc.Close()

	signal, fs, err := wavio.Decode(rc)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	plan, err := planCache.Get(ctx, float64(fs), cfg)
	if err != nil {
		return fmt.Errorf("build plan: %w", err)
	}
	frames := pitch.TrackWithPlan(signal, float64(fs), plan)

	wc, err := openOutput(ctx, out)
	if err != nil {
		return err
	}
	defer wc.Close()

	return writeFrames(wc, frames, opts)
}

func displayName(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}
