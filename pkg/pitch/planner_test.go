package pitch

import (
	"math"
	"testing"
)

func testPlan(t *testing.T) (*Plan, float64) {
	t.Helper()
	fs := 16000.0
	cfg := DefaultConfig()
	plan, err := NewPlan(fs, cfg)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	return plan, fs
}

func TestPlanGridMonotonicity(t *testing.T) {
	plan, _ := testPlan(t)

	for i := 1; i < len(plan.Pc); i++ {
		if plan.Pc[i-1] >= plan.Pc[i] {
			t.Fatalf("pc not strictly increasing at i=%d: %g >= %g", i, plan.Pc[i-1], plan.Pc[i])
		}
	}
	for i := 1; i < len(plan.FERBs); i++ {
		if plan.FERBs[i-1] >= plan.FERBs[i] {
			t.Fatalf("fERBs not strictly increasing at i=%d", i)
		}
	}
	for i := 1; i < len(plan.Ws); i++ {
		if plan.Ws[i-1] <= plan.Ws[i] {
			t.Fatalf("ws not strictly decreasing at i=%d", i)
		}
		if plan.Ws[i-1]&1 != 0 {
			t.Fatalf("ws[%d]=%d is not even", i-1, plan.Ws[i-1])
		}
	}
	for _, w := range plan.Ws {
		if w&(w-1) != 0 {
			t.Errorf("ws=%d is not a power of two", w)
		}
	}
}

func TestPlanCoverage(t *testing.T) {
	plan, _ := testPlan(t)
	wsCount := len(plan.Ws)
	dMax := plan.D[len(plan.D)-1]

	for i, d := range plan.D {
		var sum float64
		covered := false
		for n := 0; n < wsCount; n++ {
			mu, ok := candidateWeight(n, wsCount, d, dMax)
			if ok && mu > 0 {
				covered = true
				sum += mu
			}
		}
		if !covered {
			t.Fatalf("candidate %d (d=%g) has no covering window", i, d)
		}
		if d >= 1 && d <= float64(wsCount-1) {
			if math.Abs(sum-1) > 1e-9 {
				t.Errorf("candidate %d (d=%g) interior weight sum = %g, want 1", i, d, sum)
			}
		}
	}
}

func TestPlanWindowSizesAnchoredToNyquist16(t *testing.T) {
	// fs=16000, min=100: the anchor is 16*nyquist = 128000, so
	// 128000/100 = 1280 rounds to 2^10 and the largest window is 1024
	// samples (6.4 periods of the minimum pitch). With max=600 the
	// windows halve down to 128.
	plan, _ := testPlan(t)

	if plan.Ws[0] != 1024 {
		t.Fatalf("ws[0] = %d, want 1024", plan.Ws[0])
	}
	if len(plan.Ws) != 4 {
		t.Fatalf("len(ws) = %d, want 4", len(plan.Ws))
	}
	if last := plan.Ws[len(plan.Ws)-1]; last != 128 {
		t.Fatalf("ws[last] = %d, want 128", last)
	}
}

func TestPlanDegenerateSingleWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinHz, cfg.MaxHz = 400, 450 // narrow range within one octave bin
	fs := 16000.0
	plan, err := NewPlan(fs, cfg)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if len(plan.Ws) < 1 {
		t.Fatalf("expected at least one window, got %d", len(plan.Ws))
	}
}

func TestConfigValidateClampsNyquist(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxHz = 20000
	fs := 16000.0
	if err := cfg.Validate(fs); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.MaxHz != fs/2 {
		t.Errorf("MaxHz = %g, want clamped to %g", cfg.MaxHz, fs/2)
	}
}

func TestConfigValidateRejectsBadParams(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		fs   float64
	}{
		{"bad sample rate", DefaultConfig(), 0},
		{"min too low", Config{MinHz: 0.5, MaxHz: 600, Dt: 0.001}, 16000},
		{"range too narrow", Config{MinHz: 100, MaxHz: 100.5, Dt: 0.001}, 16000},
		{"timestep too small", Config{MinHz: 100, MaxHz: 600, Dt: 0.0001}, 16000},
	}
	for _, c := range cases {
		cfg := c.cfg
		if err := cfg.Validate(c.fs); err == nil {
			t.Errorf("%s: expected error, got nil", c.name)
		}
	}
}
