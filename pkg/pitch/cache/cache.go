// Package cache memoizes pkg/pitch.Plan construction across files that
// share the same sample rate and pitch-range configuration — the common
// case in batch mode (-b), where one INPUT/OUTPUT list typically shares a
// single -r/-s/-t setting across every line.
//
// A Plan is a pure function of (fs, MinHz, MaxHz, Derbs, Dlog2p); building
// one means running a sieve over the candidate range and walking the ERB
// axis, the two most allocation-heavy steps in the planner for large
// candidate counts. Keying a kv.Store by those five numbers and storing
// the planner's derived slices (pkg/pitch.Data) skips that work on every
// cache hit.
package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/primeharmonic/swipe/pkg/kv"
	"github.com/primeharmonic/swipe/pkg/pitch"
)

// PlanCache looks up or builds a pitch.Plan, persisting the planner's
// derived fields in a kv.Store so repeated calls with the same parameters
// skip recomputation.
type PlanCache struct {
	store kv.Store
}

// New wraps a kv.Store (typically a *kv.Badger opened at
// cli.Paths.CachePath("plans")) as a PlanCache.
func New(store kv.Store) *PlanCache {
	return &PlanCache{store: store}
}

// key encodes the five numbers a Plan depends on into a kv.Key. strconv's
// bit-exact FormatFloat ('g', -1) round-trips the float64 without loss, so
// two configs that hash to the same key are guaranteed to produce the same
// Plan.
func key(fs float64, cfg pitch.Config) kv.Key {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return kv.Key{"plan", f(fs), f(cfg.MinHz), f(cfg.MaxHz), f(cfg.Derbs), f(cfg.Dlog2p)}
}

// Get returns a Plan for (fs, cfg), building and storing it on a cache
// miss. cfg is validated by the underlying pitch.NewPlan/pitch.FromData
// call in both paths, so callers see the same errors as calling
// pitch.NewPlan directly.
func (c *PlanCache) Get(ctx context.Context, fs float64, cfg pitch.Config) (*pitch.Plan, error) {
	k := key(fs, cfg)

	if raw, err := c.store.Get(ctx, k); err == nil {
		var d pitch.Data
		if unmarshalErr := msgpack.Unmarshal(raw, &d); unmarshalErr == nil {
			if plan, planErr := pitch.FromData(fs, cfg, d); planErr == nil {
				return plan, nil
			}
		}
		// A corrupt or stale cache entry falls through to a full rebuild
		// rather than failing the caller.
	}

	plan, err := pitch.NewPlan(fs, cfg)
	if err != nil {
		return nil, err
	}

	raw, err := msgpack.Marshal(plan.Data())
	if err != nil {
		return nil, fmt.Errorf("cache: encode plan: %w", err)
	}
	if err := c.store.Set(ctx, k, raw); err != nil {
		return nil, fmt.Errorf("cache: store plan: %w", err)
	}

	return plan, nil
}

// Purge drops every cached plan, returning how many entries were
// removed. Use after changing the on-disk encoding or to reclaim the
// cache directory.
func (c *PlanCache) Purge(ctx context.Context) (int, error) {
	return c.store.Purge(ctx, kv.Key{"plan"})
}

// Close releases the underlying store.
func (c *PlanCache) Close() error {
	return c.store.Close()
}
