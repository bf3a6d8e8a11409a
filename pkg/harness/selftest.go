// Package harness runs the dstring acceptance checks and holds the
// configuration shared by the command line tool and the API server.
package harness

import (
	"context"
	"fmt"
	"time"

	"dstring-go/pkg/dstring"
	"dstring-go/pkg/log"
)

// Tiers in the order they run.
const (
	TierAccessors  = "accessors"
	TierAllocation = "allocation"
	TierMutation   = "mutation"
	TierStream     = "stream"
	TierFormat     = "format"
)

// Tiers lists every tier in run order.
var Tiers = []string{TierAccessors, TierAllocation, TierMutation, TierStream, TierFormat}

// Env is what a check runs against. Slot holds the status of the last
// library call, the way a caller without return values would observe it.
type Env struct {
	Alloc dstring.Allocator
	Size  int
	Slot  dstring.Slot
}

// Check is one named acceptance check. Run returns nil when it passes.
type Check struct {
	Tier string
	Name string
	Run  func(env *Env) error
}

// Result is the outcome of one check.
type Result struct {
	Tier     string        `json:"tier"`
	Name     string        `json:"name"`
	Passed   bool          `json:"passed"`
	Status   string        `json:"last_status"`
	Detail   string        `json:"detail,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Report collects every result of a run.
type Report struct {
	BuildInfo string        `json:"build_info"`
	Allocator string        `json:"allocator"`
	Results   []Result      `json:"results"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// OK reports whether every check passed.
func (r *Report) OK() bool { return r.Failed == 0 }

// Options selects what Run exercises.
type Options struct {
	Allocator dstring.Allocator // nil means dstring.DefaultAllocator
	Size      int               // capacity for working strings, 0 means dstring.DefaultSize
	Tiers     []string          // empty means all
}

// OptionsFromConfig maps a Config onto run options.
func OptionsFromConfig(cfg *Config) (Options, error) {
	a, err := cfg.NewAllocator()
	if err != nil {
		return Options{}, err
	}
	return Options{Allocator: a, Size: cfg.DefaultSize}, nil
}

// Run executes the checks of the selected tiers in order. It stops early,
// returning the partial report and ctx.Err(), when ctx is done.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Allocator == nil {
		opts.Allocator = dstring.DefaultAllocator
	}
	if opts.Size <= 0 {
		opts.Size = dstring.DefaultSize
	}
	logger := log.With("harness")
	started := time.Now()

	rep := &Report{Allocator: fmt.Sprintf("%T", opts.Allocator)}
	if info, err := dstring.NewWith(opts.Allocator, 10); err == nil {
		if dstring.BuildInfo(info) == nil {
			rep.BuildInfo = info.String()
		}
		dstring.Free(&info)
	}

	want := map[string]bool{}
	for _, t := range opts.Tiers {
		want[t] = true
	}
	for _, c := range Checks() {
		if len(want) > 0 && !want[c.Tier] {
			continue
		}
		if err := ctx.Err(); err != nil {
			rep.Elapsed = time.Since(started)
			return rep, err
		}
		res := runCheck(c, opts)
		if res.Passed {
			rep.Passed++
			logger.Debug().Str("tier", res.Tier).Str("check", res.Name).Msg("pass")
		} else {
			rep.Failed++
			logger.Warn().Str("tier", res.Tier).Str("check", res.Name).Str("detail", res.Detail).Msg("fail")
		}
		rep.Results = append(rep.Results, res)
	}
	rep.Elapsed = time.Since(started)
	logger.Info().Int("passed", rep.Passed).Int("failed", rep.Failed).
		Dur("elapsed", rep.Elapsed).Str("allocator", rep.Allocator).Msg("self test finished")
	return rep, nil
}

func runCheck(c Check, opts Options) (res Result) {
	env := &Env{Alloc: opts.Allocator, Size: opts.Size}
	res = Result{Tier: c.Tier, Name: c.Name}
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res.Passed = false
			res.Detail = fmt.Sprintf("panic: %v", p)
		}
		res.Duration = time.Since(start)
		res.Status = env.Slot.Message()
	}()
	if err := c.Run(env); err != nil {
		res.Detail = err.Error()
		return res
	}
	res.Passed = true
	return res
}
