package app

import (
	"investigator/adapters/boundary"
	"investigator/domain/check"
	"investigator/domain/core"
	"investigator/internal"
)

// Result is the outcome of running one strategy against one candidate value.
// When Err is set the strategy failed before producing bounds (insufficient
// data) and Record carries the error; Verdict is Fail in that case but the
// failure is distinguishable from a normal FAIL via Err.
type Result struct {
	Strategy check.StrategyID
	Verdict  check.Verdict
	Record   check.DiagnosticRecord
	Err      error
}

// CheckService orchestrates boundary strategies: it resolves the requested
// strategy set, runs each against the candidate value and packages verdicts
// with diagnostic records, one per strategy, in request order. No voting
// across strategies happens here; combining verdicts is caller policy.
type CheckService struct {
	registry *boundary.Registry
	log      *internal.Logger
}

// NewCheckService creates the orchestrator
func NewCheckService(registry *boundary.Registry, logger *internal.Logger) *CheckService {
	return &CheckService{registry: registry, log: logger}
}

// Registry exposes the strategy registry for listing endpoints
func (s *CheckService) Registry() *boundary.Registry {
	return s.registry
}

// Evaluate judges value against the history sample with every strategy in
// ids (DefaultSet when empty). A nil value is a contract violation: callers
// must reject absent values at the loader boundary.
//
// One strategy running out of data does not stop the others; its Result
// carries the error and an error record instead of bounds.
func (s *CheckService) Evaluate(sample []float64, value *float64, description string, ids []check.StrategyID) ([]Result, error) {
	if value == nil {
		return nil, core.ErrValueMissing
	}

	strategies, err := s.registry.Resolve(ids)
	if err != nil {
		return nil, err
	}

	s.log.Debug("evaluating %q: data=%v value=%v strategies=%v", description, sample, *value, ids)

	results := make([]Result, 0, len(strategies))
	for _, strategy := range strategies {
		res, err := strategy.ComputeBounds(sample)
		if err != nil {
			s.log.Warn("%s errored for %q: %v", strategy.ID(), description, err)
			results = append(results, Result{
				Strategy: strategy.ID(),
				Verdict:  check.Fail,
				Record:   check.BuildErrorRecord(description, strategy.ID(), *value, len(sample), err),
				Err:      err,
			})
			continue
		}

		verdict := check.Decide(res, *value)
		s.log.Info("%s value %v returned %s (boundaries %.3f--%.3f)",
			strategy.ID(), *value, verdict, res.Lower, res.Upper)

		results = append(results, Result{
			Strategy: strategy.ID(),
			Verdict:  verdict,
			Record:   check.BuildRecord(description, verdict, strategy.ID(), *value, res),
		})
	}

	return results, nil
}

// Verdicts extracts the ordered verdict sequence from results
func Verdicts(results []Result) []check.Verdict {
	out := make([]check.Verdict, len(results))
	for i, r := range results {
		out[i] = r.Verdict
	}
	return out
}

// AllPassed reports whether every strategy passed and none errored
func AllPassed(results []Result) bool {
	for _, r := range results {
		if r.Err != nil || r.Verdict == check.Fail {
			return false
		}
	}
	return len(results) > 0
}
