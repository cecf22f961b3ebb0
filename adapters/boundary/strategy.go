// Package boundary implements the acceptance-interval strategies used to
// judge whether a measured value is consistent with its historical baseline.
// Each strategy maps a historical sample to an inclusive [lower, upper]
// interval plus the statistics it was derived from. Strategies are stateless
// pure functions behind a common interface and are safe for concurrent use.
package boundary

import (
	"fmt"
	"sort"

	"investigator/domain/check"
	"investigator/domain/core"
)

// Strategy computes a boundary interval from a historical sample.
type Strategy interface {
	ID() check.StrategyID
	Description() string
	ComputeBounds(sample []float64) (check.BoundaryResult, error)
}

// DefaultSet is the strategy set used when the caller does not pick one.
// The production gate runs the mean-absolute-error boost-3 strategy only.
var DefaultSet = []check.StrategyID{check.StrategyError3}

// Registry holds the closed set of named strategy configurations.
type Registry struct {
	strategies map[check.StrategyID]Strategy
	order      []check.StrategyID
}

// NewRegistry builds the registry with every shipped configuration.
// All parameterizations are validated at construction, so an invalid
// configuration can never reach a computation.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[check.StrategyID]Strategy)}
	for _, s := range []Strategy{
		mustStrategy(NewStdevStrategy(check.StrategyStdev, 0, 1)),
		mustStrategy(NewStdevStrategy(check.StrategyStdev2, 0, 2)),
		mustStrategy(NewStdevStrategy(check.StrategyTrimStdev, 0.1, 1)),
		mustStrategy(NewStdevStrategy(check.StrategyTrimStdev2, 0.1, 2)),
		mustStrategy(NewMeanErrorStrategy(check.StrategyError1, 1)),
		mustStrategy(NewMeanErrorStrategy(check.StrategyError2, 2)),
		mustStrategy(NewMeanErrorStrategy(check.StrategyError3, 3)),
		mustStrategy(NewPercentStrategy(check.StrategyPerc40, 40)),
		mustStrategy(NewPercentStrategy(check.StrategyPerc60, 60)),
		// perc_100 has always shipped with perc_60's width. Kept as a
		// faithful alias; fixing it would silently change verdicts for
		// results checked under this name.
		mustStrategy(NewPercentStrategy(check.StrategyPerc100, 60)),
		mustStrategy(NewMinMaxStrategy(check.StrategyMinMax71, 0.07, 1)),
		mustStrategy(NewMinMaxStrategy(check.StrategyMinMax72, 0.07, 2)),
	} {
		r.strategies[s.ID()] = s
		r.order = append(r.order, s.ID())
	}
	return r
}

func mustStrategy(s Strategy, err error) Strategy {
	if err != nil {
		panic(err)
	}
	return s
}

// Get returns the strategy registered under id.
func (r *Registry) Get(id check.StrategyID) (Strategy, error) {
	s, ok := r.strategies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownStrategy, id)
	}
	return s, nil
}

// Resolve maps strategy identifiers to strategies, preserving order.
// An empty input selects DefaultSet.
func (r *Registry) Resolve(ids []check.StrategyID) ([]Strategy, error) {
	if len(ids) == 0 {
		ids = DefaultSet
	}
	out := make([]Strategy, 0, len(ids))
	for _, id := range ids {
		s, err := r.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// IDs returns every registered identifier in registration order.
func (r *Registry) IDs() []check.StrategyID {
	out := make([]check.StrategyID, len(r.order))
	copy(out, r.order)
	return out
}

// trimBoth returns a sorted copy of sample with the lowest and highest
// trim fraction removed from each end. The count removed per end is
// floor(len * trim), matching conventional symmetric trimming.
func trimBoth(sample []float64, trim float64) []float64 {
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)
	cut := int(float64(len(sorted)) * trim)
	if 2*cut >= len(sorted) {
		return nil
	}
	return sorted[cut : len(sorted)-cut]
}

func validateTrim(method string, trim float64) error {
	if trim < 0 || trim >= 0.5 {
		return core.NewConfigurationError(method, "trim", trim)
	}
	return nil
}

func validateBoost(method string, boost float64) error {
	if boost <= 0 {
		return core.NewConfigurationError(method, "boost", boost)
	}
	return nil
}
