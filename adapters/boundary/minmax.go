package boundary

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"investigator/domain/check"
	"investigator/domain/core"
)

// MinMaxStrategy anchors the bounds to the observed extremes of the trimmed
// sample, widened by boost:
//
//	lower = mean - (mean - min(trimmed)) * boost
//	upper = mean + (max(trimmed) - mean) * boost
//
// The centre is the mean of the FULL, untrimmed sample while the extremes
// come from the trimmed one. The asymmetry is historical behavior that
// downstream consumers depend on; do not "fix" it to a trimmed mean.
type MinMaxStrategy struct {
	id    check.StrategyID
	trim  float64
	boost float64
}

// NewMinMaxStrategy validates the configuration and returns the strategy.
func NewMinMaxStrategy(id check.StrategyID, trim, boost float64) (*MinMaxStrategy, error) {
	if err := validateTrim(string(id), trim); err != nil {
		return nil, err
	}
	if err := validateBoost(string(id), boost); err != nil {
		return nil, err
	}
	return &MinMaxStrategy{id: id, trim: trim, boost: boost}, nil
}

func (s *MinMaxStrategy) ID() check.StrategyID { return s.id }

func (s *MinMaxStrategy) Description() string {
	return fmt.Sprintf("untrimmed mean anchored to trimmed min/max * %g (trim=%g)", s.boost, s.trim)
}

func (s *MinMaxStrategy) ComputeBounds(sample []float64) (check.BoundaryResult, error) {
	if len(sample) < 1 {
		return check.BoundaryResult{}, core.NewInsufficientDataError(string(s.id), len(sample), 1)
	}

	trimmed := trimBoth(sample, s.trim)
	if len(trimmed) == 0 {
		return check.BoundaryResult{}, core.NewInsufficientDataError(string(s.id), 0, 1)
	}

	mean, _ := stats.Mean(sample)
	min, _ := stats.Min(trimmed)
	max, _ := stats.Max(trimmed)

	return check.BoundaryResult{
		Lower:      mean - (mean-min)*s.boost,
		Upper:      mean + (max-mean)*s.boost,
		Centre:     mean,
		SampleSize: len(sample),
		Params: []check.Field{
			{Name: "trim", Value: s.trim},
			{Name: "boost", Value: s.boost},
		},
	}, nil
}
