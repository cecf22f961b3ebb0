package boundary

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"investigator/domain/check"
	"investigator/domain/core"
)

// StdevStrategy bounds the candidate by centre +/- stdev * boost, where both
// the centre and the sample standard deviation come from the trimmed sample.
type StdevStrategy struct {
	id    check.StrategyID
	trim  float64
	boost float64
}

// NewStdevStrategy validates the configuration and returns the strategy.
func NewStdevStrategy(id check.StrategyID, trim, boost float64) (*StdevStrategy, error) {
	if err := validateTrim(string(id), trim); err != nil {
		return nil, err
	}
	if err := validateBoost(string(id), boost); err != nil {
		return nil, err
	}
	return &StdevStrategy{id: id, trim: trim, boost: boost}, nil
}

func (s *StdevStrategy) ID() check.StrategyID { return s.id }

func (s *StdevStrategy) Description() string {
	return fmt.Sprintf("trimmed mean +/- sample stdev * %g (trim=%g)", s.boost, s.trim)
}

// ComputeBounds needs at least 2 values to survive trimming, because the
// sample standard deviation divides by n-1 of the trimmed subset.
func (s *StdevStrategy) ComputeBounds(sample []float64) (check.BoundaryResult, error) {
	trimmed := trimBoth(sample, s.trim)
	if len(trimmed) < 2 {
		return check.BoundaryResult{}, core.NewInsufficientDataError(string(s.id), len(trimmed), 2)
	}

	mean, _ := stats.Mean(trimmed)
	stdev, _ := stats.StandardDeviationSample(trimmed)

	return check.BoundaryResult{
		Lower:          mean - stdev*s.boost,
		Upper:          mean + stdev*s.boost,
		Centre:         mean,
		Dispersion:     stdev,
		DispersionName: "data stdev",
		SampleSize:     len(sample),
		Params: []check.Field{
			{Name: "trim", Value: s.trim},
			{Name: "boost", Value: s.boost},
		},
	}, nil
}
