package boundary

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"investigator/domain/check"
	"investigator/domain/core"
)

// MeanErrorStrategy bounds the candidate by mean +/- error * boost, where
// error is the mean absolute deviation from the mean of the full sample.
// A constant or single-element sample yields a zero-width interval, i.e. an
// exact-match requirement. That is intentional.
type MeanErrorStrategy struct {
	id    check.StrategyID
	boost float64
}

// NewMeanErrorStrategy validates the configuration and returns the strategy.
func NewMeanErrorStrategy(id check.StrategyID, boost float64) (*MeanErrorStrategy, error) {
	if err := validateBoost(string(id), boost); err != nil {
		return nil, err
	}
	return &MeanErrorStrategy{id: id, boost: boost}, nil
}

func (s *MeanErrorStrategy) ID() check.StrategyID { return s.id }

func (s *MeanErrorStrategy) Description() string {
	return fmt.Sprintf("mean +/- mean absolute error * %g", s.boost)
}

func (s *MeanErrorStrategy) ComputeBounds(sample []float64) (check.BoundaryResult, error) {
	if len(sample) < 1 {
		return check.BoundaryResult{}, core.NewInsufficientDataError(string(s.id), len(sample), 1)
	}

	mean, _ := stats.Mean(sample)
	deviations := make([]float64, len(sample))
	for i, v := range sample {
		deviations[i] = math.Abs(v - mean)
	}
	meanError := floats.Sum(deviations) / float64(len(deviations))

	return check.BoundaryResult{
		Lower:          mean - meanError*s.boost,
		Upper:          mean + meanError*s.boost,
		Centre:         mean,
		Dispersion:     meanError,
		DispersionName: "data error",
		SampleSize:     len(sample),
		Params: []check.Field{
			{Name: "boost", Value: s.boost},
		},
	}, nil
}
