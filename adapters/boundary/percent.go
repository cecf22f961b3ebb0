package boundary

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"investigator/domain/check"
	"investigator/domain/core"
)

// PercentStrategy bounds the candidate by a fixed relative band around the
// mean: mean +/- mean * (perc / 100 / 2). Sample dispersion is ignored
// entirely. Callers use this on strictly-positive metrics; a negative mean
// arithmetically inverts which bound is lower, and the formula is applied
// unchanged.
type PercentStrategy struct {
	id   check.StrategyID
	perc float64
}

// NewPercentStrategy validates the configuration and returns the strategy.
func NewPercentStrategy(id check.StrategyID, perc float64) (*PercentStrategy, error) {
	if perc <= 0 {
		return nil, core.NewConfigurationError(string(id), "perc", perc)
	}
	return &PercentStrategy{id: id, perc: perc}, nil
}

func (s *PercentStrategy) ID() check.StrategyID { return s.id }

func (s *PercentStrategy) Description() string {
	return fmt.Sprintf("mean +/- %g%% of mean", s.perc/2)
}

func (s *PercentStrategy) ComputeBounds(sample []float64) (check.BoundaryResult, error) {
	if len(sample) < 1 {
		return check.BoundaryResult{}, core.NewInsufficientDataError(string(s.id), len(sample), 1)
	}

	mean, _ := stats.Mean(sample)
	halfWidth := mean * (s.perc / 100 / 2)

	return check.BoundaryResult{
		Lower:      mean - halfWidth,
		Upper:      mean + halfWidth,
		Centre:     mean,
		SampleSize: len(sample),
		Params: []check.Field{
			{Name: "perc", Value: s.perc},
		},
	}, nil
}
