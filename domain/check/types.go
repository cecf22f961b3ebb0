package check

// StrategyID identifies one named boundary strategy configuration.
// The set is closed: every identifier corresponds to a fixed parameterization
// registered at startup, so diagnostic records stay comparable across runs.
type StrategyID string

const (
	// Standard-deviation family: centre and spread from the trimmed sample.
	StrategyStdev      StrategyID = "stdev"
	StrategyStdev2     StrategyID = "stdev_2"
	StrategyTrimStdev  StrategyID = "trim_stdev"
	StrategyTrimStdev2 StrategyID = "trim_stdev_2"

	// Mean-absolute-error family: spread is the mean absolute deviation.
	StrategyError1 StrategyID = "error_1"
	StrategyError2 StrategyID = "error_2"
	StrategyError3 StrategyID = "error_3"

	// Percentage-of-mean family: fixed relative band, ignores dispersion.
	StrategyPerc40 StrategyID = "perc_40"
	StrategyPerc60 StrategyID = "perc_60"
	// StrategyPerc100 historically shipped with a width of 60, not 100.
	// It is kept as an alias of perc_60's width because downstream result
	// logs refer to it by this name.
	StrategyPerc100 StrategyID = "perc_100"

	// Trimmed min/max family: bounds anchored to trimmed extremes.
	StrategyMinMax71 StrategyID = "min_max_7_1"
	StrategyMinMax72 StrategyID = "min_max_7_2"
)

// Verdict is the outcome of judging one candidate value against one
// boundary interval. Membership is inclusive on both ends.
type Verdict bool

const (
	Pass Verdict = true
	Fail Verdict = false
)

func (v Verdict) String() string {
	if v {
		return "PASS"
	}
	return "FAIL"
}

// BoundaryResult holds the acceptance interval computed by one strategy
// together with the statistics it was derived from. Produced fresh per
// invocation and never cached.
type BoundaryResult struct {
	Lower      float64
	Upper      float64
	Centre     float64
	Dispersion float64
	// DispersionName labels Dispersion in diagnostic records
	// ("data stdev", "data error"). Empty when the strategy has no
	// dispersion statistic (percentage and min/max families).
	DispersionName string
	SampleSize     int
	// Params are the configuration parameters the strategy ran with, in
	// the order they should appear in the diagnostic record.
	Params []Field
}

// Decide reports whether value lies within the inclusive boundary interval.
// Boundary-equal values pass.
func Decide(res BoundaryResult, value float64) Verdict {
	return Verdict(res.Lower <= value && value <= res.Upper)
}
