package check

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide_InclusiveBounds(t *testing.T) {
	res := BoundaryResult{Lower: 8.8, Upper: 11.2}

	assert.Equal(t, Pass, Decide(res, 8.8))
	assert.Equal(t, Pass, Decide(res, 10))
	assert.Equal(t, Pass, Decide(res, 11.2))
	assert.Equal(t, Fail, Decide(res, 8.79))
	assert.Equal(t, Fail, Decide(res, 11.21))
}

func TestDecide_ZeroWidthInterval(t *testing.T) {
	res := BoundaryResult{Lower: 10, Upper: 10}

	assert.Equal(t, Pass, Decide(res, 10))
	assert.Equal(t, Fail, Decide(res, 10.0000001))
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "PASS", Pass.String())
	assert.Equal(t, "FAIL", Fail.String())
}

func TestBuildRecord_FieldOrder(t *testing.T) {
	res := BoundaryResult{
		Lower:          8.8,
		Upper:          11.2,
		Centre:         10,
		Dispersion:     1.2,
		DispersionName: "data error",
		SampleSize:     5,
		Params:         []Field{{Name: "boost", Value: 1.0}},
	}
	record := BuildRecord("response time p99", Fail, StrategyError1, 20, res)

	names := make([]string, 0)
	for _, f := range record.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"description", "result", "method", "value",
		"boost", "data len", "data mean", "data error",
		"lower_boundary", "upper_boundary",
	}, names)

	result, ok := record.Get("result")
	require.True(t, ok)
	assert.Equal(t, "FAIL", result)

	_, ok = record.Get("no_such_field")
	assert.False(t, ok)
}

func TestBuildRecord_NoDispersionField(t *testing.T) {
	res := BoundaryResult{
		Lower:      11.6,
		Upper:      17.4,
		Centre:     14.5,
		SampleSize: 10,
		Params:     []Field{{Name: "perc", Value: 40.0}},
	}
	record := BuildRecord("rps", Pass, StrategyPerc40, 15, res)

	_, ok := record.Get("data stdev")
	assert.False(t, ok)
	_, ok = record.Get("data error")
	assert.False(t, ok)
	mean, ok := record.Get("data mean")
	require.True(t, ok)
	assert.Equal(t, 14.5, mean)
}

func TestDiagnosticRecord_JSONPreservesOrder(t *testing.T) {
	res := BoundaryResult{
		Lower: 1, Upper: 3, Centre: 2, SampleSize: 4,
		Params: []Field{{Name: "perc", Value: 40.0}},
	}
	record := BuildRecord("x", Pass, StrategyPerc40, 2, res)

	raw, err := json.Marshal(record)
	require.NoError(t, err)

	assert.True(t, json.Valid(raw))
	expected := `{"description":"x","result":"PASS","method":"perc_40","value":2,"perc":40,"data len":4,"data mean":2,"lower_boundary":1,"upper_boundary":3}`
	assert.Equal(t, expected, string(raw))
}

func TestBuildErrorRecord(t *testing.T) {
	record := BuildErrorRecord("latency", StrategyTrimStdev, 42, 1, errors.New("insufficient data"))

	result, _ := record.Get("result")
	assert.Equal(t, "ERROR", result)
	msg, ok := record.Get("error")
	require.True(t, ok)
	assert.Contains(t, msg, "insufficient data")

	names := make([]string, 0)
	for _, f := range record.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"description", "result", "method", "value", "data len", "error"}, names)
}
