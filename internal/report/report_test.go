package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investigator/adapters/boundary"
	"investigator/app"
	"investigator/domain/check"
	"investigator/internal"
)

func sampleOutcomes(t *testing.T) []VariableOutcome {
	t.Helper()
	svc := app.NewCheckService(boundary.NewRegistry(), internal.NewLogger(internal.LogLevelError))

	value := 10.0
	results, err := svc.Evaluate([]float64{8, 9, 10, 11, 12}, &value, "requests_mean", nil)
	require.NoError(t, err)

	return []VariableOutcome{{Variable: "requests_mean", Value: value, Results: results}}
}

func TestBuildMarkdown(t *testing.T) {
	md := BuildMarkdown("run-1", sampleOutcomes(t))

	assert.True(t, strings.HasPrefix(md, "# Investigation run-1"))
	assert.Contains(t, md, "| Variable | Method | Result | Lower | Value | Upper |")
	assert.Contains(t, md, "| requests_mean | error_3 | PASS |")
	assert.Contains(t, md, "## Diagnostic records")
	assert.Contains(t, md, "- method: error_3")
	assert.Contains(t, md, "- lower_boundary:")
}

func TestBuildMarkdown_ErroredStrategy(t *testing.T) {
	svc := app.NewCheckService(boundary.NewRegistry(), internal.NewLogger(internal.LogLevelError))
	value := 42.0
	results, err := svc.Evaluate([]float64{42}, &value, "single",
		[]check.StrategyID{check.StrategyTrimStdev})
	require.NoError(t, err)

	md := BuildMarkdown("run-2", []VariableOutcome{{Variable: "single", Value: value, Results: results}})

	assert.Contains(t, md, "| single | trim_stdev | ERROR | - | 42.000 | - |")
	assert.Contains(t, md, "- error:")
}

func TestRenderHTML(t *testing.T) {
	html := string(RenderHTML(BuildMarkdown("run-1", sampleOutcomes(t))))

	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "requests_mean")
	assert.Contains(t, html, "<html>")
}
