package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "investigation.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadInvestigation_CSV(t *testing.T) {
	path := writeConfig(t, `
sets:
  - measurements.requests.mean
  - measurements.errors.rate
history:
  type: csv
  file: history.csv
current:
  type: status_data
  file: status-data.json
strategies:
  - error_3
  - perc_40
`)

	inv, err := LoadInvestigation(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"measurements.requests.mean", "measurements.errors.rate"}, inv.Sets)
	assert.Equal(t, HistoryTypeCSV, inv.History.Type)
	assert.Equal(t, "history.csv", inv.History.File)
	assert.Equal(t, []string{"error_3", "perc_40"}, inv.Strategies)
}

func TestLoadInvestigation_Elasticsearch(t *testing.T) {
	path := writeConfig(t, `
sets:
  - measurements.rps
history:
  type: elasticsearch
  es_server: http://localhost:9200
  es_index: perf-results
  es_query:
    bool:
      filter:
        - term:
            name.keyword: perf-test
current:
  type: status_data
  file: status-data.json
`)

	inv, err := LoadInvestigation(path)
	require.NoError(t, err)
	assert.Equal(t, HistoryTypeElasticsearch, inv.History.Type)
	assert.Equal(t, "http://localhost:9200", inv.History.ESServer)
	assert.NotNil(t, inv.History.ESQuery["bool"])
	assert.Empty(t, inv.Strategies) // orchestrator falls back to the default set
}

func TestLoadInvestigation_Invalid(t *testing.T) {
	cases := map[string]string{
		"no sets": `
sets: []
history: {type: csv, file: h.csv}
current: {type: status_data, file: s.json}
`,
		"unsupported history type": `
sets: [a]
history: {type: mongodb}
current: {type: status_data, file: s.json}
`,
		"file source without file": `
sets: [a]
history: {type: csv}
current: {type: status_data, file: s.json}
`,
		"elasticsearch without index": `
sets: [a]
history: {type: elasticsearch, es_server: http://localhost:9200}
current: {type: status_data, file: s.json}
`,
		"postgres without test name": `
sets: [a]
history: {type: postgres, database_url: "postgres://x"}
current: {type: status_data, file: s.json}
`,
		"unsupported current type": `
sets: [a]
history: {type: csv, file: h.csv}
current: {type: stdin}
`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadInvestigation(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadInvestigation_MissingFile(t *testing.T) {
	_, err := LoadInvestigation("/no/such/file.yaml")
	assert.Error(t, err)
}
