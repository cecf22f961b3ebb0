package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investigator/domain/core"
	"investigator/internal"
)

// fake index serving three result documents, newest first
func newFakeES(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/perf-results/_search", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "query")
		assert.Contains(t, body, "sort")

		response := map[string]interface{}{
			"hits": map[string]interface{}{
				"hits": []interface{}{
					map[string]interface{}{
						"_id": "doc-3",
						"_source": map[string]interface{}{
							"started":      "2026-08-03T00:00:00Z",
							"measurements": map[string]interface{}{"rps": 1150.0},
						},
					},
					map[string]interface{}{
						"_id": "doc-2",
						"_source": map[string]interface{}{
							"started":      "2026-08-02T00:00:00Z",
							"measurements": map[string]interface{}{"rps": 1201.0},
						},
					},
					map[string]interface{}{
						"_id": "doc-1",
						"_source": map[string]interface{}{
							"started": "2026-08-01T00:00:00Z",
							// no rps measurement in the oldest run
							"measurements": map[string]interface{}{},
						},
					},
				},
			},
		}
		json.NewEncoder(w).Encode(response)
	})
	mux.HandleFunc("/perf-results/_doc/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestElasticsearchSource_History(t *testing.T) {
	server := newFakeES(t)
	client := NewESClient(server.URL, "perf-results", internal.NewLogger(internal.LogLevelError))
	source := NewElasticsearchSource(client, nil, 50)

	values, err := source.History(context.Background(), "measurements.rps")
	require.NoError(t, err)
	// hits arrive newest-first; values come back oldest-first, and the run
	// missing the field is skipped
	assert.Equal(t, []float64{1201, 1150}, values)

	_, err = source.History(context.Background(), "measurements.absent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrVariableNotFound))
}

func TestESClient_SearchByField(t *testing.T) {
	server := newFakeES(t)
	client := NewESClient(server.URL, "perf-results", internal.NewLogger(internal.LogLevelError))

	hits, err := client.SearchByField(context.Background(), "name.keyword", "perf-test", 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "doc-3", hits[0].ID)

	started, ok := hits[0].Document.Get("started")
	require.True(t, ok)
	assert.Equal(t, "2026-08-03T00:00:00Z", started)
}

func TestESClient_UpdateDocument(t *testing.T) {
	server := newFakeES(t)
	client := NewESClient(server.URL, "perf-results", internal.NewLogger(internal.LogLevelError))

	hits, err := client.SearchByField(context.Background(), "id.keyword", "run-1", 1)
	require.NoError(t, err)
	require.NotEmpty(t, hits)

	hits[0].Document.Set("result", "PASS")
	err = client.UpdateDocument(context.Background(), hits[0].ID, hits[0].Document)
	assert.NoError(t, err)
}

func TestESClient_SearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewESClient(server.URL, "perf-results", internal.NewLogger(internal.LogLevelError))
	_, err := client.Search(context.Background(), map[string]interface{}{"match_all": map[string]interface{}{}}, 1)
	assert.Error(t, err)
}
