package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"investigator/adapters/statusdata"
	"investigator/domain/core"
	"investigator/internal"
	"investigator/internal/errors"
	"investigator/ports"
)

// Hit is one search hit: the index-assigned document id plus the source
// document.
type Hit struct {
	ID       string
	Document *statusdata.Document
}

// ESClient is a thin Elasticsearch search/update client. Only the two calls
// the investigator needs are implemented; there is no retry logic because
// the propagation policy is to surface every failure to the caller.
type ESClient struct {
	server     string
	index      string
	httpClient *http.Client
	log        *internal.Logger
}

// NewESClient creates a client for one index
func NewESClient(server, index string, logger *internal.Logger) *ESClient {
	return &ESClient{
		server:     server,
		index:      index,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logger,
	}
}

// Search runs a query against the index, sorted by "started" descending
func (c *ESClient) Search(ctx context.Context, query map[string]interface{}, size int) ([]Hit, error) {
	body := map[string]interface{}{
		"query": query,
		"sort": map[string]interface{}{
			"started": map[string]interface{}{"order": "desc"},
		},
		"size": size,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode search query")
	}

	url := fmt.Sprintf("%s/%s/_search", c.server, c.index)
	c.log.Debug("querying ES with url=%s and body=%s", url, payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build search request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.SourceError(err, "search request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.SourceError(fmt.Errorf("unexpected status %s", resp.Status), "search request failed")
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string                 `json:"_id"`
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrap(err, "failed to decode search response")
	}

	hits := make([]Hit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hits = append(hits, Hit{ID: h.ID, Document: statusdata.NewDocument(h.Source)})
	}
	return hits, nil
}

// SearchByField runs a term-filter query on one keyword field
func (c *ESClient) SearchByField(ctx context.Context, field, value string, size int) ([]Hit, error) {
	query := map[string]interface{}{
		"bool": map[string]interface{}{
			"filter": []interface{}{
				map[string]interface{}{
					"term": map[string]interface{}{field: value},
				},
			},
		},
	}
	return c.Search(ctx, query, size)
}

// UpdateDocument writes a modified source document back under its id
func (c *ESClient) UpdateDocument(ctx context.Context, esID string, doc *statusdata.Document) error {
	payload, err := doc.Bytes()
	if err != nil {
		return errors.Wrap(err, "failed to encode document")
	}

	url := fmt.Sprintf("%s/%s/_doc/%s", c.server, c.index, esID)
	c.log.Debug("updating ES document url=%s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build update request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.SourceError(err, "update request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.SourceError(fmt.Errorf("unexpected status %s", resp.Status), "update request failed")
	}
	return nil
}

// ElasticsearchSource loads historical samples from result documents in a
// search index. The query is executed once per run and shared by every
// variable lookup; values come back oldest-first so they line up with the
// flat-file loaders.
type ElasticsearchSource struct {
	client *ESClient
	query  map[string]interface{}
	size   int

	once    sync.Once
	hits    []Hit
	loadErr error
}

// NewElasticsearchSource creates a history source over one search query
func NewElasticsearchSource(client *ESClient, query map[string]interface{}, size int) *ElasticsearchSource {
	if query == nil {
		query = map[string]interface{}{"match_all": map[string]interface{}{}}
	}
	return &ElasticsearchSource{client: client, query: query, size: size}
}

// History extracts the variable's dotted field path from every matched
// document that carries it
func (s *ElasticsearchSource) History(ctx context.Context, variable string) ([]float64, error) {
	s.once.Do(func() {
		s.hits, s.loadErr = s.client.Search(ctx, s.query, s.size)
	})
	if s.loadErr != nil {
		return nil, s.loadErr
	}

	var values []float64
	// Hits are sorted newest-first; walk backwards for chronological order.
	for i := len(s.hits) - 1; i >= 0; i-- {
		value, err := s.hits[i].Document.GetFloat(variable)
		if err != nil {
			continue
		}
		values = append(values, value)
	}

	if len(values) == 0 {
		return nil, core.NewVariableNotFoundError(variable, "elasticsearch index")
	}
	return values, nil
}

var _ ports.HistorySource = (*ElasticsearchSource)(nil)
