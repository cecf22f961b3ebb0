// Package statusdata reads and mutates status-data result documents: the
// JSON documents perf runs publish, holding metadata plus measured values
// under dotted paths like "measurements.requests.mean".
package statusdata

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"investigator/domain/core"
	"investigator/internal/errors"
)

// Document is one status-data result document.
type Document struct {
	data map[string]interface{}
}

// NewDocument wraps already-parsed document data
func NewDocument(data map[string]interface{}) *Document {
	if data == nil {
		data = make(map[string]interface{})
	}
	return &Document{data: data}
}

// Load reads a status-data document from a JSON file
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read status data file %s", path)
	}
	return Parse(raw)
}

// Parse decodes a status-data document from JSON bytes
func Parse(raw []byte) (*Document, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "failed to parse status data document")
	}
	return NewDocument(data), nil
}

// Get returns the value at a dotted path, e.g. "measurements.requests.mean".
func (d *Document) Get(path string) (interface{}, bool) {
	current := interface{}(d.data)
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// GetFloat returns the numeric value at a dotted path.
func (d *Document) GetFloat(path string) (float64, error) {
	raw, ok := d.Get(path)
	if !ok {
		return 0, core.NewVariableNotFoundError(path, "status data document")
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	default:
		return 0, fmt.Errorf("%w: %s is %T", core.ErrNonNumericValue, path, raw)
	}
}

// Set writes value at a dotted path, creating intermediate objects as needed.
func (d *Document) Set(path string, value interface{}) {
	parts := strings.Split(path, ".")
	current := d.data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// AddComment appends an audit comment recording who changed the document,
// when and why. A non-list "comments" field is replaced.
func (d *Document) AddComment(author, text string) {
	comments, _ := d.data["comments"].([]interface{})
	comments = append(comments, map[string]interface{}{
		"author": author,
		"date":   time.Now().UTC().Format(time.RFC3339),
		"text":   text,
	})
	d.data["comments"] = comments
}

// Data returns the underlying document data
func (d *Document) Data() map[string]interface{} {
	return d.data
}

// Bytes encodes the document back to JSON
func (d *Document) Bytes() ([]byte, error) {
	return json.Marshal(d.data)
}
