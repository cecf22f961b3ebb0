package check

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Field is one named entry in a DiagnosticRecord.
type Field struct {
	Name  string
	Value interface{}
}

// DiagnosticRecord is an ordered sequence of named fields describing one
// strategy invocation: description, verdict, method, parameters, statistics
// and both bounds. Field order is part of the contract - downstream log
// consumers parse records positionally - so the record is a slice, not a map.
// Records are built once and never mutated afterwards.
type DiagnosticRecord struct {
	fields []Field
}

// Fields returns the record's fields in build order.
func (r DiagnosticRecord) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Get returns the value of the named field, if present.
func (r DiagnosticRecord) Get(name string) (interface{}, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON renders the record as a JSON object with fields in build order.
func (r DiagnosticRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r DiagnosticRecord) String() string {
	parts := make([]string, len(r.fields))
	for i, f := range r.fields {
		parts[i] = fmt.Sprintf("%s=%v", f.Name, f.Value)
	}
	return strings.Join(parts, ", ")
}

// BuildRecord assembles the diagnostic record for one completed strategy run.
// Field order: description, result, method, value, parameters, data len,
// data mean, dispersion (when the strategy has one), lower_boundary,
// upper_boundary.
func BuildRecord(description string, verdict Verdict, method StrategyID, value float64, res BoundaryResult) DiagnosticRecord {
	fields := []Field{
		{"description", description},
		{"result", verdict.String()},
		{"method", string(method)},
		{"value", value},
	}
	fields = append(fields, res.Params...)
	fields = append(fields,
		Field{"data len", res.SampleSize},
		Field{"data mean", res.Centre},
	)
	if res.DispersionName != "" {
		fields = append(fields, Field{res.DispersionName, res.Dispersion})
	}
	fields = append(fields,
		Field{"lower_boundary", res.Lower},
		Field{"upper_boundary", res.Upper},
	)
	return DiagnosticRecord{fields: fields}
}

// BuildErrorRecord assembles the diagnostic record for a strategy that failed
// before producing a boundary interval (e.g. insufficient data). Failed
// strategies are reported, never silently dropped.
func BuildErrorRecord(description string, method StrategyID, value float64, sampleSize int, err error) DiagnosticRecord {
	return DiagnosticRecord{fields: []Field{
		{"description", description},
		{"result", "ERROR"},
		{"method", string(method)},
		{"value", value},
		{"data len", sampleSize},
		{"error", err.Error()},
	}}
}
