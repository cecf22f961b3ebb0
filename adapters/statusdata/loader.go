package statusdata

import (
	"investigator/internal/errors"
	"investigator/ports"
)

// Loader adapts a status-data document to the CurrentSource port. Absent or
// non-numeric fields are rejected here so the check core never receives a
// missing candidate value.
type Loader struct {
	doc *Document
}

// NewLoader creates a current-value source over an already-loaded document
func NewLoader(doc *Document) *Loader {
	return &Loader{doc: doc}
}

// LoadFile creates a current-value source from a status-data JSON file
func LoadFile(path string) (*Loader, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewLoader(doc), nil
}

// Current returns the candidate value stored under the variable's dotted path
func (l *Loader) Current(variable string) (*float64, error) {
	value, err := l.doc.GetFloat(variable)
	if err != nil {
		return nil, errors.SourceError(err, "failed to load current value")
	}
	return &value, nil
}

var _ ports.CurrentSource = (*Loader)(nil)
