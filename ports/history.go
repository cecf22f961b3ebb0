package ports

import "context"

// HistorySource supplies the historical sample for one named variable.
// Implementations (flat file, search index, database) guarantee values are
// real numbers in chronological order; a missing variable is a lookup
// failure surfaced here, never inside the check core.
type HistorySource interface {
	History(ctx context.Context, variable string) ([]float64, error)
}
