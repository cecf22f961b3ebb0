package history

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"investigator/domain/core"
	"investigator/internal/errors"
	"investigator/ports"
)

// PostgresSource loads historical samples from a results table with one row
// per measured value:
//
//	CREATE TABLE results (
//	    test_name TEXT NOT NULL,
//	    variable  TEXT NOT NULL,
//	    value     DOUBLE PRECISION NOT NULL,
//	    started   TIMESTAMPTZ NOT NULL
//	);
type PostgresSource struct {
	db       *sqlx.DB
	testName string
}

// NewPostgresSource opens a connection for one test's history
func NewPostgresSource(databaseURL, testName string) (*PostgresSource, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, errors.SourceError(err, "failed to connect to results database")
	}
	return &PostgresSource{db: db, testName: testName}, nil
}

// History returns the variable's values in chronological order
func (s *PostgresSource) History(ctx context.Context, variable string) ([]float64, error) {
	var values []float64
	err := s.db.SelectContext(ctx, &values, `
		SELECT value
		FROM results
		WHERE test_name = $1 AND variable = $2
		ORDER BY started
	`, s.testName, variable)
	if err != nil {
		return nil, errors.SourceError(err, "failed to query results history")
	}
	if len(values) == 0 {
		return nil, core.NewVariableNotFoundError(variable, "results table")
	}
	return values, nil
}

// Close releases the database connection
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

var _ ports.HistorySource = (*PostgresSource)(nil)
