package history

import (
	"fmt"

	"investigator/domain/core"
	"investigator/internal"
	"investigator/internal/config"
	"investigator/ports"
)

// NewSource builds the history source an investigation config asks for.
func NewSource(cfg config.HistoryConfig, logger *internal.Logger) (ports.HistorySource, error) {
	switch cfg.Type {
	case config.HistoryTypeCSV, config.HistoryTypeXLSX:
		return NewFileSource(cfg.File)
	case config.HistoryTypeElasticsearch:
		client := NewESClient(cfg.ESServer, cfg.ESIndex, logger)
		size := cfg.ESSize
		if size <= 0 {
			size = 50
		}
		return NewElasticsearchSource(client, cfg.ESQuery, size), nil
	case config.HistoryTypePostgres:
		return NewPostgresSource(cfg.DatabaseURL, cfg.TestName)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrSourceUnsupported, cfg.Type)
	}
}
