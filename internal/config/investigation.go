package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"investigator/internal/errors"
)

// Supported source types
const (
	HistoryTypeCSV           = "csv"
	HistoryTypeXLSX          = "xlsx"
	HistoryTypeElasticsearch = "elasticsearch"
	HistoryTypePostgres      = "postgres"

	CurrentTypeStatusData = "status_data"
)

// Investigation describes one pass-or-fail run: which variables to check,
// where their history comes from and where the current result document is.
type Investigation struct {
	Sets       []string      `yaml:"sets"`
	History    HistoryConfig `yaml:"history"`
	Current    CurrentConfig `yaml:"current"`
	Strategies []string      `yaml:"strategies,omitempty"`
}

// HistoryConfig selects and parameterizes the historical data source
type HistoryConfig struct {
	Type string `yaml:"type"`

	// csv / xlsx
	File string `yaml:"file,omitempty"`

	// elasticsearch
	ESServer string                 `yaml:"es_server,omitempty"`
	ESIndex  string                 `yaml:"es_index,omitempty"`
	ESQuery  map[string]interface{} `yaml:"es_query,omitempty"`
	ESSize   int                    `yaml:"es_size,omitempty"`

	// postgres
	DatabaseURL string `yaml:"database_url,omitempty"`
	TestName    string `yaml:"test_name,omitempty"`
}

// CurrentConfig selects the current-value source
type CurrentConfig struct {
	Type string `yaml:"type"`
	File string `yaml:"file,omitempty"`
}

// LoadInvestigation reads and validates an investigation config file
func LoadInvestigation(path string) (*Investigation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read investigation config %s", path)
	}

	var inv Investigation
	if err := yaml.Unmarshal(raw, &inv); err != nil {
		return nil, errors.Wrap(err, "failed to parse investigation config")
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Validate checks the investigation config is complete enough to run
func (inv *Investigation) Validate() error {
	if len(inv.Sets) == 0 {
		return errors.ConfigInvalid("sets must name at least one variable")
	}

	switch inv.History.Type {
	case HistoryTypeCSV, HistoryTypeXLSX:
		if inv.History.File == "" {
			return errors.ConfigInvalid("history.file is required for file sources")
		}
	case HistoryTypeElasticsearch:
		if inv.History.ESServer == "" || inv.History.ESIndex == "" {
			return errors.ConfigInvalid("history.es_server and history.es_index are required for elasticsearch sources")
		}
	case HistoryTypePostgres:
		if inv.History.DatabaseURL == "" || inv.History.TestName == "" {
			return errors.ConfigInvalid("history.database_url and history.test_name are required for postgres sources")
		}
	default:
		return errors.ConfigInvalid("unsupported history type: " + inv.History.Type)
	}

	switch inv.Current.Type {
	case CurrentTypeStatusData:
		if inv.Current.File == "" {
			return errors.ConfigInvalid("current.file is required for status_data sources")
		}
	default:
		return errors.ConfigInvalid("unsupported current type: " + inv.Current.Type)
	}

	return nil
}
