package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/medplan/internal/catalog"
	"github.com/rgehrsitz/medplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file. Sections missing from the
// file keep their built-in defaults.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML document. A sole_coverage_surcharge map in
// the document replaces the default map as a whole; adults it leaves out carry
// no surcharge.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	config := domain.DefaultConfiguration()
	defaultSurcharges := config.Rules.SoleCoverageSurcharge
	config.Rules.SoleCoverageSurcharge = nil
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if config.Rules.SoleCoverageSurcharge == nil {
		config.Rules.SoleCoverageSurcharge = defaultSurcharges
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads filename, or returns the built-in configuration when filename is empty
func (ip *InputParser) LoadOrDefault(filename string) (*domain.Configuration, error) {
	if filename == "" {
		config := domain.DefaultConfiguration()
		return &config, nil
	}
	return ip.LoadFromFile(filename)
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Plans) == 0 {
		return fmt.Errorf("at least one plan is required")
	}
	if _, err := catalog.New(config.Plans); err != nil {
		return fmt.Errorf("plans validation failed: %w", err)
	}

	if err := config.Rules.Validate(); err != nil {
		return fmt.Errorf("rules validation failed: %w", err)
	}

	if err := config.Scenario.Validate(); err != nil {
		return fmt.Errorf("scenario validation failed: %w", err)
	}

	if err := config.Sweep.Validate(); err != nil {
		return fmt.Errorf("sweep validation failed: %w", err)
	}

	return nil
}

// SaveConfiguration writes config to filename as YAML
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
