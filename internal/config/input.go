// Package config parses and validates estimate input documents: the
// customer's risk profile plus the policy parameters to price.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/assurelab/riskquote/internal/domain"
)

// InputDocument is the on-disk shape of an estimate request.
type InputDocument struct {
	Profile domain.RiskProfile        `yaml:"profile" json:"profile"`
	Policy  domain.PolicyPricingInput `yaml:"policy" json:"policy"`

	// CatalogFile optionally points at a factor catalog override file.
	CatalogFile string `yaml:"catalog_file,omitempty" json:"catalog_file,omitempty"`
}

// InputParser handles parsing of estimate input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads an estimate input document from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*InputDocument, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var doc InputDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateDocument(&doc); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &doc, nil
}

// ValidateDocument validates a loaded input document. Profile attributes
// may be missing (the engine falls back to neutral factors) but anything
// present must be in-domain, and the policy block must be quotable.
func (ip *InputParser) ValidateDocument(doc *InputDocument) error {
	if err := doc.Profile.Validate(); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}
	if err := doc.Policy.Validate(); err != nil {
		return fmt.Errorf("policy validation failed: %w", err)
	}
	return nil
}
