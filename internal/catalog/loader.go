package catalog

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// OverrideFile is the on-disk shape of a catalog override: multipliers by
// catalog key. Rate desks adjust multipliers without a redeploy; the
// applicability predicates stay in code.
//
//	factors:
//	  smoker: 1.8
//	  occupation_technology: 0.85
type OverrideFile struct {
	Factors map[string]decimal.Decimal `yaml:"factors"`
}

// LoadFromFile builds a catalog from the built-in table with multiplier
// overrides applied from a YAML file. Unknown keys and non-positive
// multipliers are rejected at load time, before any quote is computed.
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var overrides OverrideFile
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	c, err := Default()
	if err != nil {
		return nil, err
	}
	for key, multiplier := range overrides.Factors {
		c, err = c.WithMultiplier(key, multiplier)
		if err != nil {
			return nil, fmt.Errorf("catalog override for %s: %w", path, err)
		}
	}
	return c, nil
}
