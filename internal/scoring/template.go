package scoring

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseCriteria decodes a YAML or JSON criteria document onto the built-in
// template. Keys absent from the document keep their defaults, as do fields
// absent from a criterion. Unknown criterion keys are rejected.
func ParseCriteria(data []byte) (Criteria, error) {
	return parseOnto(DefaultCriteria(), data)
}

// ParseCriteriaOnto is ParseCriteria with base in place of the built-in
// template. base is not modified.
func ParseCriteriaOnto(base Criteria, data []byte) (Criteria, error) {
	full := DefaultCriteria()
	for k, cr := range base.Clone() {
		if IsKnownKey(k) {
			full[k] = cr
		}
	}
	return parseOnto(full, data)
}

// LoadTemplate reads a template file from disk. See ParseCriteria.
func LoadTemplate(path string) (Criteria, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	c, err := ParseCriteria(data)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	return c, nil
}

func parseOnto(base Criteria, data []byte) (Criteria, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode criteria: %w", err)
	}

	for name, node := range raw {
		key := CriterionKey(name)
		if !IsKnownKey(key) {
			return nil, fmt.Errorf("unknown criterion %q", name)
		}
		cr := base[key]
		if err := node.Decode(cr); err != nil {
			return nil, fmt.Errorf("decode criterion %q: %w", name, err)
		}
		if math.IsNaN(cr.Weight) || math.IsInf(cr.Weight, 0) {
			return nil, fmt.Errorf("criterion %q: weight must be a finite number", name)
		}
		cr.Key = key
	}
	return base, nil
}
