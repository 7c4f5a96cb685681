package schema

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/upay-labs/docuflow/constants"
	"github.com/upay-labs/docuflow/internal/entity"
)

// Registry maps a category to its required-field list and compiled
// validation rules. The validation policy consults it after extraction;
// extraction itself never does.
type Registry struct {
	defs   map[constants.Category]*Definition
	logger *slog.Logger
}

// Definition is a CategorySchema with its rules compiled.
type Definition struct {
	Schema *entity.CategorySchema
	rules  []compiledRule
}

type compiledRule struct {
	pattern *regexp.Regexp
	schema  *jsonschema.Schema
}

func NewRegistry(logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		defs:   make(map[constants.Category]*Definition),
		logger: logger,
	}
	for _, cs := range defaultSchemas() {
		if err := r.Register(cs); err != nil {
			return nil, fmt.Errorf("register schema for %s: %w", cs.Category, err)
		}
	}
	return r, nil
}

// Register compiles and installs a category schema, replacing any existing
// definition for the same category.
func (r *Registry) Register(cs *entity.CategorySchema) error {
	def := &Definition{Schema: cs}
	for pattern, src := range cs.Rules {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("field pattern %q: %w", pattern, err)
		}
		compiler := jsonschema.NewCompiler()
		url := fmt.Sprintf("schema://%s/%s.json", cs.Category, sanitize(pattern))
		if err := compiler.AddResource(url, strings.NewReader(src)); err != nil {
			return fmt.Errorf("add rule resource %q: %w", pattern, err)
		}
		sch, err := compiler.Compile(url)
		if err != nil {
			return fmt.Errorf("compile rule %q: %w", pattern, err)
		}
		def.rules = append(def.rules, compiledRule{pattern: re, schema: sch})
	}
	r.defs[cs.Category] = def
	return nil
}

// Lookup returns the definition for cat. Unknown categories report ok=false;
// downstream treats them as having zero required fields and no rules.
func (r *Registry) Lookup(cat constants.Category) (*Definition, bool) {
	def, ok := r.defs[cat]
	return def, ok
}

// RequiredFields returns the ordered required-field list for cat,
// or nil for unknown categories.
func (r *Registry) RequiredFields(cat constants.Category) []string {
	def, ok := r.defs[cat]
	if !ok {
		return nil
	}
	return def.Schema.RequiredFields
}

// Validate applies every rule whose pattern matches fieldName to value.
// A nil return means the value passed all matching rules.
func (d *Definition) Validate(fieldName, value string) error {
	if d == nil {
		return nil
	}
	for _, rule := range d.rules {
		if !rule.pattern.MatchString(fieldName) {
			continue
		}
		if err := rule.schema.Validate(value); err != nil {
			return fmt.Errorf("field %s: %w", fieldName, err)
		}
	}
	return nil
}

func sanitize(pattern string) string {
	repl := strings.NewReplacer("^", "", "$", "", "\\", "", "(", "", ")", "", "|", "-", "+", "", "*", "", "[", "", "]", "", "{", "", "}", "")
	return repl.Replace(pattern)
}
