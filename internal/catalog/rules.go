package catalog

import "slices"

type ExtensionRule struct {
	Code1 []string `toml:"code1" validate:"required,dive,required"`
	Code2 []string `toml:"code2" validate:"required,dive,required"`
	Code3 []string `toml:"code3" validate:"required,dive,required"`
}

// Rule lists the legal values of every mutable field for one product name.
type Rule struct {
	Sections    []string      `toml:"sections" validate:"required,dive,required"`
	Subsections []string      `toml:"subsections" validate:"required,dive,required"`
	Coverages   []string      `toml:"coverages" validate:"required,dive,required"`
	Extensions  ExtensionRule `toml:"extensions"`
}

// Rules is keyed by product name.
type Rules map[string]Rule

type fieldCheck struct {
	field   string
	label   string
	plural  string
	value   *string
	allowed []string
}

// Check validates the supplied patch values in field order and returns the first
// violation. Empty strings are not checked.
func (r Rule) Check(product string, p Patch) error {
	var ext ExtensionPatch
	if p.Extension != nil {
		ext = *p.Extension
	}

	checks := []fieldCheck{
		{"section", "section", "sections", p.Section, r.Sections},
		{"subsection", "subsection", "subsection", p.Subsection, r.Subsections},
		{"coverage", "coverage", "coverages", p.Coverage, r.Coverages},
		{"extension.code1", "extension code1", "code1", ext.Code1, r.Extensions.Code1},
		{"extension.code2", "extension code2", "code2", ext.Code2, r.Extensions.Code2},
		{"extension.code3", "extension code3", "code3", ext.Code3, r.Extensions.Code3},
	}

	for _, c := range checks {
		if c.value == nil || *c.value == "" {
			continue
		}
		if !slices.Contains(c.allowed, *c.value) {
			return &InvalidFieldError{
				Field:   c.field,
				Label:   c.label,
				Plural:  c.plural,
				Value:   *c.value,
				Product: product,
				Allowed: slices.Clone(c.allowed),
			}
		}
	}
	return nil
}
