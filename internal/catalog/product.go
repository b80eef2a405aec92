package catalog

type Extension struct {
	Code1 string `json:"code1" toml:"code1" validate:"required"`
	Code2 string `json:"code2" toml:"code2" validate:"required"`
	Code3 string `json:"code3" toml:"code3" validate:"required"`
}

type Product struct {
	ID         int       `json:"id" toml:"id" validate:"gt=0"`
	Name       string    `json:"name" toml:"name" validate:"required"`
	Section    string    `json:"section" toml:"section" validate:"required"`
	Subsection string    `json:"subsection" toml:"subsection" validate:"required"`
	Coverage   string    `json:"coverage" toml:"coverage" validate:"required"`
	Extension  Extension `json:"extension" toml:"extension"`
}

// PublicProduct is what search hands out: everything but the id.
type PublicProduct struct {
	Name       string    `json:"name"`
	Section    string    `json:"section"`
	Subsection string    `json:"subsection"`
	Coverage   string    `json:"coverage"`
	Extension  Extension `json:"extension"`
}

func (p Product) Public() PublicProduct {
	return PublicProduct{
		Name:       p.Name,
		Section:    p.Section,
		Subsection: p.Subsection,
		Coverage:   p.Coverage,
		Extension:  p.Extension,
	}
}

// Patch carries a partial update. A nil field means "leave unchanged"; a pointer
// to "" is a real value and is applied.
type Patch struct {
	Section    *string         `json:"section,omitempty"`
	Subsection *string         `json:"subsection,omitempty"`
	Coverage   *string         `json:"coverage,omitempty"`
	Extension  *ExtensionPatch `json:"extension,omitempty"`
}

type ExtensionPatch struct {
	Code1 *string `json:"code1,omitempty"`
	Code2 *string `json:"code2,omitempty"`
	Code3 *string `json:"code3,omitempty"`
}

func (p Patch) apply(dst *Product) {
	set(&dst.Section, p.Section)
	set(&dst.Subsection, p.Subsection)
	set(&dst.Coverage, p.Coverage)
	if p.Extension != nil {
		set(&dst.Extension.Code1, p.Extension.Code1)
		set(&dst.Extension.Code2, p.Extension.Code2)
		set(&dst.Extension.Code3, p.Extension.Code3)
	}
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

type Change struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Changes reports, per mutable field, nil when unchanged or the before/after pair.
type Changes struct {
	Section    *Change          `json:"section"`
	Subsection *Change          `json:"subsection"`
	Coverage   *Change          `json:"coverage"`
	Extension  ExtensionChanges `json:"extension"`
}

type ExtensionChanges struct {
	Code1 *Change `json:"code1"`
	Code2 *Change `json:"code2"`
	Code3 *Change `json:"code3"`
}

func diff(before, after Product) Changes {
	return Changes{
		Section:    changed(before.Section, after.Section),
		Subsection: changed(before.Subsection, after.Subsection),
		Coverage:   changed(before.Coverage, after.Coverage),
		Extension: ExtensionChanges{
			Code1: changed(before.Extension.Code1, after.Extension.Code1),
			Code2: changed(before.Extension.Code2, after.Extension.Code2),
			Code3: changed(before.Extension.Code3, after.Extension.Code3),
		},
	}
}

func changed(from, to string) *Change {
	if from == to {
		return nil
	}
	return &Change{From: from, To: to}
}
