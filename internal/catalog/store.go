package catalog

import (
	"context"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortField string

const (
	SortByName       SortField = "name"
	SortBySection    SortField = "section"
	SortBySubsection SortField = "subsection"
	SortByCoverage   SortField = "coverage"
)

var sortKeys = map[SortField]func(Product) string{
	SortByName:       func(p Product) string { return p.Name },
	SortBySection:    func(p Product) string { return p.Section },
	SortBySubsection: func(p Product) string { return p.Subsection },
	SortByCoverage:   func(p Product) string { return p.Coverage },
}

type Store interface {
	Ping(ctx context.Context) error
	List() []Product
	Sort(field SortField) []Product
	Search(q string) []Product
	FindByID(id int) (Product, bool)
	FindByName(name string) (Product, bool)
	UpdateByID(id int, p Patch) (Product, Changes, error)
	UpdateByName(name string, p Patch) (Product, Changes, error)
}

// MemStore keeps the catalog in insertion order. Every method holds mu for its
// whole duration, so an update's apply, validate and diff never interleave with
// another request.
type MemStore struct {
	mu       sync.Mutex
	products []Product
	rules    Rules
}

func NewMemStore(products []Product, rules Rules) *MemStore {
	return &MemStore{
		products: slices.Clone(products),
		rules:    rules,
	}
}

func NewStore() *MemStore {
	return NewMemStore(DefaultProducts(), DefaultRules())
}

func (s *MemStore) Ping(ctx context.Context) error { return ctx.Err() }

func (s *MemStore) List() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.products)
}

// Sort reorders the live catalog by field and returns a copy of the result. The
// new order persists for later requests. Unknown fields leave the order as is.
func (s *MemStore) Sort(field SortField) []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key, ok := sortKeys[field]; ok {
		c := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(s.products, func(a, b Product) int {
			return c.CompareString(key(a), key(b))
		})
	}
	return slices.Clone(s.products)
}

func (s *MemStore) Search(q string) []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(q)
	var out []Product
	for _, p := range s.products {
		if matches(p, needle) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p Product, needle string) bool {
	for _, v := range []string{
		p.Name, p.Section, p.Subsection, p.Coverage,
		p.Extension.Code1, p.Extension.Code2, p.Extension.Code3,
	} {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func (s *MemStore) FindByID(id int) (Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexFunc(func(p Product) bool { return p.ID == id }); i >= 0 {
		return s.products[i], true
	}
	return Product{}, false
}

func (s *MemStore) FindByName(name string) (Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexFunc(func(p Product) bool { return p.Name == name }); i >= 0 {
		return s.products[i], true
	}
	return Product{}, false
}

func (s *MemStore) UpdateByID(id int, p Patch) (Product, Changes, error) {
	return s.update(func(x Product) bool { return x.ID == id }, p)
}

func (s *MemStore) UpdateByName(name string, p Patch) (Product, Changes, error) {
	return s.update(func(x Product) bool { return x.Name == name }, p)
}

// update applies p before validating it. A rejected value stays written to the
// catalog; callers rely on that ordering.
func (s *MemStore) update(match func(Product) bool, p Patch) (Product, Changes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexFunc(match)
	if i < 0 {
		return Product{}, Changes{}, ErrProductNotFound
	}

	target := &s.products[i]
	before := *target
	p.apply(target)

	if rule, ok := s.rules[target.Name]; ok {
		if err := rule.Check(target.Name, p); err != nil {
			return *target, Changes{}, err
		}
	}

	return *target, diff(before, *target), nil
}

func (s *MemStore) indexFunc(match func(Product) bool) int {
	return slices.IndexFunc(s.products, match)
}
