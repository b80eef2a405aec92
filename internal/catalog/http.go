package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ProductCatalog/pkg/kit"
)

const (
	maxBodyBytes = 100 << 10
	timeLayout   = "2006-01-02T15:04:05.000Z"

	msgMissingQuery = "Search query (q) is required"
)

type Server struct {
	Store   Store
	Log     *zap.Logger
	Updates *UpdateMetrics
	Now     func() time.Time
}

var endpoints = []string{
	"/api/query - Test endpoint for query parameters",
	"/api/products - Product listing with section/subsection/coverage filtering",
	"/api/search - Search endpoint",
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(kit.NotFound)
	r.MethodNotAllowed(kit.MethodNotAllowed)

	r.Get("/", s.info)

	r.Route("/api", func(r chi.Router) {
		r.Get("/query", s.echoQuery)
		r.Get("/products", s.list)
		r.Get("/search", s.search)
		r.Post("/products/{id}", s.updateByID)
		r.Post("/products/name/{name}", s.updateByName)
	})

	return r
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) timestamp() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Format(timeLayout)
}

type infoResp struct {
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

func (s *Server) info(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, infoResp{
		Message:   "Mock API Server is running",
		Endpoints: endpoints,
	})
}

type queryResp struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Params    map[string]any `json:"params"`
	Timestamp string         `json:"timestamp"`
}

func (s *Server) echoQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := make(map[string]any, len(q))
	for k, vs := range q {
		if len(vs) == 1 {
			params[k] = vs[0]
		} else {
			params[k] = vs
		}
	}

	kit.WriteJSON(w, http.StatusOK, queryResp{
		Success:   true,
		Message:   fmt.Sprintf("Received %d query parameters", len(params)),
		Params:    params,
		Timestamp: s.timestamp(),
	})
}

type listFilters struct {
	Sort  *string `json:"sort,omitempty"`
	Limit *string `json:"limit,omitempty"`
}

type listResp struct {
	Success  bool        `json:"success"`
	Filters  listFilters `json:"filters"`
	Count    int         `json:"count"`
	Products []Product   `json:"products"`
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := listFilters{Sort: optional(q, "sort"), Limit: optional(q, "limit")}

	var products []Product
	if filters.Sort != nil {
		products = s.Store.Sort(SortField(*filters.Sort))
	} else {
		products = s.Store.List()
	}

	if filters.Limit != nil {
		if n, ok := parseIntPrefix(*filters.Limit); ok {
			products = truncate(products, n)
		}
	}

	kit.WriteJSON(w, http.StatusOK, listResp{
		Success:  true,
		Filters:  filters,
		Count:    len(products),
		Products: products,
	})
}

type searchResp struct {
	Success  bool            `json:"success"`
	Products []PublicProduct `json:"products"`
}

// search ignores the type parameter; it is reserved.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	term := q.Get("q")
	if term == "" {
		s.log().Debug("search rejected", zap.Error(ErrMissingQuery))
		kit.WriteError(w, r, http.StatusBadRequest, msgMissingQuery)
		return
	}

	results := s.Store.Search(term)
	if n, ok := parseIntPrefix(q.Get("max_results")); ok {
		results = truncate(results, n)
	}

	out := make([]PublicProduct, 0, len(results))
	for _, p := range results {
		out = append(out, p.Public())
	}

	kit.WriteJSON(w, http.StatusOK, searchResp{Success: true, Products: out})
}

type updateResp struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	Product   Product `json:"product"`
	Changes   Changes `json:"changes"`
	Timestamp string  `json:"timestamp"`
}

func (s *Server) updateByID(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")

	id, ok := parseIntPrefix(raw)
	if !ok {
		s.Updates.observe(resultNotFound)
		kit.WriteError(w, r, http.StatusNotFound, fmt.Sprintf("Product with id %s not found", raw))
		return
	}

	s.update(w, r, func(p Patch) (Product, Changes, error) { return s.Store.UpdateByID(id, p) },
		fmt.Sprintf("Product with id %d not found", id),
		fmt.Sprintf("Product %d updated successfully", id),
	)
}

func (s *Server) updateByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		decoded, err := url.PathUnescape(name)
		if err != nil {
			s.Updates.observe(resultBadRequest)
			kit.WriteError(w, r, http.StatusBadRequest, "Malformed product name in path")
			return
		}
		name = decoded
	}

	s.update(w, r, func(p Patch) (Product, Changes, error) { return s.Store.UpdateByName(name, p) },
		fmt.Sprintf("Product with name '%s' not found", name),
		fmt.Sprintf("Product '%s' updated successfully", name),
	)
}

func (s *Server) update(
	w http.ResponseWriter,
	r *http.Request,
	apply func(Patch) (Product, Changes, error),
	notFoundMsg, okMsg string,
) {
	patch, err := decodePatch(w, r)
	if err != nil {
		s.Updates.observe(resultBadRequest)
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product, changes, err := apply(patch)

	var invalid *InvalidFieldError
	switch {
	case errors.Is(err, ErrProductNotFound):
		s.Updates.observe(resultNotFound)
		kit.WriteError(w, r, http.StatusNotFound, notFoundMsg)
		return
	case errors.As(err, &invalid):
		s.Updates.observe(resultInvalid)
		s.log().Warn("update rejected after apply",
			zap.Int("product_id", product.ID),
			zap.String("field", invalid.Field),
			zap.String("value", invalid.Value),
		)
		kit.WriteError(w, r, http.StatusBadRequest, invalid.Error())
		return
	case err != nil:
		s.log().Error("update failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error")
		return
	}

	s.Updates.observe(resultOK)
	kit.WriteJSON(w, http.StatusOK, updateResp{
		Success:   true,
		Message:   okMsg,
		Product:   product,
		Changes:   changes,
		Timestamp: s.timestamp(),
	})
}

// decodePatch accepts JSON and urlencoded bodies. Any other (or missing) content
// type yields an empty patch, so the update is a no-op.
func decodePatch(w http.ResponseWriter, r *http.Request) (Patch, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/json":
		return decodeJSONPatch(r.Body)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return Patch{}, err
		}
		return formPatch(r.PostForm), nil
	default:
		return Patch{}, nil
	}
}

// decodeJSONPatch reads only the exact lower-case keys of a patch. Keys that
// differ in case are ignored rather than folded onto the patch fields.
func decodeJSONPatch(body io.Reader) (Patch, error) {
	var obj map[string]json.RawMessage

	dec := json.NewDecoder(body)
	if err := dec.Decode(&obj); err != nil {
		if errors.Is(err, io.EOF) {
			return Patch{}, nil
		}
		return Patch{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Patch{}, errors.New("extra data after json object")
	}

	var p Patch
	for key, dst := range map[string]**string{
		"section":    &p.Section,
		"subsection": &p.Subsection,
		"coverage":   &p.Coverage,
	} {
		if err := rawString(obj, key, dst); err != nil {
			return Patch{}, err
		}
	}

	raw, ok := obj["extension"]
	if !ok {
		return p, nil
	}
	var ext map[string]json.RawMessage
	if err := json.Unmarshal(raw, &ext); err != nil {
		return Patch{}, fmt.Errorf("extension: %w", err)
	}
	if ext == nil {
		return p, nil
	}
	var e ExtensionPatch
	for key, dst := range map[string]**string{
		"code1": &e.Code1,
		"code2": &e.Code2,
		"code3": &e.Code3,
	} {
		if err := rawString(ext, key, dst); err != nil {
			return Patch{}, fmt.Errorf("extension: %w", err)
		}
	}
	p.Extension = &e
	return p, nil
}

// rawString decodes obj[key] into dst. A missing key or JSON null leaves dst nil.
func rawString(obj map[string]json.RawMessage, key string, dst **string) error {
	raw, ok := obj[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func formPatch(form url.Values) Patch {
	p := Patch{
		Section:    optional(form, "section"),
		Subsection: optional(form, "subsection"),
		Coverage:   optional(form, "coverage"),
	}

	ext := ExtensionPatch{
		Code1: optional(form, "extension[code1]"),
		Code2: optional(form, "extension[code2]"),
		Code3: optional(form, "extension[code3]"),
	}
	if ext.Code1 != nil || ext.Code2 != nil || ext.Code3 != nil {
		p.Extension = &ext
	}
	return p
}

func optional(v url.Values, key string) *string {
	if !v.Has(key) {
		return nil
	}
	s := v.Get(key)
	return &s
}
