package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"catalog-service/internal/models"
	"catalog-service/internal/qrcode"
	"catalog-service/internal/repository"
	"catalog-service/internal/storage"
)

// store is an in-memory catalog backing every repository interface.
type store struct {
	mu        sync.Mutex
	models    map[string]models.Model
	variants  map[string]models.Variant
	customers map[string]models.Customer
	views     []models.ViewEvent

	// err fails every read the resolver makes.
	err error
}

func newStore() *store {
	return &store{
		models:    map[string]models.Model{},
		variants:  map[string]models.Variant{},
		customers: map[string]models.Customer{},
	}
}

var (
	_ repository.ModelRepository     = (*store)(nil)
	_ repository.VariantRepository   = (*store)(nil)
	_ repository.CustomerRepository  = (*store)(nil)
	_ repository.AnalyticsRepository = (*store)(nil)
)

func (s *store) addModel(m models.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[m.ID] = m
}

func (s *store) addVariant(v models.Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variants[v.ID] = v
}

func (s *store) CreateModel(_ context.Context, m *models.Model) error {
	s.addModel(*m)
	return nil
}

func (s *store) FindModelByID(_ context.Context, id string) (*models.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	m, ok := s.models[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (s *store) FindModelsBySlug(_ context.Context, customerSlug, urlSlug string) ([]models.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Model
	for _, m := range s.models {
		if m.URLSlug != nil && *m.URLSlug == urlSlug && strings.EqualFold(m.OwnerSlug(), customerSlug) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *store) ModelExists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.models[id]
	return ok, nil
}

func (s *store) ListModels(_ context.Context, f repository.ModelFilter) ([]models.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Model
	for _, m := range s.models {
		if f.CustomerID == "" || m.CustomerID == f.CustomerID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *store) UpdateModel(_ context.Context, m *models.Model) error {
	s.addModel(*m)
	return nil
}

func (s *store) DeleteModel(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.models, id)
	return nil
}

func (s *store) ListModelsMissingSlugs(context.Context) ([]models.Model, error) {
	return nil, nil
}

func (s *store) UpdateModelSlugs(context.Context, string, map[string]interface{}) error {
	return nil
}

func (s *store) CreateVariant(_ context.Context, v *models.Variant) error {
	s.addVariant(*v)
	return nil
}

func (s *store) FindVariantByID(_ context.Context, id string) (*models.Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.variants[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (s *store) FindVariantsByModel(_ context.Context, modelID string) ([]models.Variant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Variant
	for _, v := range s.variants {
		if v.ParentModelID == modelID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *store) ColorSlugTaken(_ context.Context, modelID, colorSlug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.variants {
		if v.ParentModelID == modelID && v.ColorSlug != nil && *v.ColorSlug == colorSlug {
			return true, nil
		}
	}
	return false, nil
}

func (s *store) SetPrimaryVariant(_ context.Context, modelID, variantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.variants[variantID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for id, v := range s.variants {
		if v.ParentModelID == modelID {
			v.IsPrimary = id == variantID
			s.variants[id] = v
		}
	}
	return nil
}

func (s *store) DeleteVariant(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.variants, id)
	return nil
}

func (s *store) ListVariantsMissingColorSlug(context.Context) ([]models.Variant, error) {
	return nil, nil
}

func (s *store) UpdateColorSlug(context.Context, string, string) error {
	return nil
}

func (s *store) CreateCustomer(_ context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = *c
	return nil
}

func (s *store) FindCustomerByID(_ context.Context, id string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *store) UpdateBranding(_ context.Context, id string, b models.Branding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Branding = datatypes.NewJSONType(b)
	s.customers[id] = c
	return nil
}

func (s *store) RecordView(_ context.Context, modelID string, variantID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.models[modelID]
	m.ViewCount++
	s.models[modelID] = m
	s.views = append(s.views, models.ViewEvent{ModelID: modelID, VariantID: variantID})
	return nil
}

func (s *store) ViewStats(_ context.Context, modelID string) (*models.ViewStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &models.ViewStats{ModelID: modelID, Total: s.models[modelID].ViewCount, Variants: map[string]int64{}}
	for _, e := range s.views {
		if e.ModelID == modelID && e.VariantID != nil {
			stats.Variants[*e.VariantID]++
		}
	}
	return stats, nil
}

// media is an in-memory object store.
type media struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMedia() *media { return &media{objects: map[string][]byte{}} }

func (m *media) Upload(ctx context.Context, prefix, filename string, r io.Reader, size int64, contentType string) (*storage.StoredMedia, error) {
	return m.Put(ctx, prefix+"/"+filename, r, size, contentType)
}

func (m *media) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (*storage.StoredMedia, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return &storage.StoredMedia{Key: key, URL: "https://cdn.example.com/" + key, ContentType: contentType, Size: int64(len(data))}, nil
}

func (m *media) Open(_ context.Context, key string) (io.ReadCloser, int64, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, 0, "", errors.New("no such key")
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), "model/gltf-binary", nil
}

func (m *media) Delete(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			delete(m.objects, k)
		}
	}
	return nil
}

// recordingRenderer captures the content it was asked to encode.
type recordingRenderer struct {
	mu       sync.Mutex
	contents []string
}

func (r *recordingRenderer) Render(content string, opts qrcode.Options) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contents = append(r.contents, content)
	return []byte(string(opts.Format) + ":" + content), nil
}

func (r *recordingRenderer) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.contents) == 0 {
		return ""
	}
	return r.contents[len(r.contents)-1]
}

func ptr(s string) *string { return &s }

func oakTable() models.Model {
	return models.Model{
		ID:           "abc12345",
		Title:        "Oak Table",
		CustomerID:   "acme",
		URLSlug:      ptr("oak-table-abc12345"),
		CustomerSlug: ptr("acme"),
		PublicID:     "models/abc12345/table.glb",
	}
}

func walnut() models.Variant {
	return models.Variant{
		ID:            "var00001",
		ParentModelID: "abc12345",
		VariantName:   ptr("Walnut"),
		HexColor:      "#5C4033",
		ColorSlug:     ptr("walnut"),
	}
}
