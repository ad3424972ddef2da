package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"catalog-service/internal/storage"
)

// memRepo is an in-memory implementation of the repository interfaces.
type memRepo struct {
	mu        sync.Mutex
	models    map[string]models.Model
	variants  map[string]models.Variant
	customers map[string]models.Customer
	events    []models.ViewEvent

	failUpdate map[string]error
	writes     int
}

func newMemRepo() *memRepo {
	return &memRepo{
		models:     map[string]models.Model{},
		variants:   map[string]models.Variant{},
		customers:  map[string]models.Customer{},
		failUpdate: map[string]error{},
	}
}

var (
	_ repository.ModelRepository     = (*memRepo)(nil)
	_ repository.VariantRepository   = (*memRepo)(nil)
	_ repository.CustomerRepository  = (*memRepo)(nil)
	_ repository.AnalyticsRepository = (*memRepo)(nil)
)

func (r *memRepo) CreateModel(_ context.Context, m *models.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.models[m.ID]; ok {
		return fmt.Errorf("duplicate key %s", m.ID)
	}
	r.models[m.ID] = *m
	return nil
}

func (r *memRepo) FindModelByID(_ context.Context, id string) (*models.Model, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.models[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *memRepo) FindModelsBySlug(_ context.Context, customerSlug, urlSlug string) ([]models.Model, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Model
	for _, m := range r.models {
		if m.CustomerSlug != nil && strings.EqualFold(*m.CustomerSlug, customerSlug) && m.URLSlug != nil && *m.URLSlug == urlSlug {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memRepo) ModelExists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.models[id]
	return ok, nil
}

func (r *memRepo) ListModels(_ context.Context, f repository.ModelFilter) ([]models.Model, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Model
	for _, m := range r.models {
		if f.CustomerID != "" && m.CustomerID != f.CustomerID {
			continue
		}
		if f.CategorySlug != "" && (m.CategorySlug == nil || *m.CategorySlug != f.CategorySlug) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memRepo) UpdateModel(_ context.Context, m *models.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.models[m.ID]
	cur.Title, cur.Category, cur.CategorySlug = m.Title, m.Category, m.CategorySlug
	r.models[m.ID] = cur
	return nil
}

func (r *memRepo) DeleteModel(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.models, id)
	for vid, v := range r.variants {
		if v.ParentModelID == id {
			delete(r.variants, vid)
		}
	}
	return nil
}

func (r *memRepo) ListModelsMissingSlugs(_ context.Context) ([]models.Model, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Model
	for _, m := range r.models {
		if len(missingModelSlugs(&m)) > 0 {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) UpdateModelSlugs(_ context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failUpdate[id]; err != nil {
		return err
	}
	m, ok := r.models[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		s := v.(string)
		switch k {
		case "url_slug":
			m.URLSlug = &s
		case "customer_slug":
			m.CustomerSlug = &s
		case "category_slug":
			m.CategorySlug = &s
		}
	}
	r.models[id] = m
	r.writes++
	return nil
}

func (r *memRepo) CreateVariant(_ context.Context, v *models.Variant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.IsPrimary {
		r.clearPrimaryLocked(v.ParentModelID)
	}
	r.variants[v.ID] = *v
	return nil
}

func (r *memRepo) FindVariantByID(_ context.Context, id string) (*models.Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.variants[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *memRepo) FindVariantsByModel(_ context.Context, modelID string) ([]models.Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Variant
	for _, v := range r.variants {
		if v.ParentModelID == modelID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memRepo) ColorSlugTaken(_ context.Context, modelID, colorSlug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.variants {
		if v.ParentModelID == modelID && v.ColorSlug != nil && strings.EqualFold(*v.ColorSlug, colorSlug) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) SetPrimaryVariant(_ context.Context, modelID, variantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.variants[variantID]
	if !ok || v.ParentModelID != modelID {
		return gorm.ErrRecordNotFound
	}
	r.clearPrimaryLocked(modelID)
	v.IsPrimary = true
	r.variants[variantID] = v
	return nil
}

func (r *memRepo) clearPrimaryLocked(modelID string) {
	for id, v := range r.variants {
		if v.ParentModelID == modelID && v.IsPrimary {
			v.IsPrimary = false
			r.variants[id] = v
		}
	}
}

func (r *memRepo) DeleteVariant(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.variants, id)
	return nil
}

func (r *memRepo) ListVariantsMissingColorSlug(_ context.Context) ([]models.Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Variant
	for _, v := range r.variants {
		if isBlank(v.ColorSlug) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) UpdateColorSlug(_ context.Context, id, colorSlug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failUpdate[id]; err != nil {
		return err
	}
	v, ok := r.variants[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.ColorSlug = &colorSlug
	r.variants[id] = v
	r.writes++
	return nil
}

func (r *memRepo) CreateCustomer(_ context.Context, c *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[c.ID] = *c
	return nil
}

func (r *memRepo) FindCustomerByID(_ context.Context, id string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memRepo) UpdateBranding(_ context.Context, id string, b models.Branding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Branding = datatypes.NewJSONType(b)
	r.customers[id] = c
	return nil
}

func (r *memRepo) RecordView(_ context.Context, modelID string, variantID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.models[modelID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.ViewCount++
	r.models[modelID] = m
	if variantID != nil {
		v := r.variants[*variantID]
		v.ViewCount++
		r.variants[*variantID] = v
	}
	r.events = append(r.events, models.ViewEvent{ModelID: modelID, VariantID: variantID})
	return nil
}

func (r *memRepo) ViewStats(_ context.Context, modelID string) (*models.ViewStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.models[modelID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	stats := &models.ViewStats{ModelID: modelID, Total: m.ViewCount, Variants: map[string]int64{}}
	for _, e := range r.events {
		if e.ModelID == modelID && e.VariantID != nil {
			stats.Variants[*e.VariantID]++
		}
	}
	return stats, nil
}

// memMedia is an in-memory MediaStore.
type memMedia struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut bool
}

func newMemMedia() *memMedia { return &memMedia{objects: map[string][]byte{}} }

func (m *memMedia) Upload(ctx context.Context, prefix, filename string, r io.Reader, size int64, contentType string) (*storage.StoredMedia, error) {
	return m.Put(ctx, prefix+"/upload"+strings.ToLower(filename[strings.LastIndex(filename, "."):]), r, size, contentType)
}

func (m *memMedia) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (*storage.StoredMedia, error) {
	if m.failPut {
		return nil, errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return &storage.StoredMedia{Key: key, URL: "https://cdn.example.com/" + key, ContentType: contentType, Size: int64(len(data))}, nil
}

func (m *memMedia) Open(_ context.Context, key string) (io.ReadCloser, int64, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, 0, "", errors.New("no such key")
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), "", nil
}

func (m *memMedia) Delete(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			delete(m.objects, k)
		}
	}
	return nil
}

func (m *memMedia) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for k := range m.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// sequence returns ids from list in order.
func sequence(ids ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		if i >= len(ids) {
			return "", errors.New("sequence exhausted")
		}
		id := ids[i]
		i++
		return id, nil
	}
}
