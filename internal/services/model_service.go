package services

import (
	"context"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"catalog-service/internal/extraction"
	"catalog-service/internal/metrics"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"catalog-service/internal/slug"
	"catalog-service/internal/storage"
)

// MediaStore is where model files live.
type MediaStore interface {
	Upload(ctx context.Context, prefix, filename string, r io.Reader, size int64, contentType string) (*storage.StoredMedia, error)
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*storage.StoredMedia, error)
	Open(ctx context.Context, key string) (io.ReadCloser, int64, string, error)
	Delete(ctx context.Context, prefix string) error
}

// CreateModelInput is a model upload. File holds Size bytes named Filename.
type CreateModelInput struct {
	Title      string
	CustomerID string
	Category   string
	Filename   string
	File       io.Reader
	Size       int64
}

// UpdateModelInput changes metadata. Nil fields are left alone; an empty
// Category clears it.
type UpdateModelInput struct {
	Title    *string
	Category *string
}

// ModelService manages model metadata and files.
type ModelService struct {
	models   repository.ModelRepository
	variants repository.VariantRepository
	media    MediaStore
	newID    func() (string, error)
}

func NewModelService(models repository.ModelRepository, variants repository.VariantRepository, media MediaStore) *ModelService {
	return &ModelService{
		models:   models,
		variants: variants,
		media:    media,
		newID:    NewID,
	}
}

// isAllowedUpload checks if a file extension is accepted for upload.
func isAllowedUpload(ext string) bool {
	return extraction.IsModelFile(ext) || ext == ".zip"
}

func contentTypeFor(name string) string {
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".glb":
		return "model/gltf-binary"
	case ".gltf":
		return "model/gltf+json"
	case ".bin":
		return "application/octet-stream"
	default:
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
	}
	return "application/octet-stream"
}

func modelPrefix(id string) string {
	return "models/" + id
}

// CreateModel stores the uploaded file and its metadata. Slugs are assigned
// here and url_slug never changes afterwards.
func (s *ModelService) CreateModel(ctx context.Context, in CreateModelInput) (*models.Model, error) {
	title := strings.TrimSpace(in.Title)
	customerID := strings.ToLower(strings.TrimSpace(in.CustomerID))
	ext := strings.ToLower(filepath.Ext(in.Filename))
	switch {
	case title == "":
		return nil, invalidInput("title is required")
	case customerID == "":
		return nil, invalidInput("customer_id is required")
	case !isAllowedUpload(ext):
		return nil, invalidInput("unsupported file format: %s", ext)
	}

	id, err := uniqueID(ctx, s.newID, s.models.ModelExists)
	if err != nil {
		return nil, err
	}
	prefix := modelPrefix(id)

	var stored *storage.StoredMedia
	if ext == ".zip" {
		stored, err = s.storeArchive(ctx, prefix, in.File)
	} else {
		stored, err = s.media.Upload(ctx, prefix, in.Filename, in.File, in.Size, contentTypeFor(in.Filename))
	}
	if err != nil {
		return nil, err
	}

	m := &models.Model{
		ID:           id,
		Title:        title,
		CustomerID:   customerID,
		URLSlug:      strPtr(slug.ModelSlug(title, id)),
		CustomerSlug: strPtr(slug.Normalize(customerID)),
		FileURL:      stored.URL,
		PublicID:     stored.Key,
		ContentType:  stored.ContentType,
		Size:         stored.Size,
	}
	setCategory(m, in.Category)

	if err := s.models.CreateModel(ctx, m); err != nil {
		// remove the upload so no orphan files are left behind
		if derr := s.media.Delete(ctx, prefix); derr != nil {
			log.Ctx(ctx).Error().Err(derr).Str("prefix", prefix).Msg("failed to remove orphaned upload")
		}
		return nil, errors.Wrap(err, "failed to save metadata to database")
	}
	metrics.RecordUpload(stored.Size)
	log.Ctx(ctx).Info().Str("model_id", id).Str("customer_id", customerID).Int64("size", stored.Size).Msg("model created")
	return m, nil
}

// storeArchive unpacks a zip and uploads every entry under prefix, keeping
// relative paths. It returns the primary model file.
func (s *ModelService) storeArchive(ctx context.Context, prefix string, r io.Reader) (*storage.StoredMedia, error) {
	tmp, err := os.CreateTemp("", "upload-*.zip")
	if err != nil {
		return nil, errors.Wrap(err, "could not create temporary file for archive")
	}
	defer os.Remove(tmp.Name())
	_, err = io.Copy(tmp, r)
	tmp.Close()
	if err != nil {
		return nil, errors.Wrap(err, "failed to write uploaded archive")
	}

	files, dir, err := extraction.ExtractArchive(ctx, tmp.Name())
	if err != nil {
		return nil, &InputError{Msg: "failed to extract archive", Err: err}
	}
	defer os.RemoveAll(dir)

	primary, err := extraction.PrimaryModel(files)
	if err != nil {
		return nil, &InputError{Msg: err.Error()}
	}

	var main *storage.StoredMedia
	for _, f := range files {
		stored, err := s.putFile(ctx, path.Join(prefix, f.Rel), f.Path)
		if err != nil {
			if derr := s.media.Delete(ctx, prefix); derr != nil {
				log.Ctx(ctx).Error().Err(derr).Str("prefix", prefix).Msg("failed to remove partial upload")
			}
			return nil, err
		}
		if f.Rel == primary.Rel {
			main = stored
		}
	}
	return main, nil
}

func (s *ModelService) putFile(ctx context.Context, key, localPath string) (*storage.StoredMedia, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, errors.Wrap(err, "open extracted file")
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat extracted file")
	}
	return s.media.Put(ctx, key, f, stat.Size(), contentTypeFor(localPath))
}

// GetModel returns the model with its variants.
func (s *ModelService) GetModel(ctx context.Context, id string) (*models.Model, error) {
	m, err := s.models.FindModelByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "find model")
	}
	if m == nil {
		return nil, ErrNotFound
	}
	variants, err := s.variants.FindVariantsByModel(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "find variants")
	}
	m.Variants = variants
	return m, nil
}

// ListModels lists models newest first. customerID and category are
// optional filters; category is matched on its slug.
func (s *ModelService) ListModels(ctx context.Context, customerID, category string, limit, offset int) ([]models.Model, error) {
	filter := repository.ModelFilter{
		CustomerID: strings.ToLower(strings.TrimSpace(customerID)),
		Limit:      limit,
		Offset:     offset,
	}
	if strings.TrimSpace(category) != "" {
		filter.CategorySlug = slug.Normalize(category)
	}
	out, err := s.models.ListModels(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "list models")
	}
	return out, nil
}

// UpdateModel edits title and category. The url_slug is not regenerated so
// published links stay valid.
func (s *ModelService) UpdateModel(ctx context.Context, id string, in UpdateModelInput) (*models.Model, error) {
	m, err := s.models.FindModelByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "find model")
	}
	if m == nil {
		return nil, ErrNotFound
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, invalidInput("title must not be empty")
		}
		m.Title = title
	}
	if in.Category != nil {
		setCategory(m, *in.Category)
	}
	if err := s.models.UpdateModel(ctx, m); err != nil {
		return nil, errors.Wrap(err, "update model")
	}
	return m, nil
}

// DeleteModel removes the row, its variants and its files.
func (s *ModelService) DeleteModel(ctx context.Context, id string) error {
	m, err := s.models.FindModelByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "find model")
	}
	if m == nil {
		return ErrNotFound
	}
	if err := s.models.DeleteModel(ctx, id); err != nil {
		return errors.Wrap(err, "delete model")
	}
	if err := s.media.Delete(ctx, modelPrefix(id)); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("model_id", id).Msg("model deleted but files remain")
	}
	return nil
}

// OpenModelFile streams the stored model file.
func (s *ModelService) OpenModelFile(ctx context.Context, id string) (io.ReadCloser, int64, string, *models.Model, error) {
	m, err := s.models.FindModelByID(ctx, id)
	if err != nil {
		return nil, 0, "", nil, errors.Wrap(err, "find model")
	}
	if m == nil {
		return nil, 0, "", nil, ErrNotFound
	}
	rc, size, contentType, err := s.media.Open(ctx, m.PublicID)
	if err != nil {
		return nil, 0, "", nil, errors.Wrap(err, "open model file")
	}
	if contentType == "" {
		contentType = m.ContentType
	}
	return rc, size, contentType, m, nil
}

func setCategory(m *models.Model, category string) {
	category = strings.TrimSpace(category)
	if category == "" {
		m.Category, m.CategorySlug = nil, nil
		return
	}
	m.Category = strPtr(category)
	m.CategorySlug = strPtr(slug.Normalize(category))
}

func strPtr(s string) *string {
	return &s
}
