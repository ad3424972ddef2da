// Package resolver maps SEO and QR path segments to a concrete model and
// optional variant.
//
// Resolution runs parse -> look up by id -> verify owner -> fall back to a
// slug lookup -> match variant. Every expected miss is reported through
// Result.Outcome; the error return is reserved for data-store failures.
package resolver

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"catalog-service/internal/models"
	"catalog-service/internal/slug"
)

// DefaultTimeout bounds all store calls made for one resolution.
const DefaultTimeout = 3 * time.Second

// Store is the read side of the data store the resolver needs. Lookups
// that find nothing return a nil model or an empty slice, not an error.
type Store interface {
	FindModelByID(ctx context.Context, id string) (*models.Model, error)
	FindModelsBySlug(ctx context.Context, customerSlug, urlSlug string) ([]models.Model, error)
	FindVariantsByModel(ctx context.Context, modelID string) ([]models.Variant, error)
}

// Outcome discriminates a resolution result.
type Outcome int

const (
	Resolved Outcome = iota
	ModelNotFound
	WrongCustomer
	VariantNotFound
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case ModelNotFound:
		return "model_not_found"
	case WrongCustomer:
		return "wrong_customer"
	case VariantNotFound:
		return "variant_not_found"
	}
	return "unknown"
}

// Result is the outcome of a resolution. Model is set for Resolved and
// VariantNotFound; Variant only for Resolved with a variant segment.
type Result struct {
	Outcome Outcome
	Model   *models.Model
	Variant *models.Variant
}

// Found reports whether a model can be served, ignoring an unmatched variant.
func (r Result) Found() bool {
	return r.Model != nil && (r.Outcome == Resolved || r.Outcome == VariantNotFound)
}

// ErrStoreUnavailable matches every error the resolver returns.
var ErrStoreUnavailable = errors.New("data store unavailable")

// StoreError is a failed data-store call.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "resolver: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStoreUnavailable }

// Resolver resolves path segments against a Store.
type Resolver struct {
	store   Store
	timeout time.Duration
}

// New creates a Resolver. A non-positive timeout selects DefaultTimeout.
func New(store Store, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{store: store, timeout: timeout}
}

// Resolve maps (customer, product segment, optional variant segment) to a
// model. variantSlug may be empty.
func (r *Resolver) Resolve(ctx context.Context, customerSlug, productSlugWithID, variantSlug string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.resolve(ctx, customerSlug, productSlugWithID, variantSlug)
}

// ResolveStem resolves a QR file stem, "{product-slug}-{id}[-{variant}]",
// trying each id position and then each legacy product/variant boundary
// until one yields a model. All attempts share one deadline.
func (r *Resolver) ResolveStem(ctx context.Context, customerSlug, stem string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tried := make(map[slug.Split]bool)
	res := Result{Outcome: ModelNotFound}
	for _, split := range append(slug.StemCandidates(stem), slug.LegacySplits(stem)...) {
		if tried[split] {
			continue
		}
		tried[split] = true

		var err error
		res, err = r.resolve(ctx, customerSlug, split.Product, split.Variant)
		if err != nil {
			return Result{}, err
		}
		if res.Outcome != ModelNotFound {
			return res, nil
		}
	}
	return res, nil
}

func (r *Resolver) resolve(ctx context.Context, customerSlug, productSlugWithID, variantSlug string) (Result, error) {
	customerSlug = strings.TrimSpace(customerSlug)
	productSlugWithID = strings.TrimSpace(productSlugWithID)
	if customerSlug == "" || productSlugWithID == "" {
		return Result{Outcome: ModelNotFound}, nil
	}

	model, err := r.findModel(ctx, customerSlug, productSlugWithID)
	if err != nil {
		return Result{}, err
	}
	if model == nil {
		return Result{Outcome: ModelNotFound}, nil
	}
	if !strings.EqualFold(model.OwnerSlug(), customerSlug) {
		log.Ctx(ctx).Debug().
			Str("model_id", model.ID).
			Str("requested_customer", customerSlug).
			Msg("model requested under another customer")
		return Result{Outcome: WrongCustomer}, nil
	}

	variantSlug = strings.TrimSpace(variantSlug)
	if variantSlug == "" {
		return Result{Outcome: Resolved, Model: model}, nil
	}
	variants, err := r.store.FindVariantsByModel(ctx, model.ID)
	if err != nil {
		return Result{}, &StoreError{Op: "find variants", Err: err}
	}
	for i := range variants {
		if strings.EqualFold(variants[i].PathSlug(), variantSlug) {
			return Result{Outcome: Resolved, Model: model, Variant: &variants[i]}, nil
		}
	}
	return Result{Outcome: VariantNotFound, Model: model}, nil
}

// findModel prefers the embedded id. When the segment carries no id, or the
// id-shaped token is just a word, it falls back to an exact slug lookup.
func (r *Resolver) findModel(ctx context.Context, customerSlug, productSlugWithID string) (*models.Model, error) {
	if id, ok := slug.ExtractID(productSlugWithID); ok {
		model, err := r.store.FindModelByID(ctx, id)
		if err != nil {
			return nil, &StoreError{Op: "find model by id", Err: err}
		}
		if model != nil {
			return model, nil
		}
	}

	candidates, err := r.store.FindModelsBySlug(ctx, strings.ToLower(customerSlug), productSlugWithID)
	if err != nil {
		return nil, &StoreError{Op: "find models by slug", Err: err}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	if len(candidates) > 1 {
		log.Ctx(ctx).Warn().
			Str("customer_slug", customerSlug).
			Str("url_slug", productSlugWithID).
			Int("matches", len(candidates)).
			Msg("colliding legacy slugs, picking newest")
	}
	return newest(candidates), nil
}

// newest picks the most recently created model, breaking ties on the
// larger id so the choice does not depend on store ordering.
func newest(ms []models.Model) *models.Model {
	sorted := make([]models.Model, len(ms))
	copy(sorted, ms)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})
	return &sorted[0]
}
