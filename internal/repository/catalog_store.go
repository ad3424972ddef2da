package repository

// CatalogStore joins the model and variant repositories into the read
// store used for path resolution.
type CatalogStore struct {
	ModelRepository
	VariantRepository
}

func NewCatalogStore(models ModelRepository, variants VariantRepository) *CatalogStore {
	return &CatalogStore{ModelRepository: models, VariantRepository: variants}
}
