package services

import (
	"catalog-service/internal/models"
	"catalog-service/internal/slug"
)

func modelFixture(id, title, customer string) models.Model {
	return models.Model{
		ID:           id,
		Title:        title,
		CustomerID:   customer,
		URLSlug:      strPtr(slug.ModelSlug(title, id)),
		CustomerSlug: strPtr(customer),
		PublicID:     "models/" + id + "/file.glb",
		ContentType:  "model/gltf-binary",
	}
}

func variantFixture(id, modelID, name, hex string) models.Variant {
	return models.Variant{
		ID:            id,
		ParentModelID: modelID,
		VariantName:   strPtr(name),
		HexColor:      hex,
		ColorSlug:     strPtr(slug.Normalize(name)),
	}
}
