package catalog

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// Category groups products by type ("Tiles", "Adhesive", ...)
type Category struct {
	shared.BaseEntity
	Name  string
	Slug  string
	Image string
}

// NewCategory creates a new category with a slug derived from its name
func NewCategory(name, image string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validation("category name is required")
	}
	if len(name) > 100 {
		return nil, shared.Validation("category name cannot exceed 100 characters")
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Slug:       slug.Make(name),
		Image:      image,
	}, nil
}
