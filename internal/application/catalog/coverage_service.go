package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// CoverageService exposes the box coverage table
type CoverageService struct {
	table *catalog.CoverageTable
}

func NewCoverageService(table *catalog.CoverageTable) *CoverageService {
	return &CoverageService{table: table}
}

func (s *CoverageService) Table() CoverageResponse {
	return CoverageResponse{Default: s.table.Default, ByCategory: s.table.Entries()}
}

// Boxes converts a quantity in square metres to boxes for a category
func (s *CoverageService) Boxes(category string, qty decimal.Decimal) (*BoxesResponse, error) {
	if qty.IsNegative() {
		return nil, shared.Validation("quantity cannot be negative")
	}
	return &BoxesResponse{
		Category: category,
		Quantity: qty,
		Coverage: s.table.CoverageFor(category),
		Boxes:    s.table.Boxes(category, qty),
	}, nil
}
