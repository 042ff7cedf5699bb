package catalog

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/spreadsheet"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Import columns
const (
	colName     = "Product Name"
	colSize     = "Size"
	colTexture  = "Texture"
	colUsage    = "Area of Usage"
	colQuantity = "Quantity"
	colPrice    = "Price"
	colBoxes    = "Boxes"
	colTaxRate  = "Tax Rate"
	colImage    = "Image"
)

// ExportColumns is the header row of a product export
var ExportColumns = []string{"name", "productType", "texture", "size", "quantity", "price", "boxes", "taxRate", "image"}

const maxImportErrors = 200

// Import reads products from a .csv or .xlsx file. Rows without a name or a
// valid price are reported and skipped; every other row is created.
func (s *ProductService) Import(ctx context.Context, filename string, r io.Reader) (*ImportResult, error) {
	format, err := spreadsheet.FormatOf(filename)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, err.Error())
	}
	table, err := spreadsheet.Read(format, r)
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodeInvalidInput, "could not read import file", err)
	}
	if !table.HasHeader(colName) {
		return nil, shared.Validation("missing required column %q", colName)
	}

	title := cases.Title(language.English)
	errs := spreadsheet.NewErrorCollection(maxImportErrors)
	products := make([]*catalog.Product, 0, len(table.Rows))

	for _, row := range table.Rows {
		in, ok := parseProductRow(row, title, errs)
		if !ok {
			continue
		}
		p, err := catalog.NewProduct(in)
		if err != nil {
			errs.Add(spreadsheet.RowError{Row: row.LineNumber, Message: err.Error()})
			continue
		}
		products = append(products, p)
	}

	if len(products) > 0 {
		if err := s.productRepo.SaveBatch(ctx, products); err != nil {
			return nil, err
		}
		for _, p := range products {
			s.publish(ctx, p.ID, shared.ActionCreated)
		}
	}

	s.logger.Info("product import finished",
		zap.String("file", filename),
		zap.Int("imported", len(products)),
		zap.Int("failed", errs.TotalCount()))

	return &ImportResult{
		Imported: len(products),
		Failed:   errs.TotalCount(),
		Errors:   errs.Errors(),
	}, nil
}

func parseProductRow(row spreadsheet.Row, title cases.Caser, errs *spreadsheet.ErrorCollection) (catalog.ProductInput, bool) {
	in := catalog.ProductInput{
		Name:    row.Get(colName),
		Size:    row.Get(colSize),
		Texture: row.Get(colTexture),
		Image:   row.Get(colImage),
	}
	if usage := row.Get(colUsage); usage != "" {
		in.ProductType = title.String(strings.ToLower(usage))
	}

	ok := true
	if in.Name == "" {
		errs.AddRequired(row.LineNumber, colName)
		ok = false
	}

	price := row.Get(colPrice)
	if price == "" {
		errs.AddRequired(row.LineNumber, colPrice)
		ok = false
	} else if d, err := decimal.NewFromString(price); err != nil {
		errs.AddInvalid(row.LineNumber, colPrice, "a number", price)
		ok = false
	} else {
		in.Price = d
	}

	for _, f := range []struct {
		column string
		dst    *decimal.Decimal
	}{{colQuantity, &in.Quantity}, {colBoxes, &in.Boxes}} {
		v := row.Get(f.column)
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			errs.AddInvalid(row.LineNumber, f.column, "a number", v)
			ok = false
			continue
		}
		*f.dst = d
	}

	if v := strings.TrimSuffix(row.Get(colTaxRate), "%"); v != "" {
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			errs.AddInvalid(row.LineNumber, colTaxRate, "a percentage", v)
			ok = false
		} else {
			in.TaxRate = &d
		}
	}
	return in, ok
}

// Export writes every product to w in the given format
func (s *ProductService) Export(ctx context.Context, w io.Writer, format spreadsheet.Format) error {
	filter := shared.DefaultFilter()
	filter.PageSize = shared.MaxPageSize
	filter.OrderDir = "asc"

	var rows [][]string
	for {
		page, err := s.productRepo.FindAll(ctx, filter)
		if err != nil {
			return err
		}
		for _, p := range page {
			rows = append(rows, []string{
				p.Name, p.ProductType, p.Texture, p.Size,
				p.Quantity.String(), p.Price.StringFixed(2), p.Boxes.String(),
				p.TaxRate.String(), p.Image,
			})
		}
		if len(page) < filter.PageSize {
			break
		}
		filter.Page++
	}

	return spreadsheet.Write(w, format, "Products", ExportColumns, rows)
}
