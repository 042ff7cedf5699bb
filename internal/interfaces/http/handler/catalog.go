package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	catalogapp "github.com/tilesgalleria/backoffice/internal/application/catalog"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/spreadsheet"
)

// ProductHandler handles product, stock, bulk and coverage endpoints
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
	coverage *catalogapp.CoverageService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService, coverage *catalogapp.CoverageService) *ProductHandler {
	return &ProductHandler{products: products, coverage: coverage}
}

// Create godoc
// @ID           createProduct
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.ProductRequest true "Product"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// List godoc
// @ID           listProducts
// @Summary      List products
// @Description  Paginated product list. Search matches name, type, texture and size.
// @Tags         products
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Param        search    query string false "Search term"
// @Param        order_by  query string false "Sort field" default(created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc) default(desc)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Security     BearerAuth
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	list(&h.BaseHandler, c, func(f shared.Filter) ([]catalogapp.ProductResponse, int64, error) {
		return h.products.List(c.Request.Context(), f)
	})
}

// GetByID godoc
// @ID           getProduct
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Update godoc
// @ID           updateProduct
// @Summary      Update a product
// @Description  Replace product attributes. Stock counters are left unchanged.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.ProductRequest true "Product"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// SetStock godoc
// @ID           setProductStock
// @Summary      Overwrite stock counters
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.StockRequest true "Stock counters"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id}/stock [patch]
func (h *ProductHandler) SetStock(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.StockRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.products.SetStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @ID           deleteProduct
// @Summary      Delete a product
// @Tags         products
// @Param        id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Import godoc
// @ID           importProducts
// @Summary      Bulk import products
// @Description  Upload a .csv or .xlsx sheet. Bad rows are reported and the rest are created.
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Spreadsheet"
// @Success      200 {object} APIResponse[catalogapp.ImportResult]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/bulk/import [post]
func (h *ProductHandler) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file field is required")
		return
	}
	f, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read the uploaded file")
		return
	}
	defer f.Close()

	result, err := h.products.Import(c.Request.Context(), header.Filename, f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Export godoc
// @ID           exportProducts
// @Summary      Bulk export products
// @Tags         products
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format query string false "File format" Enums(csv, xlsx) default(csv)
// @Success      200 {file} file
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/bulk/export [get]
func (h *ProductHandler) Export(c *gin.Context) {
	format := spreadsheet.Format(strings.ToLower(c.DefaultQuery("format", string(spreadsheet.FormatCSV))))
	var contentType string
	switch format {
	case spreadsheet.FormatCSV:
		contentType = "text/csv; charset=utf-8"
	case spreadsheet.FormatXLSX:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		h.BadRequest(c, "format must be csv or xlsx")
		return
	}

	var buf bytes.Buffer
	if err := h.products.Export(c.Request.Context(), &buf, format); err != nil {
		h.HandleError(c, err)
		return
	}
	name := fmt.Sprintf("products-%s.%s", time.Now().Format("20060102"), format)
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Coverage godoc
// @ID           getCoverage
// @Summary      Box coverage table
// @Description  Square metres per box, by category
// @Tags         products
// @Produce      json
// @Success      200 {object} APIResponse[catalogapp.CoverageResponse]
// @Security     BearerAuth
// @Router       /products/coverage [get]
func (h *ProductHandler) Coverage(c *gin.Context) {
	h.Success(c, h.coverage.Table())
}

// Boxes godoc
// @ID           convertBoxes
// @Summary      Convert square metres to boxes
// @Tags         products
// @Produce      json
// @Param        category query string false "Product category"
// @Param        qty      query number true  "Quantity in square metres"
// @Success      200 {object} APIResponse[catalogapp.BoxesResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/coverage/boxes [get]
func (h *ProductHandler) Boxes(c *gin.Context) {
	qty, err := decimal.NewFromString(c.Query("qty"))
	if err != nil {
		h.BadRequest(c, "qty must be a number")
		return
	}
	resp, err := h.coverage.Boxes(c.Query("category"), qty)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	BaseHandler
	categories *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// Create godoc
// @ID           createCategory
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CategoryRequest true "Category"
// @Success      201 {object} APIResponse[catalogapp.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	category, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// List godoc
// @ID           listCategories
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20) maximum(100)
// @Param        search    query string false "Search term"
// @Success      200 {object} APIResponse[[]catalogapp.CategoryResponse]
// @Security     BearerAuth
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	list(&h.BaseHandler, c, func(f shared.Filter) ([]catalogapp.CategoryResponse, int64, error) {
		return h.categories.List(c.Request.Context(), f)
	})
}
