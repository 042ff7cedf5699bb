package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogapp "github.com/tilesgalleria/backoffice/internal/application/catalog"
	"github.com/tilesgalleria/backoffice/internal/domain/catalog"
	"github.com/tilesgalleria/backoffice/internal/infrastructure/persistence"
	"github.com/xuri/excelize/v2"
)

func newCatalogEngine(t *testing.T) *gin.Engine {
	t.Helper()
	db := newSQLiteDB(t)
	table, err := catalog.NewCoverageTable(decimal.RequireFromString("1.44"), map[string]decimal.Decimal{
		"Floor Tiles": decimal.RequireFromString("2.16"),
	})
	require.NoError(t, err)

	products := NewProductHandler(
		catalogapp.NewProductService(persistence.NewGormProductRepository(db), nil, nil),
		catalogapp.NewCoverageService(table),
	)
	categories := NewCategoryHandler(catalogapp.NewCategoryService(persistence.NewGormCategoryRepository(db)))

	r := newEngine()
	g := r.Group("/api/v1")
	g.GET("/products/coverage", products.Coverage)
	g.GET("/products/coverage/boxes", products.Boxes)
	g.POST("/products/bulk/import", products.Import)
	g.GET("/products/bulk/export", products.Export)
	g.POST("/products", products.Create)
	g.GET("/products", products.List)
	g.GET("/products/:id", products.GetByID)
	g.PUT("/products/:id", products.Update)
	g.PATCH("/products/:id/stock", products.SetStock)
	g.DELETE("/products/:id", products.Delete)
	g.POST("/categories", categories.Create)
	g.GET("/categories", categories.List)
	return r
}

func multipartFile(t *testing.T, path, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestProductHandler_CRUD(t *testing.T) {
	r := newCatalogEngine(t)

	var created catalogapp.ProductResponse
	w := do(r, http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Carrara", "product_type": "Wall Tiles", "size": "600x600",
		"quantity": "423.36", "boxes": "294", "price": "45.50",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &created)
	assert.True(t, created.Quantity.Equal(decimal.RequireFromString("423.36")))

	w = do(r, http.MethodPost, "/api/v1/products", map[string]any{"name": "Bad", "price": "-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := "/api/v1/products/" + created.ID.String()

	var updated catalogapp.ProductResponse
	w = do(r, http.MethodPut, path, map[string]any{"name": "Carrara Gloss", "price": "49", "quantity": "1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &updated)
	assert.Equal(t, "Carrara Gloss", updated.Name)
	assert.True(t, updated.Quantity.Equal(created.Quantity), "update must not move stock")

	w = do(r, http.MethodPatch, path+"/stock", map[string]any{"quantity": "10", "boxes": "7"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &updated)
	assert.True(t, updated.Boxes.Equal(decimal.NewFromInt(7)))

	var items []catalogapp.ProductResponse
	w = do(r, http.MethodGet, "/api/v1/products?search=gloss", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w, &items)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), env.Meta.Total)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, path, nil).Code)
}

func TestProductHandler_Bulk(t *testing.T) {
	r := newCatalogEngine(t)

	csv := "Product Name,Size,Texture,Area of Usage,Quantity,Price,Boxes,Tax Rate,Image\n" +
		"Carrara,600x600,Gloss,wall tiles,100,45.50,70,10,\n" +
		",600x600,Matt,floor,10,20,,,\n"

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartFile(t, "/api/v1/products/bulk/import", "stock.csv", []byte(csv)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result catalogapp.ImportResult
	decode(t, w, &result)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Failed)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartFile(t, "/api/v1/products/bulk/import", "stock.txt", []byte(csv)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/v1/products/bulk/import", nil).Code)

	w = do(r, http.MethodGet, "/api/v1/products/bulk/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, w.Body.String(), "name,productType,texture,size")
	assert.Contains(t, w.Body.String(), "Carrara,Wall Tiles")

	w = do(r, http.MethodGet, "/api/v1/products/bulk/export?format=xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Carrara", rows[1][0])

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/products/bulk/export?format=pdf", nil).Code)
}

func TestProductHandler_Coverage(t *testing.T) {
	r := newCatalogEngine(t)

	var table catalogapp.CoverageResponse
	w := do(r, http.MethodGet, "/api/v1/products/coverage", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &table)
	assert.True(t, table.Default.Equal(decimal.RequireFromString("1.44")))

	var boxes catalogapp.BoxesResponse
	w = do(r, http.MethodGet, "/api/v1/products/coverage/boxes?category=floor%20tiles&qty=50", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &boxes)
	assert.True(t, boxes.Boxes.Equal(decimal.NewFromInt(24)), boxes.Boxes.String())

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/products/coverage/boxes?qty=lots", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/products/coverage/boxes?qty=-3", nil).Code)
}

func TestCategoryHandler(t *testing.T) {
	r := newCatalogEngine(t)

	var cat catalogapp.CategoryResponse
	w := do(r, http.MethodPost, "/api/v1/categories", catalogapp.CategoryRequest{Name: "Floor Tiles"})
	require.Equal(t, http.StatusCreated, w.Code)
	decode(t, w, &cat)
	assert.Equal(t, "floor-tiles", cat.Slug)

	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/api/v1/categories", catalogapp.CategoryRequest{Name: "Floor Tiles"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/v1/categories", catalogapp.CategoryRequest{}).Code)

	var cats []catalogapp.CategoryResponse
	decode(t, do(r, http.MethodGet, "/api/v1/categories", nil), &cats)
	assert.Len(t, cats, 1)
}
