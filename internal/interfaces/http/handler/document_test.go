package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tradeapp "github.com/tilesgalleria/backoffice/internal/application/trade"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"github.com/tilesgalleria/backoffice/internal/interfaces/http/dto"
)

type fakeDocs struct {
	*memNotes
	status   map[uuid.UUID]string
	rendered bool
	printing bool
}

func (f *fakeDocs) Delete(ctx context.Context, id uuid.UUID) (*tradeapp.StockReport, error) {
	if err := f.memNotes.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &tradeapp.StockReport{Adjusted: 2}, nil
}

func (f *fakeDocs) UpdateStatus(ctx context.Context, id uuid.UUID, req tradeapp.StatusRequest) (*noteResponse, error) {
	n, err := f.memNotes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.status[id] = req.Status
	return n, nil
}

func (f *fakeDocs) PDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if !f.printing {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "PDF rendering is disabled")
	}
	if _, err := f.memNotes.GetByID(ctx, id); err != nil {
		return nil, err
	}
	f.rendered = true
	return []byte("%PDF-1.4 fake"), nil
}

func TestDocumentHandler(t *testing.T) {
	svc := &fakeDocs{memNotes: &memNotes{notes: map[uuid.UUID]noteResponse{}}, status: map[uuid.UUID]string{}, printing: true}
	h := NewDocumentHandler[noteRequest, noteResponse](svc, "invoice")

	r := newEngine()
	g := r.Group("/invoices")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id/status", h.UpdateStatus)
	g.GET("/:id/pdf", h.PDF)
	g.DELETE("/:id", h.Delete)

	var doc noteResponse
	w := do(r, http.MethodPost, "/invoices", noteRequest{Title: "INV-0001"})
	require.Equal(t, http.StatusCreated, w.Code)
	decode(t, w, &doc)
	path := "/invoices/" + doc.ID.String()

	t.Run("status patch", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPatch, path+"/status", map[string]string{}).Code)
		assert.Equal(t, http.StatusOK, do(r, http.MethodPatch, path+"/status", tradeapp.StatusRequest{Status: "paid"}).Code)
		assert.Equal(t, "paid", svc.status[doc.ID])
	})

	t.Run("pdf", func(t *testing.T) {
		w := do(r, http.MethodGet, path+"/pdf", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "invoice-"+doc.ID.String()+".pdf")
		assert.True(t, svc.rendered)

		svc.printing = false
		w = do(r, http.MethodGet, path+"/pdf", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, decode(t, w, nil).Error.Code)
	})

	t.Run("delete returns the stock report", func(t *testing.T) {
		var res DeleteResult
		w := do(r, http.MethodDelete, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &res)
		assert.Equal(t, doc.ID, res.ID)
		require.NotNil(t, res.Stock)
		assert.Equal(t, 2, res.Stock.Adjusted)

		assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, path, nil).Code)
	})
}
