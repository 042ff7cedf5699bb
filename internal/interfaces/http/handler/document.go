package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/tilesgalleria/backoffice/internal/application/trade"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// DocumentService is implemented by the five order-like document services
type DocumentService[Req, Resp any] interface {
	Create(ctx context.Context, req Req) (*Resp, error)
	Update(ctx context.Context, id uuid.UUID, req Req) (*Resp, error)
	Delete(ctx context.Context, id uuid.UUID) (*tradeapp.StockReport, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req tradeapp.StatusRequest) (*Resp, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Resp, error)
	List(ctx context.Context, filter shared.Filter) ([]Resp, int64, error)
	PDF(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// DeleteResult reports the stock reversal of a deleted document
// @Description Deleted document and its stock reversal
type DeleteResult struct {
	ID    uuid.UUID             `json:"id"`
	Stock *tradeapp.StockReport `json:"stock,omitempty"`
}

// DocumentHandler exposes a document service. Stock is adjusted by create,
// update and delete; status changes leave it alone.
type DocumentHandler[Req, Resp any] struct {
	BaseHandler
	svc  DocumentService[Req, Resp]
	name string
}

// Document handlers per kind
type (
	InvoiceHandler         = DocumentHandler[tradeapp.InvoiceRequest, tradeapp.InvoiceResponse]
	ManualInvoiceHandler   = DocumentHandler[tradeapp.ManualInvoiceRequest, tradeapp.ManualInvoiceResponse]
	QuotationHandler       = DocumentHandler[tradeapp.QuotationRequest, tradeapp.QuotationResponse]
	ManualQuotationHandler = DocumentHandler[tradeapp.ManualQuotationRequest, tradeapp.ManualQuotationResponse]
	PurchaseOrderHandler   = DocumentHandler[tradeapp.PurchaseOrderRequest, tradeapp.PurchaseOrderResponse]
)

// NewDocumentHandler creates a DocumentHandler. name prefixes PDF file names.
func NewDocumentHandler[Req, Resp any](svc DocumentService[Req, Resp], name string) *DocumentHandler[Req, Resp] {
	return &DocumentHandler[Req, Resp]{svc: svc, name: name}
}

func NewInvoiceHandler(svc *tradeapp.InvoiceService) *InvoiceHandler {
	return NewDocumentHandler[tradeapp.InvoiceRequest, tradeapp.InvoiceResponse](svc, "invoice")
}

func NewManualInvoiceHandler(svc *tradeapp.ManualInvoiceService) *ManualInvoiceHandler {
	return NewDocumentHandler[tradeapp.ManualInvoiceRequest, tradeapp.ManualInvoiceResponse](svc, "manual-invoice")
}

func NewQuotationHandler(svc *tradeapp.QuotationService) *QuotationHandler {
	return NewDocumentHandler[tradeapp.QuotationRequest, tradeapp.QuotationResponse](svc, "quotation")
}

func NewManualQuotationHandler(svc *tradeapp.ManualQuotationService) *ManualQuotationHandler {
	return NewDocumentHandler[tradeapp.ManualQuotationRequest, tradeapp.ManualQuotationResponse](svc, "manual-quotation")
}

func NewPurchaseOrderHandler(svc *tradeapp.PurchaseOrderService) *PurchaseOrderHandler {
	return NewDocumentHandler[tradeapp.PurchaseOrderRequest, tradeapp.PurchaseOrderResponse](svc, "purchase-order")
}

func (h *DocumentHandler[Req, Resp]) Create(c *gin.Context) {
	var req Req
	if !h.bindJSON(c, &req) {
		return
	}
	doc, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, doc)
}

func (h *DocumentHandler[Req, Resp]) List(c *gin.Context) {
	list(&h.BaseHandler, c, func(f shared.Filter) ([]Resp, int64, error) {
		return h.svc.List(c.Request.Context(), f)
	})
}

func (h *DocumentHandler[Req, Resp]) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	doc, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

func (h *DocumentHandler[Req, Resp]) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req Req
	if !h.bindJSON(c, &req) {
		return
	}
	doc, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

func (h *DocumentHandler[Req, Resp]) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.StatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	doc, err := h.svc.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

func (h *DocumentHandler[Req, Resp]) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	report, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DeleteResult{ID: id, Stock: report})
}

// PDF streams the rendered document inline
func (h *DocumentHandler[Req, Resp]) PDF(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	pdf, err := h.svc.PDF(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+h.name+"-"+id.String()+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
