package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// CRUDService is the shape shared by the partner, expense and pre-purchase services
type CRUDService[Req, Resp any] interface {
	Create(ctx context.Context, req Req) (*Resp, error)
	Update(ctx context.Context, id uuid.UUID, req Req) (*Resp, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Resp, error)
	List(ctx context.Context, filter shared.Filter) ([]Resp, int64, error)
}

// ResourceHandler exposes a CRUDService as REST endpoints:
//
//	POST   /         Create
//	GET    /         List
//	GET    /:id      GetByID
//	PUT    /:id      Update
//	DELETE /:id      Delete
type ResourceHandler[Req, Resp any] struct {
	BaseHandler
	svc CRUDService[Req, Resp]
}

// NewResourceHandler creates a ResourceHandler
func NewResourceHandler[Req, Resp any](svc CRUDService[Req, Resp]) *ResourceHandler[Req, Resp] {
	return &ResourceHandler[Req, Resp]{svc: svc}
}

func (h *ResourceHandler[Req, Resp]) Create(c *gin.Context) {
	var req Req
	if !h.bindJSON(c, &req) {
		return
	}
	out, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, out)
}

func (h *ResourceHandler[Req, Resp]) List(c *gin.Context) {
	list(&h.BaseHandler, c, func(f shared.Filter) ([]Resp, int64, error) {
		return h.svc.List(c.Request.Context(), f)
	})
}

func (h *ResourceHandler[Req, Resp]) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	out, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

func (h *ResourceHandler[Req, Resp]) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req Req
	if !h.bindJSON(c, &req) {
		return
	}
	out, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

func (h *ResourceHandler[Req, Resp]) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
