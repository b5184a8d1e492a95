package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vsinha/production/pkg/application/dto"
	"github.com/vsinha/production/pkg/application/services/production"
)

// ProductionHandler serves the production order endpoints
type ProductionHandler struct {
	svc *production.ProductionService
}

// NewProductionHandler creates a production handler
func NewProductionHandler(svc *production.ProductionService) *ProductionHandler {
	return &ProductionHandler{svc: svc}
}

// PreviewRequest is the body of the preview and recompute endpoints
type PreviewRequest struct {
	Disassembly *bool            `json:"disassembly"`
	Quantity    *decimal.Decimal `json:"quantity"`
}

// DisassembleRequest is the body of the batch disassembly endpoint
type DisassembleRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

func (r PreviewRequest) toService() production.PreviewRequest {
	return production.PreviewRequest{Disassembly: r.Disassembly, Quantity: r.Quantity}
}

func (h *ProductionHandler) List(c *gin.Context) {
	orders, err := h.svc.ListProductions(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	views := make([]dto.ProductionView, 0, len(orders))
	for _, order := range orders {
		views = append(views, dto.NewProductionView(order))
	}
	Success(c, gin.H{"items": views, "total": len(views)})
}

func (h *ProductionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.svc.GetProduction(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, dto.NewProductionView(order))
}

// Events returns the production's recorded history, oldest first
func (h *ProductionHandler) Events(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	history, err := h.svc.History(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"items": history, "total": len(history)})
}

// Preview returns the replace-all delta the edits would produce, without saving
func (h *ProductionHandler) Preview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req PreviewRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	changes, err := h.svc.Preview(c.Request.Context(), id, req.toService())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, dto.NewChangesView(changes))
}

func (h *ProductionHandler) Recompute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req PreviewRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	order, err := h.svc.Recompute(c.Request.Context(), id, req.toService())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, dto.NewProductionView(order))
}

// Disassemble runs the disassembly of the order in the path
func (h *ProductionHandler) Disassemble(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	report, err := h.svc.Disassemble(c.Request.Context(), []uuid.UUID{id})
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, dto.NewReportView(report))
}

// DisassembleBatch runs the disassembly of every order in the body.
// Per-order failures are listed in the report, the reply stays 200.
func (h *ProductionHandler) DisassembleBatch(c *gin.Context) {
	var req DisassembleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}
	report, err := h.svc.Disassemble(c.Request.Context(), req.IDs)
	if err != nil && len(report.Failed) == 0 {
		ServiceError(c, err)
		return
	}
	Success(c, dto.NewReportView(report))
}

func (h *ProductionHandler) RegisterRoutes(group *gin.RouterGroup) {
	productions := group.Group("/productions")
	{
		productions.GET("", h.List)
		productions.POST("/disassemble", h.DisassembleBatch)
		productions.GET("/:id", h.Get)
		productions.GET("/:id/events", h.Events)
		productions.POST("/:id/preview", h.Preview)
		productions.POST("/:id/recompute", h.Recompute)
		productions.POST("/:id/disassemble", h.Disassemble)
	}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, fmt.Sprintf("invalid production id: %s", c.Param("id")))
		return uuid.Nil, false
	}
	return id, true
}

// bindOptionalJSON accepts an empty body as "no edits"
func bindOptionalJSON(c *gin.Context, dest interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dest); err != nil {
		BindError(c, err)
		return false
	}
	return true
}
