package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/idcashier/backend/internal/application/catalog"
)

// RawMaterialHandler handles raw material endpoints
type RawMaterialHandler struct {
	BaseHandler
	materialService *catalogapp.RawMaterialService
}

// NewRawMaterialHandler creates a new RawMaterialHandler
func NewRawMaterialHandler(materialService *catalogapp.RawMaterialService) *RawMaterialHandler {
	return &RawMaterialHandler{materialService: materialService}
}

// Create godoc
// @Summary      Create a raw material
// @Tags         raw-materials
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.RawMaterialRequest true "Raw material"
// @Success      201 {object} dto.Response{data=catalogapp.RawMaterialResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /raw-materials [post]
func (h *RawMaterialHandler) Create(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var req catalogapp.RawMaterialRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.CreatedBy = &tc.UserID

	material, err := h.materialService.Create(c.Request.Context(), tc.TenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, material)
}

// GetByID godoc
// @Summary      Get a raw material
// @Tags         raw-materials
// @Produce      json
// @Param        id path string true "Raw material ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.RawMaterialResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /raw-materials/{id} [get]
func (h *RawMaterialHandler) GetByID(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	material, err := h.materialService.GetByID(c.Request.Context(), tc.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, material)
}

// List godoc
// @Summary      List raw materials
// @Tags         raw-materials
// @Produce      json
// @Param        search query string false "Name"
// @Param        supplier_id query string false "Supplier ID" format(uuid)
// @Param        low_stock query bool false "Only materials at or below their minimum stock"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.RawMaterialResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /raw-materials [get]
func (h *RawMaterialHandler) List(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter catalogapp.RawMaterialListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.materialService.List(c.Request.Context(), tc.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paginated(c, page)
}

// Update godoc
// @Summary      Update a raw material
// @Tags         raw-materials
// @Accept       json
// @Produce      json
// @Param        id path string true "Raw material ID" format(uuid)
// @Param        request body catalogapp.RawMaterialRequest true "Raw material"
// @Success      200 {object} dto.Response{data=catalogapp.RawMaterialResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /raw-materials/{id} [put]
func (h *RawMaterialHandler) Update(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req catalogapp.RawMaterialRequest
	if !h.bindJSON(c, &req) {
		return
	}

	material, err := h.materialService.Update(c.Request.Context(), tc.TenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, material)
}

// Delete godoc
// @Summary      Delete a raw material
// @Description  Fails with ERR_IN_USE while a product recipe uses the material
// @Tags         raw-materials
// @Param        id path string true "Raw material ID" format(uuid)
// @Success      204
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /raw-materials/{id} [delete]
func (h *RawMaterialHandler) Delete(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.materialService.Delete(c.Request.Context(), tc.TenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AdjustStock godoc
// @Summary      Set or add raw material stock
// @Tags         raw-materials
// @Accept       json
// @Produce      json
// @Param        id path string true "Raw material ID" format(uuid)
// @Param        request body catalogapp.RawMaterialStockRequest true "Adjustment"
// @Success      200 {object} dto.Response{data=catalogapp.RawMaterialResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /raw-materials/{id}/stock [put]
func (h *RawMaterialHandler) AdjustStock(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req catalogapp.RawMaterialStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	material, err := h.materialService.AdjustStock(c.Request.Context(), tc.TenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, material)
}
