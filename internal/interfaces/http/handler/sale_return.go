package handler

import (
	"github.com/gin-gonic/gin"
	salesapp "github.com/idcashier/backend/internal/application/sales"
)

// ReturnHandler handles sale return endpoints
type ReturnHandler struct {
	BaseHandler
	returnService *salesapp.ReturnService
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(returnService *salesapp.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// Create godoc
// @Summary      Record a return
// @Description  type=stock puts the goods back on the shelf, type=loss writes them off.
// @Description  A line cannot return more than was sold minus earlier returns.
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateReturnRequest true "Return"
// @Success      201 {object} dto.Response{data=salesapp.ReturnResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /returns [post]
func (h *ReturnHandler) Create(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var req salesapp.CreateReturnRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ret, err := h.returnService.CreateReturn(c.Request.Context(), tc.TenantID, tc.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ret)
}

// GetByID godoc
// @Summary      Get a return
// @Tags         returns
// @Produce      json
// @Param        id path string true "Return ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.ReturnResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /returns/{id} [get]
func (h *ReturnHandler) GetByID(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	ret, err := h.returnService.GetByID(c.Request.Context(), tc.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// List godoc
// @Summary      List returns
// @Tags         returns
// @Produce      json
// @Param        sale_id query string false "Sale ID" format(uuid)
// @Param        type query string false "stock or loss"
// @Param        from query string false "First day (YYYY-MM-DD)"
// @Param        to query string false "Last day (YYYY-MM-DD)"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]salesapp.ReturnResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /returns [get]
func (h *ReturnHandler) List(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter salesapp.ReturnListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.returnService.List(c.Request.Context(), tc.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paginated(c, page)
}
