package handler

import (
	"github.com/gin-gonic/gin"
	hrapp "github.com/idcashier/backend/internal/application/hr"
)

// ProfitShareHandler handles the employee profit share ledger
type ProfitShareHandler struct {
	BaseHandler
	shareService *hrapp.ProfitShareService
}

// NewProfitShareHandler creates a new ProfitShareHandler
func NewProfitShareHandler(shareService *hrapp.ProfitShareService) *ProfitShareHandler {
	return &ProfitShareHandler{shareService: shareService}
}

// List godoc
// @Summary      List profit shares
// @Tags         profit-shares
// @Produce      json
// @Param        employee_id query string false "Employee ID" format(uuid)
// @Param        sale_id query string false "Sale ID" format(uuid)
// @Param        status query string false "unpaid or paid"
// @Param        from query string false "First day (YYYY-MM-DD)"
// @Param        to query string false "Last day (YYYY-MM-DD)"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]hrapp.ProfitShareResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /profit-shares [get]
func (h *ProfitShareHandler) List(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter hrapp.ProfitShareListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.shareService.List(c.Request.Context(), tc.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paginated(c, page)
}

// Summary godoc
// @Summary      Profit shares per employee
// @Description  Totals, paid and unpaid amounts per employee over the same filters as the list
// @Tags         profit-shares
// @Produce      json
// @Param        employee_id query string false "Employee ID" format(uuid)
// @Param        from query string false "First day (YYYY-MM-DD)"
// @Param        to query string false "Last day (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]hr.ProfitShareSummary}
// @Security     BearerAuth
// @Router       /profit-shares/summary [get]
func (h *ProfitShareHandler) Summary(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter hrapp.ProfitShareListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	summary, err := h.shareService.Summary(c.Request.Context(), tc.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Pay godoc
// @Summary      Mark a profit share paid
// @Tags         profit-shares
// @Produce      json
// @Param        id path string true "Profit share ID" format(uuid)
// @Success      200 {object} dto.Response{data=hrapp.ProfitShareResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /profit-shares/{id}/pay [put]
func (h *ProfitShareHandler) Pay(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	share, err := h.shareService.Pay(c.Request.Context(), tc.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, share)
}
