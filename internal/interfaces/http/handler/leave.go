package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	hrapp "github.com/idcashier/backend/internal/application/hr"
)

// LeaveHandler handles leave requests and their approval
type LeaveHandler struct {
	BaseHandler
	leaveService *hrapp.LeaveService
}

// NewLeaveHandler creates a new LeaveHandler
func NewLeaveHandler(leaveService *hrapp.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// Create godoc
// @Summary      Request leave
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Param        request body hrapp.LeaveRequestInput true "Leave request"
// @Success      201 {object} dto.Response{data=hrapp.LeaveResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /leaves [post]
func (h *LeaveHandler) Create(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var req hrapp.LeaveRequestInput
	if !h.bindJSON(c, &req) {
		return
	}

	leave, err := h.leaveService.Create(c.Request.Context(), tc.TenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, leave)
}

// List godoc
// @Summary      List leave requests
// @Tags         leaves
// @Produce      json
// @Param        employee_id query string false "Employee ID" format(uuid)
// @Param        status query string false "pending, approved or rejected"
// @Param        type query string false "annual, sick, unpaid or other"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]hrapp.LeaveResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /leaves [get]
func (h *LeaveHandler) List(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter hrapp.LeaveListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.leaveService.List(c.Request.Context(), tc.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paginated(c, page)
}

// Approve godoc
// @Summary      Approve leave
// @Description  Marks each covered day without an attendance record as leave
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Param        id path string true "Leave request ID" format(uuid)
// @Param        request body hrapp.LeaveDecision false "Decision note"
// @Success      200 {object} dto.Response{data=hrapp.LeaveResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /leaves/{id}/approve [put]
func (h *LeaveHandler) Approve(c *gin.Context) {
	h.decide(c, h.leaveService.Approve)
}

// Reject godoc
// @Summary      Reject leave
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Param        id path string true "Leave request ID" format(uuid)
// @Param        request body hrapp.LeaveDecision false "Decision note"
// @Success      200 {object} dto.Response{data=hrapp.LeaveResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /leaves/{id}/reject [put]
func (h *LeaveHandler) Reject(c *gin.Context) {
	h.decide(c, h.leaveService.Reject)
}

type leaveDecider func(ctx context.Context, tenantID, id, decidedBy uuid.UUID, req hrapp.LeaveDecision) (*hrapp.LeaveResponse, error)

func (h *LeaveHandler) decide(c *gin.Context, decide leaveDecider) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	// the note is optional, so an empty body is fine
	var req hrapp.LeaveDecision
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}

	leave, err := decide(c.Request.Context(), tc.TenantID, id, tc.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, leave)
}
