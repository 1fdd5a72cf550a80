package handler

import (
	"github.com/gin-gonic/gin"
	hrapp "github.com/idcashier/backend/internal/application/hr"
)

// AttendanceHandler handles clock-in, clock-out and the attendance log
type AttendanceHandler struct {
	BaseHandler
	attendanceService *hrapp.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(attendanceService *hrapp.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// ClockIn godoc
// @Summary      Clock in
// @Description  Opens today's record. Arriving after the store's work start time marks it late.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        request body hrapp.ClockRequest true "Employee"
// @Success      201 {object} dto.Response{data=hrapp.AttendanceResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /attendance/clock-in [post]
func (h *AttendanceHandler) ClockIn(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var req hrapp.ClockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	record, err := h.attendanceService.ClockIn(c.Request.Context(), tc.TenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// ClockOut godoc
// @Summary      Clock out
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        request body hrapp.ClockRequest true "Employee"
// @Success      200 {object} dto.Response{data=hrapp.AttendanceResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /attendance/clock-out [post]
func (h *AttendanceHandler) ClockOut(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var req hrapp.ClockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	record, err := h.attendanceService.ClockOut(c.Request.Context(), tc.TenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// List godoc
// @Summary      Attendance log
// @Tags         attendance
// @Produce      json
// @Param        employee_id query string false "Employee ID" format(uuid)
// @Param        status query string false "present, late, absent or leave"
// @Param        from query string false "First day (YYYY-MM-DD)"
// @Param        to query string false "Last day (YYYY-MM-DD)"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]hrapp.AttendanceResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter hrapp.AttendanceListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.attendanceService.List(c.Request.Context(), tc.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paginated(c, page)
}
