package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/idcashier/backend/internal/application/report"
)

// ReportHandler handles the owner reports
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Financial godoc
// @Summary      Financial report
// @Description  Revenue, cost of goods, gross and net profit, returns and receivables over the filter.
// @Description  Dates are calendar days in the store's timezone.
// @Tags         reports
// @Produce      json
// @Param        from query string false "First day (YYYY-MM-DD)"
// @Param        to query string false "Last day (YYYY-MM-DD)"
// @Param        payment_status query string false "paid, unpaid or partial"
// @Param        payment_method query string false "cash, card, transfer, qris or ewallet"
// @Param        product_id query string false "Product ID" format(uuid)
// @Param        category_id query string false "Category ID" format(uuid)
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Success      200 {object} dto.Response{data=reportapp.FinancialReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reports/financial [get]
func (h *ReportHandler) Financial(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var q reportapp.ReportQuery
	if !h.bindQuery(c, &q) {
		return
	}

	result, err := h.reportService.Financial(c.Request.Context(), tc.TenantID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Daily godoc
// @Summary      Daily report
// @Description  The financial summary of every day in the range
// @Tags         reports
// @Produce      json
// @Param        from query string false "First day (YYYY-MM-DD)"
// @Param        to query string false "Last day (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=reportapp.DailyReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reports/daily [get]
func (h *ReportHandler) Daily(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var q reportapp.ReportQuery
	if !h.bindQuery(c, &q) {
		return
	}

	result, err := h.reportService.Daily(c.Request.Context(), tc.TenantID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// TopProducts godoc
// @Summary      Best selling products
// @Tags         reports
// @Produce      json
// @Param        from query string false "First day (YYYY-MM-DD)"
// @Param        to query string false "Last day (YYYY-MM-DD)"
// @Param        by query string false "quantity or revenue" default(quantity)
// @Param        limit query int false "Number of products" default(10)
// @Success      200 {object} dto.Response{data=reportapp.TopProductsReport}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reports/top-products [get]
func (h *ReportHandler) TopProducts(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var q reportapp.TopProductsQuery
	if !h.bindQuery(c, &q) {
		return
	}

	result, err := h.reportService.TopProducts(c.Request.Context(), tc.TenantID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
