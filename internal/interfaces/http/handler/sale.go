package handler

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	printingapp "github.com/idcashier/backend/internal/application/printing"
	salesapp "github.com/idcashier/backend/internal/application/sales"
)

// ArchiveKeyHeader carries the object key of an archived PDF receipt
const ArchiveKeyHeader = "X-Receipt-Archive-Key"

// SaleHandler handles the point-of-sale endpoints
type SaleHandler struct {
	BaseHandler
	saleService    *salesapp.SaleService
	receiptService *printingapp.ReceiptService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *salesapp.SaleService, receiptService *printingapp.ReceiptService) *SaleHandler {
	return &SaleHandler{
		saleService:    saleService,
		receiptService: receiptService,
	}
}

// Create godoc
// @Summary      Ring up a sale
// @Description  Prices come from the product records. Stock of tracked products and recipe materials is
// @Description  deducted in the same transaction. A missing paid_amount means the sale is paid in full;
// @Description  a smaller one leaves a receivable.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateSaleRequest true "Sale"
// @Success      201 {object} dto.Response{data=salesapp.SaleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var req salesapp.CreateSaleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), tc.TenantID, tc.UserID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// GetByID godoc
// @Summary      Get a sale
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.SaleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), tc.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List godoc
// @Summary      List sales
// @Tags         sales
// @Produce      json
// @Param        search query string false "Invoice number"
// @Param        from query string false "First day (YYYY-MM-DD)"
// @Param        to query string false "Last day (YYYY-MM-DD)"
// @Param        payment_status query string false "paid, unpaid or partial"
// @Param        payment_method query string false "cash, card, transfer, qris or ewallet"
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        employee_id query string false "Employee ID" format(uuid)
// @Param        cashier_id query string false "Cashier ID" format(uuid)
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]salesapp.SaleResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter salesapp.SaleListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.saleService.List(c.Request.Context(), tc.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paginated(c, page)
}

// SettlePayment godoc
// @Summary      Settle a receivable
// @Description  Adds a payment to an unpaid or partially paid sale. The amount may not exceed what is owed.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body salesapp.PaymentRequest true "Payment"
// @Success      200 {object} dto.Response{data=salesapp.SaleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/{id}/payment [put]
func (h *SaleHandler) SettlePayment(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req salesapp.PaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	sale, err := h.saleService.SettlePayment(c.Request.Context(), tc.TenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Delete godoc
// @Summary      Void a sale
// @Description  Restores product and material stock and drops unpaid profit shares. Sales with returns cannot be voided.
// @Tags         sales
// @Param        id path string true "Sale ID" format(uuid)
// @Success      204
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/{id} [delete]
func (h *SaleHandler) Delete(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), tc.TenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Receipt godoc
// @Summary      Sale receipt
// @Description  Renders the receipt with the store's template. PDF needs the printing service and the pdf receipt type.
// @Tags         sales
// @Produce      text/html
// @Produce      application/pdf
// @Param        id path string true "Sale ID" format(uuid)
// @Param        format query string false "html or pdf" default(html)
// @Success      200 {file} file
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", printingapp.FormatHTML)
	doc, err := h.receiptService.Receipt(c.Request.Context(), tc.TenantID, id, format)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	disposition := "inline"
	if format == printingapp.FormatPDF {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": doc.Filename}))
	if doc.ArchiveKey != "" {
		c.Header(ArchiveKeyHeader, doc.ArchiveKey)
	}
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}
