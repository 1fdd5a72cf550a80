package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	billingapp "github.com/idcashier/backend/internal/application/billing"
	"github.com/idcashier/backend/internal/domain/billing"
	"github.com/idcashier/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// PaymentCallbackHandler receives the payment gateway's server-to-server
// notifications. The endpoint is public; callbacks are authenticated by
// their signature.
type PaymentCallbackHandler struct {
	callbackService *billingapp.CallbackService
}

// NewPaymentCallbackHandler creates a new PaymentCallbackHandler
func NewPaymentCallbackHandler(callbackService *billingapp.CallbackService) *PaymentCallbackHandler {
	return &PaymentCallbackHandler{
		callbackService: callbackService,
	}
}

// callbackForm is the form-encoded body the gateway posts
type callbackForm struct {
	MerchantCode    string `form:"merchantCode"`
	Amount          string `form:"amount"`
	MerchantOrderID string `form:"merchantOrderId"`
	ResultCode      string `form:"resultCode"`
	Reference       string `form:"reference"`
	PaymentCode     string `form:"paymentCode"`
	Signature       string `form:"signature"`
}

// Handle godoc
//
//	@Summary		Payment gateway callback
//	@Description	Applies a signed payment notification. Redelivered callbacks are acknowledged without being applied
//	@Description	again. Bad signatures, unknown orders and amount mismatches get 400; anything else gets 500 so the
//	@Description	gateway retries.
//	@Tags			payment-callbacks
//	@Accept			application/x-www-form-urlencoded
//	@Produce		text/plain
//	@Success		200	{string}	string	"SUCCESS"
//	@Failure		400	{string}	string	"FAIL"
//	@Failure		500	{string}	string	"FAIL"
//	@Router			/payments/callback [post]
func (h *PaymentCallbackHandler) Handle(c *gin.Context) {
	log := logger.L(c.Request.Context())

	var form callbackForm
	if err := c.ShouldBind(&form); err != nil {
		log.Warn("Unreadable payment callback", zap.Error(err))
		c.String(http.StatusBadRequest, "FAIL")
		return
	}

	err := h.callbackService.HandleCallback(c.Request.Context(), &billing.Callback{
		MerchantCode:    form.MerchantCode,
		Amount:          form.Amount,
		MerchantOrderID: form.MerchantOrderID,
		ResultCode:      form.ResultCode,
		Reference:       form.Reference,
		PaymentCode:     form.PaymentCode,
		Signature:       form.Signature,
	})
	switch {
	case err == nil:
		c.String(http.StatusOK, billingapp.CallbackAck)
	case billingapp.IsCallbackRejection(err):
		c.String(http.StatusBadRequest, "FAIL")
	default:
		c.String(http.StatusInternalServerError, "FAIL")
	}
}
