package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/idcashier/backend/internal/application/billing"
	identityapp "github.com/idcashier/backend/internal/application/identity"
)

// SubscriptionHandler handles the store's own subscription to the service
type SubscriptionHandler struct {
	BaseHandler
	subscriptionService *billingapp.SubscriptionService
	authService         *identityapp.AuthService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionService *billingapp.SubscriptionService, authService *identityapp.AuthService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		authService:         authService,
	}
}

// Get godoc
// @Summary      Current subscription
// @Description  status is "none" until the first checkout
// @Tags         subscription
// @Produce      json
// @Success      200 {object} dto.Response{data=billingapp.SubscriptionResponse}
// @Security     BearerAuth
// @Router       /subscription [get]
func (h *SubscriptionHandler) Get(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Get(c.Request.Context(), tc.TenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sub)
}

// Checkout godoc
// @Summary      Start a subscription payment
// @Description  Creates a pending payment and a gateway invoice. The subscription is extended when the gateway confirms.
// @Tags         subscription
// @Accept       json
// @Produce      json
// @Param        request body billingapp.CheckoutRequest true "Plan"
// @Success      201 {object} dto.Response{data=billingapp.CheckoutResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /subscription/checkout [post]
func (h *SubscriptionHandler) Checkout(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var req billingapp.CheckoutRequest
	if !h.bindJSON(c, &req) {
		return
	}

	// the gateway invoice is addressed to the owner
	owner, err := h.authService.GetCurrentUser(c.Request.Context(), tc.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	req.CustomerName = owner.Name
	req.Email = owner.Email

	checkout, err := h.subscriptionService.Checkout(c.Request.Context(), tc.TenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, checkout)
}

// ListPayments godoc
// @Summary      Subscription payment history
// @Tags         subscription
// @Produce      json
// @Param        status query string false "pending, paid, failed or expired"
// @Param        page query int false "Page" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]billingapp.PaymentResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /subscription/payments [get]
func (h *SubscriptionHandler) ListPayments(c *gin.Context) {
	tc, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter billingapp.PaymentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.subscriptionService.ListPayments(c.Request.Context(), tc.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paginated(c, page)
}
