package router

import (
	"github.com/gin-gonic/gin"
	"github.com/idcashier/backend/internal/interfaces/http/handler"
	"github.com/idcashier/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers is the set of API handlers served under /api/v1
type Handlers struct {
	Auth            *handler.AuthHandler
	Users           *handler.UserHandler
	Categories      *handler.CategoryHandler
	Products        *handler.ProductHandler
	RawMaterials    *handler.RawMaterialHandler
	Customers       *handler.CustomerHandler
	Suppliers       *handler.SupplierHandler
	Sales           *handler.SaleHandler
	Returns         *handler.ReturnHandler
	Employees       *handler.EmployeeHandler
	Attendance      *handler.AttendanceHandler
	Leaves          *handler.LeaveHandler
	ProfitShares    *handler.ProfitShareHandler
	Reports         *handler.ReportHandler
	Subscription    *handler.SubscriptionHandler
	PaymentCallback *handler.PaymentCallbackHandler
	Settings        *handler.SettingsHandler
	System          *handler.SystemHandler
}

// Security carries what the authenticated groups need
type Security struct {
	Tokens      middleware.TokenValidator
	Revocations middleware.RevocationChecker
	Tenants     middleware.TenantResolver
	// LoginLimiter throttles register and login per client IP; nil disables it
	LoginLimiter *middleware.RateLimiter
	Logger       *zap.Logger
}

// authenticated is the chain every tenant scoped route runs behind
func (s Security) authenticated() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.JWTAuth(middleware.JWTConfig{
			Tokens:      s.Tokens,
			Revocations: s.Revocations,
			Logger:      s.Logger,
		}),
		middleware.ResolveTenant(s.Tenants, s.Logger),
		middleware.SpanIdentity(),
	}
}

// APIGroups builds the route groups of every business area
func APIGroups(h Handlers, sec Security) []RouteRegistrar {
	authed := sec.authenticated()
	owner := middleware.RequireOwner()

	public := NewDomainGroup("auth", "/auth")
	if sec.LoginLimiter != nil {
		public.Use(middleware.RateLimit(sec.LoginLimiter))
	}
	public.
		POST("/register", h.Auth.Register).
		POST("/login", h.Auth.Login)

	session := NewDomainGroup("session", "/auth").Use(authed...)
	session.
		GET("/me", h.Auth.Me).
		POST("/logout", h.Auth.Logout)

	system := NewDomainGroup("system", "/system")
	system.
		GET("/ping", h.System.Ping).
		GET("/info", h.System.GetSystemInfo)

	callbacks := NewDomainGroup("payments", "/payments")
	callbacks.POST("/callback", h.PaymentCallback.Handle)

	users := NewDomainGroup("users", "/users").Use(authed...).Use(owner)
	users.
		GET("", h.Users.List).
		POST("", h.Users.Create).
		PUT("/:id", h.Users.Update).
		DELETE("/:id", h.Users.Delete)

	categories := NewDomainGroup("categories", "/categories").Use(authed...)
	categories.
		GET("", h.Categories.List).
		POST("", h.Categories.Create).
		GET("/:id", h.Categories.GetByID).
		PUT("/:id", h.Categories.Update).
		DELETE("/:id", h.Categories.Delete)

	products := NewDomainGroup("products", "/products").Use(authed...)
	products.
		GET("", h.Products.List).
		POST("", h.Products.Create).
		GET("/:id", h.Products.GetByID).
		PUT("/:id", h.Products.Update).
		DELETE("/:id", h.Products.Delete).
		PUT("/:id/stock", owner, h.Products.AdjustStock).
		PUT("/:id/materials", owner, h.Products.SetMaterials).
		POST("/:id/image-upload-url", h.Products.RequestImageUpload).
		PUT("/:id/image", h.Products.ConfirmImage)

	materials := NewDomainGroup("raw-materials", "/raw-materials").Use(authed...)
	materials.
		GET("", h.RawMaterials.List).
		POST("", h.RawMaterials.Create).
		GET("/:id", h.RawMaterials.GetByID).
		PUT("/:id", h.RawMaterials.Update).
		DELETE("/:id", h.RawMaterials.Delete).
		PUT("/:id/stock", owner, h.RawMaterials.AdjustStock)

	customers := NewDomainGroup("customers", "/customers").Use(authed...)
	customers.
		GET("", h.Customers.List).
		POST("", h.Customers.Create).
		GET("/:id", h.Customers.GetByID).
		PUT("/:id", h.Customers.Update).
		DELETE("/:id", h.Customers.Delete)

	suppliers := NewDomainGroup("suppliers", "/suppliers").Use(authed...)
	suppliers.
		GET("", h.Suppliers.List).
		POST("", h.Suppliers.Create).
		GET("/:id", h.Suppliers.GetByID).
		PUT("/:id", h.Suppliers.Update).
		DELETE("/:id", h.Suppliers.Delete)

	sales := NewDomainGroup("sales", "/sales").Use(authed...)
	sales.
		GET("", h.Sales.List).
		POST("", h.Sales.Create).
		GET("/:id", h.Sales.GetByID).
		PUT("/:id/payment", h.Sales.SettlePayment).
		DELETE("/:id", owner, h.Sales.Delete).
		GET("/:id/receipt", h.Sales.Receipt)

	returns := NewDomainGroup("returns", "/returns").Use(authed...)
	returns.
		GET("", h.Returns.List).
		POST("", h.Returns.Create).
		GET("/:id", h.Returns.GetByID)

	employees := NewDomainGroup("employees", "/employees").Use(authed...).Use(owner)
	employees.
		GET("", h.Employees.List).
		POST("", h.Employees.Create).
		GET("/:id", h.Employees.GetByID).
		PUT("/:id", h.Employees.Update).
		DELETE("/:id", h.Employees.Delete)

	attendance := NewDomainGroup("attendance", "/attendance").Use(authed...)
	attendance.
		POST("/clock-in", h.Attendance.ClockIn).
		POST("/clock-out", h.Attendance.ClockOut).
		GET("", h.Attendance.List)

	leaves := NewDomainGroup("leaves", "/leaves").Use(authed...)
	leaves.
		GET("", h.Leaves.List).
		POST("", h.Leaves.Create).
		PUT("/:id/approve", owner, h.Leaves.Approve).
		PUT("/:id/reject", owner, h.Leaves.Reject)

	shares := NewDomainGroup("profit-shares", "/profit-shares").Use(authed...)
	shares.
		GET("", h.ProfitShares.List).
		GET("/summary", h.ProfitShares.Summary).
		PUT("/:id/pay", owner, h.ProfitShares.Pay)

	reports := NewDomainGroup("reports", "/reports").Use(authed...).Use(owner)
	reports.
		GET("/financial", h.Reports.Financial).
		GET("/daily", h.Reports.Daily).
		GET("/top-products", h.Reports.TopProducts)

	subscription := NewDomainGroup("subscription", "/subscription").Use(authed...)
	subscription.
		GET("", h.Subscription.Get).
		POST("/checkout", owner, h.Subscription.Checkout).
		GET("/payments", h.Subscription.ListPayments)

	settings := NewDomainGroup("settings", "/settings").Use(authed...)
	settings.
		GET("", h.Settings.Get).
		PUT("", owner, h.Settings.Update)

	return []RouteRegistrar{
		public, session, system, callbacks,
		users, categories, products, materials, customers, suppliers,
		sales, returns,
		employees, attendance, leaves, shares,
		reports, subscription, settings,
	}
}
