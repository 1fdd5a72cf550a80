// Package bootstrap wires repositories, services and handlers into the API.
package bootstrap

import (
	"errors"

	billingapp "github.com/idcashier/backend/internal/application/billing"
	catalogapp "github.com/idcashier/backend/internal/application/catalog"
	hrapp "github.com/idcashier/backend/internal/application/hr"
	identityapp "github.com/idcashier/backend/internal/application/identity"
	partnerapp "github.com/idcashier/backend/internal/application/partner"
	printingapp "github.com/idcashier/backend/internal/application/printing"
	reportapp "github.com/idcashier/backend/internal/application/report"
	salesapp "github.com/idcashier/backend/internal/application/sales"
	settingsapp "github.com/idcashier/backend/internal/application/settings"
	"github.com/idcashier/backend/internal/domain/billing"
	"github.com/idcashier/backend/internal/domain/shared"
	"github.com/idcashier/backend/internal/infrastructure/auth"
	"github.com/idcashier/backend/internal/infrastructure/cache"
	"github.com/idcashier/backend/internal/infrastructure/config"
	"github.com/idcashier/backend/internal/infrastructure/payment"
	"github.com/idcashier/backend/internal/infrastructure/persistence"
	printinginfra "github.com/idcashier/backend/internal/infrastructure/printing"
	"github.com/idcashier/backend/internal/infrastructure/telemetry"
	"github.com/idcashier/backend/internal/interfaces/http/handler"
	"github.com/idcashier/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Version is reported by the system info endpoint
var Version = "dev"

// Dependencies are the infrastructure pieces built by the caller. Optional
// pieces may be left nil: Redis falls back to in-memory stores, a nil
// Storage disables product images and receipt archiving, a nil Renderer
// disables PDF receipts and a nil Gateway rejects checkouts.
type Dependencies struct {
	Config   *config.Config
	DB       *gorm.DB
	Pinger   handler.Pinger
	Redis    *redis.Client
	Storage  shared.ObjectStorage
	Renderer printinginfra.PDFRenderer
	Gateway  billing.PaymentGateway
	Metrics  *telemetry.BusinessMetrics
	Logger   *zap.Logger
}

// API is the wired HTTP surface
type API struct {
	Handlers router.Handlers
	Security router.Security
}

// Registrars returns every API route group
func (a *API) Registrars() []router.RouteRegistrar {
	return router.APIGroups(a.Handlers, a.Security)
}

// NewAPI builds repositories, services and handlers over deps
func NewAPI(deps Dependencies) (*API, error) {
	if deps.Config == nil || deps.DB == nil {
		return nil, errors.New("bootstrap: config and database are required")
	}
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	loc := cfg.App.Location()
	db := deps.DB

	// Repositories
	tx := persistence.NewGormTransactionManager(db)
	userRepo := persistence.NewGormUserRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	materialRepo := persistence.NewGormRawMaterialRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	supplierRepo := persistence.NewGormSupplierRepository(db)
	saleRepo := persistence.NewGormSaleRepository(db)
	returnRepo := persistence.NewGormReturnRepository(db)
	employeeRepo := persistence.NewGormEmployeeRepository(db)
	attendanceRepo := persistence.NewGormAttendanceRepository(db)
	leaveRepo := persistence.NewGormLeaveRepository(db)
	shareRepo := persistence.NewGormProfitShareRepository(db)
	subRepo := persistence.NewGormSubscriptionRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)
	settingsRepo := persistence.NewGormSettingsRepository(db)
	reportRepo := persistence.NewGormReportRepository(db)

	// Cache backed stores
	var blacklist auth.TokenBlacklist
	var idempotency shared.IdempotencyStore
	if deps.Redis != nil {
		blacklist = auth.NewTokenBlacklist(deps.Redis, log)
		idempotency = cache.NewIdempotencyStore(deps.Redis, log)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		idempotency = cache.NewInMemoryIdempotencyStore()
	}

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	settingsService := settingsapp.NewService(settingsRepo, log)

	var images *catalogapp.ProductImageService
	if deps.Storage != nil {
		images = catalogapp.NewProductImageService(deps.Storage, catalogapp.ProductImageConfig{
			UploadURLExpiry:   cfg.Storage.PresignExpiration,
			DownloadURLExpiry: cfg.Storage.PresignExpiration,
		}, log)
	}
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, supplierRepo, materialRepo, images, log)
	materialService := catalogapp.NewRawMaterialService(materialRepo, supplierRepo, log)
	customerService := partnerapp.NewCustomerService(customerRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)

	saleService := salesapp.NewSaleService(tx, salesapp.SaleRepositories{
		Sales:        saleRepo,
		Returns:      returnRepo,
		Products:     productRepo,
		Materials:    materialRepo,
		Customers:    customerRepo,
		Employees:    employeeRepo,
		ProfitShares: shareRepo,
	}, settingsService, deps.Metrics, loc, log)
	returnService := salesapp.NewReturnService(tx, saleRepo, returnRepo, productRepo, deps.Metrics, loc, log)

	employeeService := hrapp.NewEmployeeService(employeeRepo, shareRepo, log)
	attendanceService := hrapp.NewAttendanceService(attendanceRepo, employeeRepo, settingsService, loc, log)
	leaveService := hrapp.NewLeaveService(tx, leaveRepo, employeeRepo, attendanceRepo, loc, log)
	shareService := hrapp.NewProfitShareService(shareRepo, employeeRepo, loc, log)

	reportService := reportapp.NewReportService(reportRepo, loc, log)

	engine, err := printinginfra.NewTemplateEngine(loc)
	if err != nil {
		return nil, err
	}
	renderer := deps.Renderer
	if renderer == nil {
		renderer = printinginfra.DisabledRenderer{}
	}
	receiptService := printingapp.NewReceiptService(printingapp.ReceiptServiceConfig{
		Sales:      saleService,
		Settings:   settingsService,
		Users:      userRepo,
		Customers:  customerRepo,
		Engine:     engine,
		Renderer:   renderer,
		PDFEnabled: deps.Renderer != nil && cfg.Printing.Enabled,
		Store:      deps.Storage,
		Logger:     log,
	})

	gateway := deps.Gateway
	if gateway == nil {
		gateway = payment.DisabledGateway{}
	}
	subscriptionService := billingapp.NewSubscriptionService(subRepo, paymentRepo, gateway, PriceList(cfg.Payment), deps.Metrics, log)
	callbackService := billingapp.NewCallbackService(billingapp.CallbackServiceConfig{
		TxManager:      tx,
		SubRepo:        subRepo,
		PaymentRepo:    paymentRepo,
		Gateway:        gateway,
		Idempotency:    idempotency,
		IdempotencyTTL: cfg.Payment.IdempotencyTTL,
		Metrics:        deps.Metrics,
		Logger:         log,
	})

	pinger := deps.Pinger
	if pinger == nil {
		pinger = sqlPinger{db: db}
	}

	api := &API{
		Handlers: router.Handlers{
			Auth:            handler.NewAuthHandler(authService),
			Users:           handler.NewUserHandler(userService),
			Categories:      handler.NewCategoryHandler(categoryService),
			Products:        handler.NewProductHandler(productService),
			RawMaterials:    handler.NewRawMaterialHandler(materialService),
			Customers:       handler.NewCustomerHandler(customerService),
			Suppliers:       handler.NewSupplierHandler(supplierService),
			Sales:           handler.NewSaleHandler(saleService, receiptService),
			Returns:         handler.NewReturnHandler(returnService),
			Employees:       handler.NewEmployeeHandler(employeeService),
			Attendance:      handler.NewAttendanceHandler(attendanceService),
			Leaves:          handler.NewLeaveHandler(leaveService),
			ProfitShares:    handler.NewProfitShareHandler(shareService),
			Reports:         handler.NewReportHandler(reportService),
			Subscription:    handler.NewSubscriptionHandler(subscriptionService, authService),
			PaymentCallback: handler.NewPaymentCallbackHandler(callbackService),
			Settings:        handler.NewSettingsHandler(settingsService),
			System:          handler.NewSystemHandler(cfg.App.Name, Version, pinger),
		},
		Security: router.Security{
			Tokens:      jwtService,
			Revocations: authService,
			Tenants:     identityapp.NewTenantResolver(userRepo),
			Logger:      log,
		},
	}
	return api, nil
}

// PriceList converts the configured plan prices; unset plans keep the defaults
func PriceList(cfg config.PaymentConfig) billing.PriceList {
	prices := billing.DefaultPriceList()
	for plan, price := range cfg.Prices {
		if p := billing.Plan(plan); p.IsValid() && price > 0 {
			prices[p] = decimal.NewFromInt(price)
		}
	}
	return prices
}

type sqlPinger struct {
	db *gorm.DB
}

func (p sqlPinger) Ping() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
