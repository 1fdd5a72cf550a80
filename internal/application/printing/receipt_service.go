package printing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/identity"
	"github.com/idcashier/backend/internal/domain/partner"
	"github.com/idcashier/backend/internal/domain/printing"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/idcashier/backend/internal/domain/settings"
	"github.com/idcashier/backend/internal/domain/shared"
	infra "github.com/idcashier/backend/internal/infrastructure/printing"
	"github.com/idcashier/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// Receipt formats
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// Receipt errors
var (
	ErrPrintingDisabled   = shared.NewDomainError("PRINTING_DISABLED", "PDF printing is not enabled on this server")
	ErrPDFReceiptDisabled = shared.NewDomainError("RECEIPT_TYPE_DISABLED", "PDF receipts are not enabled in the store settings")
	ErrRenderFailed       = shared.NewDomainError("RENDER_FAILED", "Receipt could not be rendered")
)

// SaleSource loads a sale with its items
type SaleSource interface {
	Sale(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error)
}

// UserFinder resolves the cashier of a sale
type UserFinder interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error)
}

// CustomerFinder resolves the customer of a sale
type CustomerFinder interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error)
}

// SettingsLoader returns a tenant's settings, falling back to the defaults
type SettingsLoader interface {
	Load(ctx context.Context, tenantID uuid.UUID) (*settings.TenantSettings, error)
}

// ReceiptDocument is a rendered receipt
type ReceiptDocument struct {
	ContentType string
	Filename    string
	Body        []byte
	// ArchiveKey is set when the PDF was archived to object storage
	ArchiveKey string
}

// ReceiptService renders sale receipts
type ReceiptService struct {
	sales      SaleSource
	settings   SettingsLoader
	users      UserFinder
	customers  CustomerFinder
	engine     *infra.TemplateEngine
	renderer   infra.PDFRenderer
	pdfEnabled bool
	store      shared.ObjectStorage
	logger     *zap.Logger
}

// ReceiptServiceConfig contains the dependencies of ReceiptService.
// Store may be nil when object storage is not configured.
type ReceiptServiceConfig struct {
	Sales      SaleSource
	Settings   SettingsLoader
	Users      UserFinder
	Customers  CustomerFinder
	Engine     *infra.TemplateEngine
	Renderer   infra.PDFRenderer
	PDFEnabled bool
	Store      shared.ObjectStorage
	Logger     *zap.Logger
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(cfg ReceiptServiceConfig) *ReceiptService {
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = infra.DisabledRenderer{}
	}
	return &ReceiptService{
		sales:      cfg.Sales,
		settings:   cfg.Settings,
		users:      cfg.Users,
		customers:  cfg.Customers,
		engine:     cfg.Engine,
		renderer:   renderer,
		pdfEnabled: cfg.PDFEnabled,
		store:      cfg.Store,
		logger:     cfg.Logger,
	}
}

// Receipt renders the receipt of a sale as HTML or PDF
func (s *ReceiptService) Receipt(ctx context.Context, tenantID, saleID uuid.UUID, format string) (*ReceiptDocument, error) {
	if format == "" {
		format = FormatHTML
	}
	if format != FormatHTML && format != FormatPDF {
		return nil, shared.InvalidInput("format must be html or pdf")
	}

	st, err := s.settings.Load(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if format == FormatPDF {
		if !s.pdfEnabled {
			return nil, ErrPrintingDisabled
		}
		if !st.EnabledReceiptTypes.Has(settings.ReceiptPDF) {
			return nil, ErrPDFReceiptDisabled
		}
	}

	sale, err := s.sales.Sale(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	receipt := printing.BuildReceipt(sale, st, s.cashierName(ctx, sale), s.customerName(ctx, sale))

	html, err := s.engine.RenderReceipt(receipt)
	if err != nil {
		s.logger.Error("Failed to render receipt HTML", zap.String("invoice", sale.InvoiceNumber), zap.Error(err))
		return nil, ErrRenderFailed
	}
	if format == FormatHTML {
		return &ReceiptDocument{
			ContentType: "text/html; charset=utf-8",
			Filename:    sale.InvoiceNumber + ".html",
			Body:        []byte(html),
		}, nil
	}

	result, err := s.renderer.Render(ctx, &infra.RenderRequest{
		HTML:      html,
		PaperSize: receipt.PaperSize,
		Margins:   printing.MarginsFor(receipt.PaperSize),
	})
	if err != nil {
		if errors.Is(err, infra.ErrPrintingDisabled) {
			return nil, ErrPrintingDisabled
		}
		s.logger.Error("Failed to render receipt PDF", zap.String("invoice", sale.InvoiceNumber), zap.Error(err))
		return nil, ErrRenderFailed
	}

	doc := &ReceiptDocument{
		ContentType: "application/pdf",
		Filename:    sale.InvoiceNumber + ".pdf",
		Body:        result.PDFData,
	}
	if s.store != nil {
		key := storage.ReceiptKey(tenantID, sale.InvoiceNumber)
		if err := s.store.Upload(ctx, key, result.PDFData, doc.ContentType); err != nil {
			s.logger.Warn("Failed to archive receipt", zap.String("key", key), zap.Error(err))
		} else {
			doc.ArchiveKey = key
		}
	}

	s.logger.Info("Receipt rendered",
		zap.String("tenant_id", tenantID.String()),
		zap.String("invoice", sale.InvoiceNumber),
		zap.Duration("render_duration", result.RenderDuration.Round(time.Millisecond)))
	return doc, nil
}

// cashierName and customerName print blank when the record is gone
func (s *ReceiptService) cashierName(ctx context.Context, sale *sales.Sale) string {
	user, err := s.users.FindByIDForTenant(ctx, sale.TenantID, sale.CashierID)
	if err != nil {
		return ""
	}
	return user.Name
}

func (s *ReceiptService) customerName(ctx context.Context, sale *sales.Sale) string {
	if sale.CustomerID == nil {
		return ""
	}
	customer, err := s.customers.FindByIDForTenant(ctx, sale.TenantID, *sale.CustomerID)
	if err != nil {
		return ""
	}
	return customer.Name
}
