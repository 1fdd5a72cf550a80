package printing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/idcashier/backend/internal/domain/identity"
	"github.com/idcashier/backend/internal/domain/partner"
	"github.com/idcashier/backend/internal/domain/sales"
	"github.com/idcashier/backend/internal/domain/settings"
	"github.com/idcashier/backend/internal/domain/shared"
	infra "github.com/idcashier/backend/internal/infrastructure/printing"
	"github.com/idcashier/backend/internal/infrastructure/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type saleSourceFunc func(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error)

func (f saleSourceFunc) Sale(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	return f(ctx, tenantID, id)
}

type fixedSettings struct {
	types settings.ReceiptTypes
}

func (f fixedSettings) Load(_ context.Context, tenantID uuid.UUID) (*settings.TenantSettings, error) {
	s := settings.Defaults(tenantID)
	s.StoreName = "Warung Kopi Nusantara"
	if f.types != nil {
		s.EnabledReceiptTypes = f.types
	}
	return s, nil
}

type users map[uuid.UUID]*identity.User

func (u users) FindByIDForTenant(_ context.Context, _, id uuid.UUID) (*identity.User, error) {
	if user, ok := u[id]; ok {
		return user, nil
	}
	return nil, shared.NotFound("user")
}

type noCustomers struct{}

func (noCustomers) FindByIDForTenant(context.Context, uuid.UUID, uuid.UUID) (*partner.Customer, error) {
	return nil, shared.NotFound("customer")
}

// MockPDFRenderer is a mock implementation of infra.PDFRenderer
type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) Render(ctx context.Context, req *infra.RenderRequest) (*infra.RenderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.RenderResult), args.Error(1)
}

func (m *MockPDFRenderer) Close() error {
	return m.Called().Error(0)
}

type receiptFixture struct {
	tenantID uuid.UUID
	sale     *sales.Sale
	renderer *MockPDFRenderer
	store    *storage.MemoryStorage
}

func newReceiptFixture(t *testing.T) *receiptFixture {
	t.Helper()
	tenantID := uuid.New()
	sale := &sales.Sale{
		TenantEntity:    shared.NewTenantEntity(tenantID),
		InvoiceNumber:   "INV-20260501-0001",
		CashierID:       uuid.New(),
		PaymentMethod:   sales.PaymentMethodCash,
		PaymentStatus:   sales.PaymentStatusPaid,
		Subtotal:        decimal.NewFromInt(36000),
		DiscountPercent: decimal.Zero,
		DiscountAmount:  decimal.Zero,
		TaxPercent:      decimal.Zero,
		TaxAmount:       decimal.Zero,
		Total:           decimal.NewFromInt(36000),
		PaidAmount:      decimal.NewFromInt(50000),
		ChangeAmount:    decimal.NewFromInt(14000),
		SoldAt:          time.Date(2026, 5, 1, 3, 0, 0, 0, time.UTC),
		Items: []sales.SaleItem{{
			ID: uuid.New(), ProductName: "Kopi Susu", SKU: "KS-01", Quantity: 2,
			UnitPrice: decimal.NewFromInt(18000), Subtotal: decimal.NewFromInt(36000),
		}},
	}
	return &receiptFixture{
		tenantID: tenantID,
		sale:     sale,
		renderer: new(MockPDFRenderer),
		store:    storage.NewMemoryStorage(),
	}
}

func (f *receiptFixture) service(t *testing.T, types settings.ReceiptTypes, pdfEnabled bool) *ReceiptService {
	t.Helper()
	engine, err := infra.NewTemplateEngine(time.FixedZone("WIB", 7*3600))
	require.NoError(t, err)
	return NewReceiptService(ReceiptServiceConfig{
		Sales: saleSourceFunc(func(_ context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
			if tenantID != f.tenantID || id != f.sale.ID {
				return nil, shared.NotFound("sale")
			}
			return f.sale, nil
		}),
		Settings:   fixedSettings{types: types},
		Users:      users{f.sale.CashierID: {Name: "Sari"}},
		Customers:  noCustomers{},
		Engine:     engine,
		Renderer:   f.renderer,
		PDFEnabled: pdfEnabled,
		Store:      f.store,
		Logger:     zap.NewNop(),
	})
}

func TestReceiptService_HTML(t *testing.T) {
	f := newReceiptFixture(t)
	doc, err := f.service(t, nil, false).Receipt(context.Background(), f.tenantID, f.sale.ID, "")
	require.NoError(t, err)

	assert.Equal(t, "INV-20260501-0001.html", doc.Filename)
	body := string(doc.Body)
	assert.True(t, strings.Contains(body, "Warung Kopi Nusantara"))
	assert.True(t, strings.Contains(body, "Kopi Susu"))
	assert.True(t, strings.Contains(body, "Sari"))
	f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestReceiptService_PDF(t *testing.T) {
	ctx := context.Background()
	withPDF := settings.ReceiptTypes{settings.ReceiptPrint, settings.ReceiptPDF}

	t.Run("renders and archives", func(t *testing.T) {
		f := newReceiptFixture(t)
		f.renderer.On("Render", mock.Anything, mock.MatchedBy(func(r *infra.RenderRequest) bool {
			return strings.Contains(r.HTML, "INV-20260501-0001")
		})).Return(&infra.RenderResult{PDFData: []byte("%PDF-1.7"), RenderDuration: 120 * time.Millisecond}, nil)

		doc, err := f.service(t, withPDF, true).Receipt(ctx, f.tenantID, f.sale.ID, FormatPDF)
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", doc.ContentType)
		assert.Equal(t, storage.ReceiptKey(f.tenantID, "INV-20260501-0001"), doc.ArchiveKey)

		data, contentType, ok := f.store.Get(doc.ArchiveKey)
		require.True(t, ok)
		assert.Equal(t, "%PDF-1.7", string(data))
		assert.Equal(t, "application/pdf", contentType)
	})

	t.Run("server without printing", func(t *testing.T) {
		f := newReceiptFixture(t)
		_, err := f.service(t, withPDF, false).Receipt(ctx, f.tenantID, f.sale.ID, FormatPDF)
		assert.ErrorIs(t, err, ErrPrintingDisabled)
	})

	t.Run("store without pdf receipts", func(t *testing.T) {
		f := newReceiptFixture(t)
		_, err := f.service(t, settings.ReceiptTypes{settings.ReceiptPrint}, true).Receipt(ctx, f.tenantID, f.sale.ID, FormatPDF)
		assert.ErrorIs(t, err, ErrPDFReceiptDisabled)
	})

	t.Run("renderer failure", func(t *testing.T) {
		f := newReceiptFixture(t)
		f.renderer.On("Render", mock.Anything, mock.Anything).Return(nil, errors.New("chrome crashed"))
		_, err := f.service(t, withPDF, true).Receipt(ctx, f.tenantID, f.sale.ID, FormatPDF)
		assert.ErrorIs(t, err, ErrRenderFailed)
		_, _, ok := f.store.Get(storage.ReceiptKey(f.tenantID, "INV-20260501-0001"))
		assert.False(t, ok)
	})
}

func TestReceiptService_Errors(t *testing.T) {
	f := newReceiptFixture(t)
	svc := f.service(t, nil, false)

	_, err := svc.Receipt(context.Background(), f.tenantID, f.sale.ID, "docx")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Receipt(context.Background(), uuid.New(), f.sale.ID, FormatHTML)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
