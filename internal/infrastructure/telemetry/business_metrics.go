package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a nil meter is passed to a metrics constructor
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// BusinessMetrics counts register activity: sales, revenue, returns and
// subscription payments. Amounts are recorded in whole rupiah.
type BusinessMetrics struct {
	salesTotal    metric.Int64Counter
	salesAmount   metric.Float64Counter
	itemsSold     metric.Int64Counter
	returnsTotal  metric.Int64Counter
	refundAmount  metric.Float64Counter
	paymentsTotal metric.Int64Counter
}

// NewBusinessMetrics creates the business instruments on meter
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	var (
		bm  BusinessMetrics
		err error
	)
	if bm.salesTotal, err = meter.Int64Counter("idcashier_sales_total",
		metric.WithDescription("Total number of sales created"), metric.WithUnit("{sales}")); err != nil {
		return nil, err
	}
	if bm.salesAmount, err = meter.Float64Counter("idcashier_sales_amount_total",
		metric.WithDescription("Sum of sale totals"), metric.WithUnit("{IDR}")); err != nil {
		return nil, err
	}
	if bm.itemsSold, err = meter.Int64Counter("idcashier_items_sold_total",
		metric.WithDescription("Units sold across all sales"), metric.WithUnit("{units}")); err != nil {
		return nil, err
	}
	if bm.returnsTotal, err = meter.Int64Counter("idcashier_returns_total",
		metric.WithDescription("Total number of returns"), metric.WithUnit("{returns}")); err != nil {
		return nil, err
	}
	if bm.refundAmount, err = meter.Float64Counter("idcashier_refund_amount_total",
		metric.WithDescription("Sum of refunded amounts"), metric.WithUnit("{IDR}")); err != nil {
		return nil, err
	}
	if bm.paymentsTotal, err = meter.Int64Counter("idcashier_subscription_payments_total",
		metric.WithDescription("Subscription payment outcomes"), metric.WithUnit("{payments}")); err != nil {
		return nil, err
	}
	return &bm, nil
}

// RecordSale counts a created sale
func (m *BusinessMetrics) RecordSale(ctx context.Context, paymentMethod, paymentStatus string, total decimal.Decimal, units int64) {
	attrs := metric.WithAttributes(
		AttrPaymentMethod.String(paymentMethod),
		AttrPaymentStatus.String(paymentStatus),
	)
	m.salesTotal.Add(ctx, 1, attrs)
	m.salesAmount.Add(ctx, total.InexactFloat64(), attrs)
	m.itemsSold.Add(ctx, units, metric.WithAttributes(AttrPaymentMethod.String(paymentMethod)))
}

// RecordReturn counts a processed return
func (m *BusinessMetrics) RecordReturn(ctx context.Context, returnType string, refund decimal.Decimal) {
	attrs := metric.WithAttributes(AttrReturnType.String(returnType))
	m.returnsTotal.Add(ctx, 1, attrs)
	m.refundAmount.Add(ctx, refund.InexactFloat64(), attrs)
}

// RecordSubscriptionPayment counts a payment reaching status (paid, failed, ...)
func (m *BusinessMetrics) RecordSubscriptionPayment(ctx context.Context, plan, status string) {
	m.paymentsTotal.Add(ctx, 1, metric.WithAttributes(
		AttrPlan.String(plan),
		attribute.String("status", status),
	))
}
