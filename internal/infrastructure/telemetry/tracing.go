package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of application spans
const TracerName = "idcashier"

// Span attribute keys used by the application services
const (
	AttrTenantID        = attribute.Key("tenant_id")
	AttrSaleID          = attribute.Key("sale_id")
	AttrInvoiceNumber   = attribute.Key("invoice_number")
	AttrPaymentMethod   = attribute.Key("payment_method")
	AttrPaymentStatus   = attribute.Key("payment_status")
	AttrReturnType      = attribute.Key("return_type")
	AttrMerchantOrderID = attribute.Key("merchant_order_id")
	AttrPlan            = attribute.Key("plan")
)

// StartSpan starts an internal span named {service}.{method}.
//
//	ctx, span := telemetry.StartSpan(ctx, "sale", "create", telemetry.AttrTenantID.String(id))
//	defer span.End()
func StartSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx,
		fmt.Sprintf("%s.%s", service, method),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan records err (if any) on the span and ends it. Use with a named error return:
//
//	defer func() { telemetry.EndSpan(span, err) }()
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
