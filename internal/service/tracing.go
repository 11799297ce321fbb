package service

import "go.opentelemetry.io/otel"

var tracer = otel.GetTracerProvider().Tracer("github.com/iliyamo/venue-booking/internal/service")
