// Package reqctx carries per-request metadata through context.Context so
// services and log handlers can see it without depending on the HTTP layer.
package reqctx

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey int

const keyRequestMeta ctxKey = iota

// RequestMeta is set once by the request id middleware.
type RequestMeta struct {
	RequestID   string
	ClientIP    string
	UserAgent   string
	Locale      string
	RequestedAt time.Time
}

func WithRequestMeta(ctx context.Context, meta *RequestMeta) context.Context {
	return context.WithValue(ctx, keyRequestMeta, meta)
}

func RequestMetaFromContext(ctx context.Context) (*RequestMeta, bool) {
	meta, ok := ctx.Value(keyRequestMeta).(*RequestMeta)
	return meta, ok && meta != nil
}

// RequestIDFromContext returns "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	meta, ok := RequestMetaFromContext(ctx)
	if !ok {
		return ""
	}
	return meta.RequestID
}

// LogAttrs are the attributes added to every log record written with ctx.
func LogAttrs(ctx context.Context) []slog.Attr {
	meta, ok := RequestMetaFromContext(ctx)
	if !ok {
		return nil
	}
	attrs := []slog.Attr{slog.String("request_id", meta.RequestID)}
	if meta.ClientIP != "" {
		attrs = append(attrs, slog.String("client_ip", meta.ClientIP))
	}
	return attrs
}
