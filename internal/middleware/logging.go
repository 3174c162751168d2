package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// billScoped is implemented by requests that address one bill.
type billScoped interface {
	BillRef() string
}

// menuItemScoped is implemented by requests that address one menu item.
type menuItemScoped interface {
	MenuItemRef() string
}

// persistenceWarned is implemented by responses that report unsaved changes.
type persistenceWarned interface {
	PersistenceWarning() string
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// with the bill and menu item it touched, the acting supervisor, and the
// outcome. A successful call whose changes could not be saved is logged at WARN.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			attrs := requestAttrs(ctx, req)

			resp, err := next(ctx, req)

			attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					// Rejected operations (closed bill, bad quantity) are routine on the floor.
					logger.Warn("RPC rejected", append(attrs, "code", connectErr.Code(), "error", connectErr.Message())...)
				} else {
					logger.Error("RPC failed", append(attrs, "error", err)...)
				}
				return resp, err
			}

			if w, ok := anyMessage(resp).(persistenceWarned); ok && w.PersistenceWarning() != "" {
				logger.Warn("RPC ok, changes not persisted", append(attrs, "warning", w.PersistenceWarning())...)
				return resp, nil
			}
			logger.Info("RPC ok", attrs...)
			return resp, nil
		}
	}
}

func requestAttrs(ctx context.Context, req connect.AnyRequest) []any {
	attrs := []any{"procedure", req.Spec().Procedure}
	if b, ok := req.Any().(billScoped); ok && b.BillRef() != "" {
		attrs = append(attrs, "bill_id", b.BillRef())
	}
	if m, ok := req.Any().(menuItemScoped); ok && m.MenuItemRef() != "" {
		attrs = append(attrs, "menu_item_id", m.MenuItemRef())
	}
	if actor := GetActor(ctx); actor != "" {
		attrs = append(attrs, "actor", actor)
	}
	return attrs
}

func anyMessage(resp connect.AnyResponse) any {
	if resp == nil {
		return nil
	}
	return resp.Any()
}
