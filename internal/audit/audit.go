// Package audit registra eventos de auditoría de acciones administrativas y de acceso.
package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/dropDatabas3/hellonotes/internal/observability/logger"
	"github.com/dropDatabas3/hellonotes/internal/util"
)

// Event identifica el tipo de evento.
type Event string

const (
	TenantUpgraded Event = "tenant.upgraded"
	UserInvited    Event = "user.invited"
	LoginFailed    Event = "auth.login_failed"
)

// Log escribe un evento estructurado con el logger del request.
// Los campos sensibles se pasan ya enmascarados (ver Email).
func Log(ctx context.Context, event Event, fields ...zap.Field) {
	fs := make([]zap.Field, 0, len(fields)+2)
	fs = append(fs, zap.String("audit_event", string(event)), logger.Component("audit"))
	fs = append(fs, fields...)
	logger.From(ctx).Info("audit", fs...)
}

// Email es el campo de email enmascarado para eventos de auditoría.
func Email(email string) zap.Field {
	return zap.String("email", util.MaskEmail(email))
}
