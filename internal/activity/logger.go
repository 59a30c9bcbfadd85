// Package activity records the audit trail around mutating actions.
// Recording is best effort: a failed audit write never fails the action it
// describes, it is only logged.
package activity

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ditservices/asset-tracker/internal/models"
	"github.com/ditservices/asset-tracker/internal/repo"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
	ActionLogout = "logout"
	ActionSale   = "sale"
)

type Logger struct {
	logs repo.ActivityLogRepository
}

func NewLogger(logs repo.ActivityLogRepository) *Logger {
	return &Logger{logs: logs}
}

// Record appends an audit entry. oldValues and newValues may be nil; any
// non-nil value is stored as its JSON encoding.
func (l *Logger) Record(r *http.Request, userID int, actionType, entityType string, entityID int, oldValues, newValues any) {
	entry := models.ActivityLog{
		UserID:     userID,
		ActionType: actionType,
		EntityType: entityType,
		EntityID:   entityID,
		IPAddress:  clientIP(r),
		UserAgent:  r.UserAgent(),
	}

	var err error
	if entry.OldValues, err = encode(oldValues); err != nil {
		zap.L().Warn("audit entry old values not serializable", zap.Error(err))
	}
	if entry.NewValues, err = encode(newValues); err != nil {
		zap.L().Warn("audit entry new values not serializable", zap.Error(err))
	}

	if _, err := l.logs.Create(entry); err != nil {
		zap.L().Warn("audit entry not recorded",
			zap.String("action_type", actionType),
			zap.String("entity_type", entityType),
			zap.Int("entity_id", entityID),
			zap.Error(err))
	}
}

func encode(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	return r.RemoteAddr
}
