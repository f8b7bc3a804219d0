package service

import (
	"context"
	"encoding/json"

	"stroymonitor/internal/entity"
	"stroymonitor/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// ActivityEntry describes one audit event. UserID stays nil for
// unauthenticated attempts.
type ActivityEntry struct {
	UserID     *uuid.UUID
	UserEmail  string
	Action     entity.ActivityAction
	EntityType *string
	EntityID   *string
	OldValues  map[string]any
	NewValues  map[string]any
	IPAddress  *string
	UserAgent  *string
}

// ActivityLogger appends to the audit trail. Writes are best-effort: a
// failed insert never fails the request that triggered it, but it is
// always reported through the application logger so the event is not
// silently lost.
type ActivityLogger struct {
	logs   repository.ActivityLogRepository
	logger logrus.FieldLogger
}

func NewActivityLogger(logs repository.ActivityLogRepository, logger logrus.FieldLogger) *ActivityLogger {
	return &ActivityLogger{logs: logs, logger: logger}
}

func (a *ActivityLogger) Append(ctx context.Context, entry ActivityEntry) {
	record := &entity.ActivityLog{
		UserID:     entry.UserID,
		UserEmail:  entry.UserEmail,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
	}

	var err error
	if record.OldValues, err = marshalValues(entry.OldValues); err != nil {
		a.report(err, entry)
		return
	}
	if record.NewValues, err = marshalValues(entry.NewValues); err != nil {
		a.report(err, entry)
		return
	}

	if err := a.logs.Create(ctx, record); err != nil {
		a.report(err, entry)
	}
}

// List returns the newest entries first. A non-positive limit falls back
// to 100.
func (a *ActivityLogger) List(ctx context.Context, limit, offset int) ([]entity.ActivityLog, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return a.logs.List(ctx, limit, offset)
}

func (a *ActivityLogger) report(err error, entry ActivityEntry) {
	a.logger.WithError(err).WithFields(logrus.Fields{
		"action": entry.Action,
		"email":  entry.UserEmail,
	}).Error("activity log write failed")
}

func marshalValues(values map[string]any) (datatypes.JSON, error) {
	if values == nil {
		return nil, nil
	}
	bytes, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(bytes), nil
}
