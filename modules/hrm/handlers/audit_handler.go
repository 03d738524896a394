package handlers

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/wI2L/jsondiff"

	"github.com/iota-uz/emprecords/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/emprecords/pkg/eventbus"
)

// AuditHandler writes an audit trail of employee changes to the log.
// Updates are recorded as a JSON patch from the previous row to the new one.
type AuditHandler struct {
	logger logrus.FieldLogger
}

func NewAuditHandler(logger logrus.FieldLogger) *AuditHandler {
	return &AuditHandler{logger: logger}
}

func RegisterAuditHandlers(bus eventbus.EventBus, logger logrus.FieldLogger) *AuditHandler {
	h := NewAuditHandler(logger)
	bus.Subscribe(h.onCreated)
	bus.Subscribe(h.onUpdated)
	bus.Subscribe(h.onDeleted)
	return h
}

func (h *AuditHandler) onCreated(event *employee.CreatedEvent) {
	h.entry(event.RequestID, event.Result.EmployeeID).Info("employee created")
}

func (h *AuditHandler) onUpdated(event *employee.UpdatedEvent) {
	entry := h.entry(event.RequestID, event.Result.EmployeeID)
	if event.Data.IsEmpty() {
		entry.Info("employee updated without changes")
		return
	}
	patch, err := jsondiff.Compare(event.Before, event.Result)
	if err != nil {
		entry.WithError(err).Warn("employee updated; failed to diff")
		return
	}
	if len(patch) == 0 {
		entry.Info("employee updated with unchanged values")
		return
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		entry.WithError(err).Warn("employee updated; failed to encode diff")
		return
	}
	entry.WithField("patch", string(raw)).Info("employee updated")
}

func (h *AuditHandler) onDeleted(event *employee.DeletedEvent) {
	h.entry(event.RequestID, event.Result.EmployeeID).
		WithField("name", event.Result.Name).
		Info("employee deleted")
}

func (h *AuditHandler) entry(requestID string, empID int) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"audit":      "hrm.employee",
		"request-id": requestID,
		"emp_id":     empID,
	})
}
