package eventhandler

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alem-hub/watson/internal/domain/shared"
	"github.com/alem-hub/watson/pkg/logger"
)

func auditLoggerForTest(buf *bytes.Buffer) *logger.Logger {
	return logger.New(logger.Options{Output: buf, Level: logger.LevelDebug, AddCaller: false})
}

func TestAuditHandler_WritesOneJSONLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	handler := NewAuditHandler(auditLoggerForTest(&buf), DefaultAuditConfig())

	err := handler.Handle(shared.NewPersonAddedEvent("id-1", "Alice Tan"))
	assert.NoError(t, err)

	var entry logger.LogEntry
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "person.added", entry.Message)
	assert.Equal(t, "person.added", entry.Fields["event_type"])
	assert.Equal(t, "audit", entry.Fields["component"])

	payload, ok := entry.Fields["payload"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "Alice Tan", payload["person_name"])
}

func TestAuditHandler_PayloadCanBeExcluded(t *testing.T) {
	var buf bytes.Buffer
	handler := NewAuditHandler(auditLoggerForTest(&buf), AuditConfig{IncludePayload: false})

	err := handler.Handle(shared.NewRosterClearedEvent(7))
	assert.NoError(t, err)

	var entry logger.LogEntry
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry.Fields, "payload")
}
