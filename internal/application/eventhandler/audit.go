// Package eventhandler содержит обработчики доменных событий.
package eventhandler

import (
	"github.com/alem-hub/watson/internal/domain/shared"
	"github.com/alem-hub/watson/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// AUDIT HANDLER
// Протоколирует каждое доменное событие одной JSON-строкой.
//
// Протокол - это история списка: кто добавлен, кто изменён, кто удалён,
// когда список очищался и сортировался. По нему можно восстановить ход
// сеанса без доступа к самому хранилищу.
// ═══════════════════════════════════════════════════════════════════════════

// AuditConfig содержит конфигурацию протокола.
type AuditConfig struct {
	// IncludePayload - включать ли полезную нагрузку события в запись.
	IncludePayload bool
}

// DefaultAuditConfig возвращает конфигурацию по умолчанию.
func DefaultAuditConfig() AuditConfig {
	return AuditConfig{
		IncludePayload: true,
	}
}

// AuditHandler протоколирует доменные события.
type AuditHandler struct {
	logger *logger.Logger
	config AuditConfig
}

// NewAuditHandler создаёт новый обработчик протокола.
func NewAuditHandler(log *logger.Logger, config AuditConfig) *AuditHandler {
	if log == nil {
		log = logger.Default()
	}

	return &AuditHandler{
		logger: log.With(logger.Component("audit")),
		config: config,
	}
}

// Handle протоколирует одно событие.
// Реализует интерфейс shared.EventHandler.
func (h *AuditHandler) Handle(event shared.Event) error {
	fields := []logger.Field{
		logger.EventType(event.EventType().String()),
		logger.EventID(event.EventID()),
		logger.String("aggregate_id", event.AggregateID()),
		logger.Time("occurred_at", event.OccurredAt()),
	}

	if h.config.IncludePayload {
		fields = append(fields, logger.Any("payload", event.Payload()))
	}

	h.logger.Info(event.EventType().String(), fields...)
	return nil
}

// RegisterAuditHandlers подписывает протокол на все события шины.
func RegisterAuditHandlers(bus shared.EventSubscriber, handler *AuditHandler) error {
	return bus.SubscribeAll(handler.Handle)
}
