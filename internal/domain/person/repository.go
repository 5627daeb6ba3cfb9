package person

import (
	"context"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Эти интерфейсы определяют контракт для работы с хранилищем записей.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет операции над списком записей.
// Порядок хранения значим: GetAll возвращает записи в нём, а SortByGrade
// перезаписывает его durably - последующие GetAll видят новый порядок.
type Repository interface {
	// ─────────────────────────────────────────────────────────────────────────
	// CRUD Operations
	// ─────────────────────────────────────────────────────────────────────────

	// Create добавляет новую запись в конец списка.
	// Возвращает ErrDuplicatePerson, если запись с таким именем уже есть.
	Create(ctx context.Context, p *Person) error

	// GetByName возвращает запись по точному имени.
	// Возвращает ErrPersonNotFound, если записи нет.
	GetByName(ctx context.Context, name Name) (*Person, error)

	// Update заменяет запись с тем же ID, сохраняя её позицию в списке.
	// Возвращает ErrPersonNotFound, если записи нет, и ErrDuplicatePerson,
	// если новое имя совпадает с именем другой записи.
	Update(ctx context.Context, p *Person) error

	// Delete удаляет запись по точному имени.
	// Возвращает ErrPersonNotFound, если записи нет.
	Delete(ctx context.Context, name Name) error

	// ─────────────────────────────────────────────────────────────────────────
	// Bulk Operations
	// ─────────────────────────────────────────────────────────────────────────

	// GetAll возвращает записи в порядке хранения.
	GetAll(ctx context.Context, opts ListOptions) ([]*Person, error)

	// Count возвращает количество записей.
	Count(ctx context.Context) (int, error)

	// Clear удаляет все записи и возвращает, сколько было удалено.
	Clear(ctx context.Context) (int, error)

	// SortByGrade переупорядочивает список по сумме итоговых процентов
	// предметов (по возрастанию; descending - по убыванию). Новый
	// порядок сохраняется.
	SortByGrade(ctx context.Context, descending bool) error

	// ─────────────────────────────────────────────────────────────────────────
	// Search & Existence
	// ─────────────────────────────────────────────────────────────────────────

	// Search возвращает записи, у которых хотя бы одно слово имени
	// совпадает с одним из ключевых слов (без учёта регистра).
	// Порядок результата - порядок хранения.
	Search(ctx context.Context, keywords []string) ([]*Person, error)

	// Exists проверяет наличие записи с точным именем.
	Exists(ctx context.Context, name Name) (bool, error)
}

// ListOptions содержит параметры постраничного чтения.
// Нулевой Limit означает "без ограничения".
type ListOptions struct {
	// Offset - смещение от начала списка.
	Offset int

	// Limit - максимальное количество записей (0 - все).
	Limit int
}

// DefaultListOptions возвращает параметры по умолчанию: весь список.
func DefaultListOptions() ListOptions {
	return ListOptions{Offset: 0, Limit: 0}
}

// WithOffset устанавливает смещение.
func (o ListOptions) WithOffset(offset int) ListOptions {
	o.Offset = offset
	return o
}

// WithLimit устанавливает лимит.
func (o ListOptions) WithLimit(limit int) ListOptions {
	o.Limit = limit
	return o
}

// ══════════════════════════════════════════════════════════════════════════════
// CACHE INTERFACE
// Кеширование записей и полного списка (обычно реализуется через Redis).
// ══════════════════════════════════════════════════════════════════════════════

// Cache определяет операции кеширования записей.
type Cache interface {
	// Get получает запись из кеша по имени.
	Get(ctx context.Context, name Name) (*Person, error)

	// Set сохраняет запись в кеш.
	Set(ctx context.Context, p *Person, ttl time.Duration) error

	// GetRoster получает закешированный полный список.
	GetRoster(ctx context.Context) ([]*Person, error)

	// SetRoster сохраняет полный список в кеш.
	SetRoster(ctx context.Context, persons []*Person, ttl time.Duration) error

	// Invalidate удаляет запись из кеша по имени.
	Invalidate(ctx context.Context, name Name) error

	// InvalidateAll очищает кеш записей целиком.
	InvalidateAll(ctx context.Context) error
}
