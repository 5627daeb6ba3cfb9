package query

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// FIND PERSONS QUERY
// Ищет записи по ключевым словам: запись попадает в результат, если хотя бы
// одно слово её имени совпадает с одним из ключевых слов без учёта регистра.
// Порядок результата - порядок хранения, не порядок ключевых слов.
// ══════════════════════════════════════════════════════════════════════════════

// FindPersonsQuery содержит ключевые слова поиска.
type FindPersonsQuery struct {
	// Keywords - непустой упорядоченный список ключевых слов.
	Keywords []string
}

// Validate проверяет корректность параметров.
func (q *FindPersonsQuery) Validate() error {
	if len(q.Keywords) == 0 {
		return errors.New("at least one keyword is required")
	}
	for _, kw := range q.Keywords {
		if strings.TrimSpace(kw) == "" {
			return errors.New("keywords cannot be blank")
		}
	}
	return nil
}

// FindPersonsResult содержит результат поиска.
type FindPersonsResult struct {
	// Persons - найденные записи в порядке хранения.
	Persons []PersonDTO `json:"persons"`

	// TotalCount - количество найденных записей.
	TotalCount int `json:"total_count"`

	// Keywords - ключевые слова, по которым шёл поиск.
	Keywords []string `json:"keywords"`

	// GeneratedAt - время генерации.
	GeneratedAt time.Time `json:"generated_at"`
}

// FindPersonsHandler обрабатывает поисковый запрос.
type FindPersonsHandler struct {
	personRepo person.Repository
}

// NewFindPersonsHandler создаёт новый обработчик.
func NewFindPersonsHandler(personRepo person.Repository) *FindPersonsHandler {
	return &FindPersonsHandler{personRepo: personRepo}
}

// Handle выполняет запрос.
func (h *FindPersonsHandler) Handle(ctx context.Context, query FindPersonsQuery) (*FindPersonsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "FindPersons", shared.ErrValidation, err.Error(), err)
	}

	persons, err := h.personRepo.Search(ctx, query.Keywords)
	if err != nil {
		return nil, shared.WrapError("query", "FindPersons", shared.ErrStorageUnavailable, "failed to search roster", err)
	}

	dtos := make([]PersonDTO, 0, len(persons))
	for i, p := range persons {
		dtos = append(dtos, buildPersonDTO(i+1, p))
	}

	return &FindPersonsResult{
		Persons:     dtos,
		TotalCount:  len(dtos),
		Keywords:    query.Keywords,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
