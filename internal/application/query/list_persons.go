// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"errors"
	"time"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST PERSONS QUERY
// Возвращает список записей в порядке хранения. Консоль нумерует записи
// с единицы; последующие delete/edit ссылаются именно на эти номера.
// ══════════════════════════════════════════════════════════════════════════════

// ListPersonsQuery содержит параметры постраничного чтения списка.
type ListPersonsQuery struct {
	// Offset - смещение от начала списка.
	Offset int

	// Limit - максимальное количество записей (0 - весь список).
	Limit int
}

// Validate проверяет корректность параметров.
func (q *ListPersonsQuery) Validate() error {
	if q.Offset < 0 {
		return errors.New("offset cannot be negative")
	}
	if q.Limit < 0 {
		return errors.New("limit cannot be negative")
	}
	return nil
}

// PersonDTO - строка списка для отображения.
type PersonDTO struct {
	// Index - номер записи в списке, с единицы.
	Index int `json:"index"`

	// Name - точное имя записи; по нему консоль адресует delete/edit.
	Name string `json:"name"`

	// Card - полная карточка записи одной строкой.
	Card string `json:"card"`

	// TotalGrade - сумма итоговых процентов предметов.
	TotalGrade float64 `json:"total_grade"`
}

// ListPersonsResult содержит результат запроса.
type ListPersonsResult struct {
	// Persons - записи в порядке хранения.
	Persons []PersonDTO `json:"persons"`

	// TotalCount - размер списка целиком, до пагинации.
	TotalCount int `json:"total_count"`

	// AverageGrade - средняя сумма процентов по возвращённым записям.
	AverageGrade float64 `json:"average_grade"`

	// GeneratedAt - время генерации.
	GeneratedAt time.Time `json:"generated_at"`
}

// ListPersonsHandler обрабатывает запрос списка.
type ListPersonsHandler struct {
	personRepo person.Repository
}

// NewListPersonsHandler создаёт новый обработчик.
func NewListPersonsHandler(personRepo person.Repository) *ListPersonsHandler {
	return &ListPersonsHandler{personRepo: personRepo}
}

// Handle выполняет запрос.
func (h *ListPersonsHandler) Handle(ctx context.Context, query ListPersonsQuery) (*ListPersonsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "ListPersons", shared.ErrValidation, err.Error(), err)
	}

	opts := person.DefaultListOptions().WithOffset(query.Offset).WithLimit(query.Limit)
	persons, err := h.personRepo.GetAll(ctx, opts)
	if err != nil {
		return nil, shared.WrapError("query", "ListPersons", shared.ErrStorageUnavailable, "failed to read roster", err)
	}

	total, err := h.personRepo.Count(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "ListPersons", shared.ErrStorageUnavailable, "failed to count roster", err)
	}

	dtos := make([]PersonDTO, 0, len(persons))
	var gradeSum float64
	for i, p := range persons {
		dtos = append(dtos, buildPersonDTO(query.Offset+i+1, p))
		gradeSum += p.TotalGrade()
	}

	var average float64
	if len(persons) > 0 {
		average = gradeSum / float64(len(persons))
	}

	return &ListPersonsResult{
		Persons:      dtos,
		TotalCount:   total,
		AverageGrade: average,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}

// buildPersonDTO строит строку списка из доменной записи.
func buildPersonDTO(index int, p *person.Person) PersonDTO {
	return PersonDTO{
		Index:      index,
		Name:       p.Name().String(),
		Card:       p.String(),
		TotalGrade: p.TotalGrade(),
	}
}
