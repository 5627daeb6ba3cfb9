package person

import (
	"fmt"
	"strings"

	"github.com/alem-hub/watson/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBJECTS
// Предмет - это имя плюс набор оценённых компонентов (контрольные,
// задания). Итоговый процент предмета выводится из компонентов.
// ══════════════════════════════════════════════════════════════════════════════

// Тексты ограничений для ввода оценок.
const (
	SubjectConstraints = "Subject grades should be of the format SUBJECT:COMPONENT=SCORE/MAX, " +
		"where SUBJECT and COMPONENT are alphanumeric, SCORE is between 0 and MAX, and MAX is positive"
)

// SubjectName представляет название предмета (например, "Math").
type SubjectName string

// IsValid проверяет формат названия предмета.
func (n SubjectName) IsValid() bool {
	return nameRegex.MatchString(string(n))
}

// String возвращает строковое представление названия.
func (n SubjectName) String() string {
	return string(n)
}

// Normalize возвращает каноническую форму для сравнения названий.
func (n SubjectName) Normalize() string {
	return strings.ToLower(string(n))
}

// NewSubjectName создаёт SubjectName с валидацией.
func NewSubjectName(value string) (SubjectName, error) {
	n := SubjectName(strings.TrimSpace(value))
	if !n.IsValid() {
		return "", shared.ErrInvalidSubject
	}
	return n, nil
}

// ComponentLabel представляет метку оценённого компонента (например, "quiz1").
type ComponentLabel string

// IsValid проверяет формат метки компонента.
func (l ComponentLabel) IsValid() bool {
	return tagRegex.MatchString(string(l))
}

// String возвращает строковое представление метки.
func (l ComponentLabel) String() string {
	return string(l)
}

// GradedComponent представляет одну оценку внутри предмета.
type GradedComponent struct {
	// Label - метка компонента, уникальная внутри предмета.
	Label ComponentLabel

	// Score - набранные баллы.
	Score float64

	// Max - максимально возможные баллы, строго положительные.
	Max float64
}

// IsValid проверяет корректность компонента.
func (c GradedComponent) IsValid() bool {
	return c.Label.IsValid() && c.Max > 0 && c.Score >= 0 && c.Score <= c.Max
}

// NewGradedComponent создаёт компонент с валидацией.
func NewGradedComponent(label string, score, max float64) (GradedComponent, error) {
	c := GradedComponent{Label: ComponentLabel(label), Score: score, Max: max}
	if !c.IsValid() {
		return GradedComponent{}, shared.ErrInvalidComponent
	}
	return c, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Subject
// ─────────────────────────────────────────────────────────────────────────────

// Subject представляет предмет с его компонентами. Значение неизменяемо:
// WithComponent возвращает новую копию.
type Subject struct {
	name       SubjectName
	components []GradedComponent
}

// NewSubject создаёт предмет без компонентов.
func NewSubject(name SubjectName) Subject {
	return Subject{name: name}
}

// Name возвращает название предмета.
func (s Subject) Name() SubjectName {
	return s.name
}

// WithComponent возвращает новый предмет с добавленным компонентом.
// Компонент с той же меткой заменяется на месте, сохраняя порядок ввода.
func (s Subject) WithComponent(c GradedComponent) Subject {
	components := make([]GradedComponent, len(s.components))
	copy(components, s.components)
	for i, existing := range components {
		if existing.Label == c.Label {
			components[i] = c
			return Subject{name: s.name, components: components}
		}
	}
	return Subject{name: s.name, components: append(components, c)}
}

// Components возвращает копию списка компонентов в порядке ввода.
func (s Subject) Components() []GradedComponent {
	out := make([]GradedComponent, len(s.components))
	copy(out, s.components)
	return out
}

// TotalPercentage возвращает итоговый процент предмета: сумма баллов,
// делённая на сумму максимумов. Предмет без компонентов даёт 0.
func (s Subject) TotalPercentage() float64 {
	var score, max float64
	for _, c := range s.components {
		score += c.Score
		max += c.Max
	}
	if max == 0 {
		return 0
	}
	return score / max * 100
}

// Equals сравнивает предметы по названию и компонентам.
func (s Subject) Equals(other Subject) bool {
	if s.name.Normalize() != other.name.Normalize() {
		return false
	}
	if len(s.components) != len(other.components) {
		return false
	}
	for i, c := range s.components {
		if other.components[i] != c {
			return false
		}
	}
	return true
}

// String возвращает представление вида "Math: 75.5%".
func (s Subject) String() string {
	return fmt.Sprintf("%s: %.1f%%", s.name, s.TotalPercentage())
}

// ─────────────────────────────────────────────────────────────────────────────
// SubjectSet
// ─────────────────────────────────────────────────────────────────────────────

// SubjectGrade описывает одну оценку для внесения: предмет плюс компонент.
type SubjectGrade struct {
	Subject   SubjectName
	Component GradedComponent
}

// SubjectSet хранит предметы записи в порядке первого упоминания.
// Названия уникальны без учёта регистра. Нулевое значение - пустой набор.
type SubjectSet struct {
	subjects []Subject
}

// NewSubjectSet создаёт пустой набор предметов.
func NewSubjectSet() SubjectSet {
	return SubjectSet{}
}

// WithGrade возвращает новый набор с внесённой оценкой: предмет создаётся
// при первом упоминании, компонент вставляется или заменяется по метке.
func (ss SubjectSet) WithGrade(grade SubjectGrade) SubjectSet {
	subjects := make([]Subject, len(ss.subjects))
	copy(subjects, ss.subjects)
	for i, s := range subjects {
		if s.name.Normalize() == grade.Subject.Normalize() {
			subjects[i] = s.WithComponent(grade.Component)
			return SubjectSet{subjects: subjects}
		}
	}
	s := NewSubject(grade.Subject).WithComponent(grade.Component)
	return SubjectSet{subjects: append(subjects, s)}
}

// Subjects возвращает копию списка предметов в порядке первого упоминания.
func (ss SubjectSet) Subjects() []Subject {
	out := make([]Subject, len(ss.subjects))
	copy(out, ss.subjects)
	return out
}

// TotalGrade возвращает сумму итоговых процентов всех предметов.
// Набор без предметов даёт 0.0 - это вклад записи в порядок сортировки.
func (ss SubjectSet) TotalGrade() float64 {
	var total float64
	for _, s := range ss.subjects {
		total += s.TotalPercentage()
	}
	return total
}

// Len возвращает количество предметов.
func (ss SubjectSet) Len() int {
	return len(ss.subjects)
}

// IsEmpty возвращает true, если предметов нет.
func (ss SubjectSet) IsEmpty() bool {
	return len(ss.subjects) == 0
}

// Equals сравнивает наборы попредметно, включая порядок.
func (ss SubjectSet) Equals(other SubjectSet) bool {
	if len(ss.subjects) != len(other.subjects) {
		return false
	}
	for i, s := range ss.subjects {
		if !s.Equals(other.subjects[i]) {
			return false
		}
	}
	return true
}

// String возвращает предметы, разделённые запятыми.
func (ss SubjectSet) String() string {
	parts := make([]string, 0, len(ss.subjects))
	for _, s := range ss.subjects {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ", ")
}
