package person

import (
	"fmt"
	"sort"

	"github.com/alem-hub/watson/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE
// Посещаемость - это отображение идентификатора занятия в отметку 0/1.
// Значение неизменяемо: WithSession и Merge возвращают новую копию.
// ══════════════════════════════════════════════════════════════════════════════

// Тексты ограничений для ввода посещаемости.
const (
	SessionConstraints    = "Session identifiers should be alphanumeric"
	AttendanceConstraints = "Attendance entries should be of the format SESSION=0 or SESSION=1, where SESSION is alphanumeric"
)

// SessionID представляет идентификатор занятия (например, "m1").
type SessionID string

// IsValid проверяет формат идентификатора занятия.
func (s SessionID) IsValid() bool {
	return tagRegex.MatchString(string(s))
}

// String возвращает строковое представление идентификатора.
func (s SessionID) String() string {
	return string(s)
}

// NewSessionID создаёт SessionID с валидацией.
func NewSessionID(value string) (SessionID, error) {
	s := SessionID(value)
	if !s.IsValid() {
		return "", shared.ErrInvalidSession
	}
	return s, nil
}

// Attendance хранит отметки посещаемости по занятиям.
// Нулевое значение - валидная пустая посещаемость ("0/0").
type Attendance struct {
	sessions map[SessionID]int
}

// NewAttendance создаёт пустую посещаемость.
func NewAttendance() Attendance {
	return Attendance{}
}

// NewAttendanceFromMap создаёт посещаемость из сырого отображения.
// Каждый ключ проверяется как SessionID, каждая отметка должна быть 0 или 1.
func NewAttendanceFromMap(entries map[string]int) (Attendance, error) {
	if len(entries) == 0 {
		return Attendance{}, nil
	}
	sessions := make(map[SessionID]int, len(entries))
	for raw, mark := range entries {
		id, err := NewSessionID(raw)
		if err != nil {
			return Attendance{}, err
		}
		if mark != 0 && mark != 1 {
			return Attendance{}, shared.ErrInvalidSession
		}
		sessions[id] = mark
	}
	return Attendance{sessions: sessions}, nil
}

// WithSession возвращает новую посещаемость с установленной отметкой занятия.
// Существующая отметка того же занятия перезаписывается.
func (a Attendance) WithSession(id SessionID, mark int) Attendance {
	if mark != 0 {
		mark = 1
	}
	sessions := make(map[SessionID]int, len(a.sessions)+1)
	for k, v := range a.sessions {
		sessions[k] = v
	}
	sessions[id] = mark
	return Attendance{sessions: sessions}
}

// Merge возвращает новую посещаемость: отметки other перекрывают отметки
// тех же занятий, остальные занятия сохраняются.
func (a Attendance) Merge(other Attendance) Attendance {
	if other.IsEmpty() {
		return a
	}
	sessions := make(map[SessionID]int, len(a.sessions)+len(other.sessions))
	for k, v := range a.sessions {
		sessions[k] = v
	}
	for k, v := range other.sessions {
		sessions[k] = v
	}
	return Attendance{sessions: sessions}
}

// Sessions возвращает копию отображения занятий.
func (a Attendance) Sessions() map[SessionID]int {
	out := make(map[SessionID]int, len(a.sessions))
	for k, v := range a.sessions {
		out[k] = v
	}
	return out
}

// SessionIDs возвращает отсортированный список занятий.
func (a Attendance) SessionIDs() []SessionID {
	ids := make([]SessionID, 0, len(a.sessions))
	for id := range a.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Summary возвращает количество посещённых занятий и их общее число.
func (a Attendance) Summary() (attended, total int) {
	for _, mark := range a.sessions {
		if mark > 0 {
			attended++
		}
	}
	return attended, len(a.sessions)
}

// IsEmpty возвращает true, если отметок нет.
func (a Attendance) IsEmpty() bool {
	return len(a.sessions) == 0
}

// Equals сравнивает посещаемость позанятийно.
func (a Attendance) Equals(other Attendance) bool {
	if len(a.sessions) != len(other.sessions) {
		return false
	}
	for k, v := range a.sessions {
		ov, ok := other.sessions[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// String возвращает сводку вида "посещено/всего".
// Пустая посещаемость отображается буквально как "0/0".
func (a Attendance) String() string {
	attended, total := a.Summary()
	return fmt.Sprintf("%d/%d", attended, total)
}
