// Package presenter formats command results for console display.
// Presenters handle the conversion from application results to the plain
// text lines the console prints; rendering happens nowhere else.
package presenter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alem-hub/watson/internal/application/query"
	"github.com/alem-hub/watson/internal/domain/shared"
	"github.com/alem-hub/watson/internal/interface/console/parser"
)

// ══════════════════════════════════════════════════════════════════════════════
// MESSAGE TEXTS
// Все пользовательские тексты консоли собраны здесь, команды и сессия
// текстов не содержат.
// ══════════════════════════════════════════════════════════════════════════════

// Тексты результатов команд.
const (
	MessageAdded       = "New person added: %s"
	MessageDeleted     = "Deleted Person: %s"
	MessageEdited      = "Edited Person: %s"
	MessageCleared     = "Roster has been cleared! Removed %d person(s)."
	MessageSortedAsc   = "Sorted %d person(s) by total grade, lowest first."
	MessageSortedDesc  = "Sorted %d person(s) by total grade, highest first."
	MessageListedAll   = "Listed all persons"
	MessageFound       = "%d persons listed!"
	MessageRosterStats = "%d person(s) in the roster. Storage backend: %s."
	MessageEmptyRoster = "The roster is empty."
	MessageGoodbye     = "Exiting Watson as requested ..."
	MessageHelpHeader  = "Watson understands the following commands:"
)

// Тексты ошибок исполнения.
const (
	MessageDuplicatePerson = "This person already exists in the roster"
	MessageInvalidIndex    = "The person index provided is invalid"
	MessagePersonNotFound  = "The person could not be found in the roster"
	MessageEditUnchanged   = "The edit does not change any of the person's fields"
	MessageStorageFailure  = "The storage backend failed; the command was not applied"
)

// Prompt - приглашение ко вводу, печатается без перевода строки.
const Prompt = "> "

// ══════════════════════════════════════════════════════════════════════════════
// PRESENTER
// ══════════════════════════════════════════════════════════════════════════════

// Presenter печатает результаты команд в выходной поток консоли.
type Presenter struct {
	out io.Writer
}

// NewPresenter создаёт презентер поверх выходного потока.
func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

// ─────────────────────────────────────────────────────────────────────────────
// SESSION FRAME
// ─────────────────────────────────────────────────────────────────────────────

// Welcome печатает приветственный блок при запуске сессии.
func (p *Presenter) Welcome(version, backend string) {
	var sb strings.Builder
	sb.WriteString("Welcome to Watson, your student roster assistant.\n")
	sb.WriteString(fmt.Sprintf("Version %s, storage backend: %s.\n", version, backend))
	sb.WriteString(`Type "help" to see the available commands.`)
	p.println(sb.String())
}

// Goodbye печатает прощальное сообщение.
func (p *Presenter) Goodbye() {
	p.println(MessageGoodbye)
}

// ShowPrompt печатает приглашение ко вводу.
func (p *Presenter) ShowPrompt() {
	fmt.Fprint(p.out, Prompt)
}

// ─────────────────────────────────────────────────────────────────────────────
// COMMAND RESULTS
// ─────────────────────────────────────────────────────────────────────────────

// PersonAdded печатает результат добавления записи.
func (p *Presenter) PersonAdded(card string) {
	p.println(fmt.Sprintf(MessageAdded, card))
}

// PersonDeleted печатает результат удаления записи.
func (p *Presenter) PersonDeleted(card string) {
	p.println(fmt.Sprintf(MessageDeleted, card))
}

// PersonEdited печатает результат правки записи.
func (p *Presenter) PersonEdited(card string) {
	p.println(fmt.Sprintf(MessageEdited, card))
}

// RosterCleared печатает результат очистки списка.
func (p *Presenter) RosterCleared(removed int) {
	p.println(fmt.Sprintf(MessageCleared, removed))
}

// RosterSorted печатает результат сортировки списка.
func (p *Presenter) RosterSorted(descending bool, count int) {
	if descending {
		p.println(fmt.Sprintf(MessageSortedDesc, count))
		return
	}
	p.println(fmt.Sprintf(MessageSortedAsc, count))
}

// ─────────────────────────────────────────────────────────────────────────────
// LISTINGS
// Номера записей печатаются с единицы; именно на эти номера ссылаются
// последующие команды delete и edit.
// ─────────────────────────────────────────────────────────────────────────────

// FullListing печатает весь список, итоговую строку и строку статистики.
func (p *Presenter) FullListing(persons []query.PersonDTO, total int, backend string) {
	var sb strings.Builder
	if len(persons) == 0 {
		sb.WriteString(MessageEmptyRoster)
	} else {
		writeListing(&sb, persons)
		sb.WriteString(MessageListedAll)
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(MessageRosterStats, total, backend))
	p.println(sb.String())
}

// SearchListing печатает отфильтрованный список и счётчик найденного.
func (p *Presenter) SearchListing(persons []query.PersonDTO) {
	var sb strings.Builder
	writeListing(&sb, persons)
	sb.WriteString(fmt.Sprintf(MessageFound, len(persons)))
	p.println(sb.String())
}

// writeListing пишет нумерованные строки списка.
func writeListing(sb *strings.Builder, persons []query.PersonDTO) {
	for _, dto := range persons {
		sb.WriteString(fmt.Sprintf("%d. %s\n", dto.Index, dto.Card))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// HELP
// ─────────────────────────────────────────────────────────────────────────────

// Help печатает каталог команд с их usage-текстами.
func (p *Presenter) Help(usages []parser.CommandUsage) {
	var sb strings.Builder
	sb.WriteString(MessageHelpHeader)
	for _, u := range usages {
		sb.WriteString("\n\n")
		sb.WriteString(u.Usage)
	}
	p.println(sb.String())
}

// ─────────────────────────────────────────────────────────────────────────────
// ERRORS
// Ошибка разбора печатается как сообщение и usage-текст нарушенной
// команды; ошибка исполнения переводится в текст по базовой ошибке.
// ─────────────────────────────────────────────────────────────────────────────

// Error печатает ошибку команды.
func (p *Presenter) Error(err error) {
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		p.println(parseErr.Message + "\n" + parseErr.Usage)
		return
	}
	p.println(TranslateError(err))
}

// TranslateError переводит ошибку исполнения в текст для пользователя.
// Неопознанные ошибки печатаются как есть.
func TranslateError(err error) string {
	switch {
	case errors.Is(err, shared.ErrDuplicatePerson):
		return MessageDuplicatePerson
	case errors.Is(err, shared.ErrIndexOutOfRange):
		return MessageInvalidIndex
	case errors.Is(err, shared.ErrPersonNotFound):
		return MessagePersonNotFound
	case errors.Is(err, shared.ErrEditUnchanged), errors.Is(err, shared.ErrEditNoChanges):
		return MessageEditUnchanged
	case errors.Is(err, shared.ErrStorageUnavailable):
		return MessageStorageFailure
	default:
		return err.Error()
	}
}

// println пишет текст и перевод строки в выходной поток.
func (p *Presenter) println(text string) {
	fmt.Fprintln(p.out, text)
}
