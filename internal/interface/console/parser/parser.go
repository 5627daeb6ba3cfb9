// Package parser turns raw console input lines into typed commands.
//
// Parsing is fail-fast: the first violated rule aborts with a ParseError
// carrying both a message and the violated command's usage text, and a
// command value is never partially constructed. Parsers are stateless;
// execution happens in the session, not here.
package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/alem-hub/watson/internal/application/command"
	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MESSAGES
// ══════════════════════════════════════════════════════════════════════════════

// User-facing parse failure messages.
const (
	MessageUnknownCommand       = "Unknown command"
	MessageInvalidCommandFormat = "Invalid command format!"
	MessageInvalidIndex         = "Index is not a non-zero unsigned integer"
	MessageDuplicateFields      = "Multiple values specified for the following single-valued field(s): "
	MessageEditNoFields         = "At least one field to edit must be provided"
)

// ══════════════════════════════════════════════════════════════════════════════
// PARSE ERROR
// ══════════════════════════════════════════════════════════════════════════════

// ParseError reports a user-input violation. It always carries both the
// human message and the violated command's usage text; the console renders
// the message first, then the usage.
type ParseError struct {
	// Message names the violation.
	Message string

	// Usage is the usage text of the violated command.
	Usage string
}

// NewParseError creates a ParseError.
func NewParseError(message, usage string) *ParseError {
	return &ParseError{Message: message, Usage: usage}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Message
}

// Is matches ParseError against shared.ErrInvalidInput, so callers can tell
// input violations from execution failures with errors.Is.
func (e *ParseError) Is(target error) bool {
	return target == shared.ErrInvalidInput
}

// ══════════════════════════════════════════════════════════════════════════════
// COMMAND REGISTRY
// ══════════════════════════════════════════════════════════════════════════════

// commandSpec binds a command word to its parse function and usage text.
// The usage is handed to the parse function explicitly; there is no global
// usage state.
type commandSpec struct {
	usage string
	parse func(args, usage string) (Command, error)
}

// registry is the closed command table. Lookup is case-sensitive: "Add" is
// not a command.
var registry = map[string]commandSpec{
	WordAdd:    {usage: UsageAdd, parse: parseAdd},
	WordClear:  {usage: UsageClear, parse: parseClear},
	WordDelete: {usage: UsageDelete, parse: parseDelete},
	WordEdit:   {usage: UsageEdit, parse: parseEdit},
	WordExit:   {usage: UsageExit, parse: parseExit},
	WordFind:   {usage: UsageFind, parse: parseFind},
	WordHelp:   {usage: UsageHelp, parse: parseHelp},
	WordList:   {usage: UsageList, parse: parseList},
	WordSort:   {usage: UsageSort, parse: parseSort},
}

// ParseCommand parses one input line into a typed command. The line is
// trimmed and split on the first whitespace run into a command word and an
// argument remainder; the word selects the parser.
func ParseCommand(input string) (Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, NewParseError(MessageInvalidCommandFormat, UsageHelp)
	}

	word, args := splitCommandWord(trimmed)
	spec, ok := registry[word]
	if !ok {
		return nil, NewParseError(MessageUnknownCommand, UsageHelp)
	}
	return spec.parse(args, spec.usage)
}

// splitCommandWord splits a trimmed input line into the command word and
// the argument remainder.
func splitCommandWord(input string) (word, args string) {
	i := strings.IndexFunc(input, unicode.IsSpace)
	if i < 0 {
		return input, ""
	}
	return input[:i], strings.TrimSpace(input[i:])
}

// ══════════════════════════════════════════════════════════════════════════════
// PER-COMMAND PARSERS
// ══════════════════════════════════════════════════════════════════════════════

// ─────────────────────────────────────────────────────────────────────────────
// add
// ─────────────────────────────────────────────────────────────────────────────

func parseAdd(args, usage string) (Command, error) {
	m := TokenizeArguments(args,
		PrefixName,
		PrefixPhone,
		PrefixEmail,
		PrefixAddress,
		PrefixClass,
		PrefixTag,
	)

	mandatory := []Prefix{PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixClass}
	if m.Preamble() != "" || !m.HasAll(mandatory...) {
		return nil, NewParseError(MessageInvalidCommandFormat, usage)
	}
	if dup := m.Duplicated(mandatory...); len(dup) > 0 {
		return nil, NewParseError(MessageDuplicateFields+joinPrefixes(dup), usage)
	}

	rawName, _ := m.Value(PrefixName)
	name, err := person.NewName(rawName)
	if err != nil {
		return nil, NewParseError(person.NameConstraints, usage)
	}

	rawPhone, _ := m.Value(PrefixPhone)
	phone, err := person.NewPhone(rawPhone)
	if err != nil {
		return nil, NewParseError(person.PhoneConstraints, usage)
	}

	rawEmail, _ := m.Value(PrefixEmail)
	email, err := person.NewEmail(rawEmail)
	if err != nil {
		return nil, NewParseError(person.EmailConstraints, usage)
	}

	rawAddress, _ := m.Value(PrefixAddress)
	address, err := person.NewAddress(rawAddress)
	if err != nil {
		return nil, NewParseError(person.AddressConstraints, usage)
	}

	rawClass, _ := m.Value(PrefixClass)
	class, err := person.NewStudentClass(rawClass)
	if err != nil {
		return nil, NewParseError(person.ClassConstraints, usage)
	}

	tags, err := parseTagValues(m.AllValues(PrefixTag), usage)
	if err != nil {
		return nil, err
	}

	return AddCommand{
		Name:    name.String(),
		Phone:   phone.String(),
		Email:   email.String(),
		Address: address.String(),
		Class:   class.String(),
		Tags:    tags,
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// delete
// ─────────────────────────────────────────────────────────────────────────────

func parseDelete(args, usage string) (Command, error) {
	fields := strings.Fields(args)
	if len(fields) != 1 {
		return nil, NewParseError(MessageInvalidCommandFormat, usage)
	}
	index, ok := parseOneBasedIndex(fields[0])
	if !ok {
		return nil, NewParseError(MessageInvalidIndex, usage)
	}
	return DeleteCommand{Index: index - 1}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// edit
// ─────────────────────────────────────────────────────────────────────────────

func parseEdit(args, usage string) (Command, error) {
	m := TokenizeArguments(args,
		PrefixName,
		PrefixPhone,
		PrefixEmail,
		PrefixAddress,
		PrefixClass,
		PrefixTag,
		PrefixAttendance,
		PrefixRemark,
		PrefixSubject,
	)

	if m.Preamble() == "" {
		return nil, NewParseError(MessageInvalidCommandFormat, usage)
	}
	index, ok := parseOneBasedIndex(m.Preamble())
	if !ok {
		return nil, NewParseError(MessageInvalidIndex, usage)
	}
	if dup := m.Duplicated(PrefixName, PrefixPhone, PrefixEmail, PrefixAddress, PrefixClass); len(dup) > 0 {
		return nil, NewParseError(MessageDuplicateFields+joinPrefixes(dup), usage)
	}

	descriptor, err := parseEditDescriptor(m, usage)
	if err != nil {
		return nil, err
	}
	if descriptor.IsZero() {
		return nil, NewParseError(MessageEditNoFields, usage)
	}

	return EditCommand{Index: index - 1, Descriptor: descriptor}, nil
}

// parseEditDescriptor builds the sparse edit descriptor from the supplied
// prefixes. Absent prefixes stay nil so the handler leaves those fields
// untouched.
func parseEditDescriptor(m ArgumentMap, usage string) (command.EditPersonDescriptor, error) {
	var d command.EditPersonDescriptor

	if raw, ok := m.Value(PrefixName); ok {
		name, err := person.NewName(raw)
		if err != nil {
			return d, NewParseError(person.NameConstraints, usage)
		}
		d.Name = stringPtr(name.String())
	}
	if raw, ok := m.Value(PrefixPhone); ok {
		phone, err := person.NewPhone(raw)
		if err != nil {
			return d, NewParseError(person.PhoneConstraints, usage)
		}
		d.Phone = stringPtr(phone.String())
	}
	if raw, ok := m.Value(PrefixEmail); ok {
		email, err := person.NewEmail(raw)
		if err != nil {
			return d, NewParseError(person.EmailConstraints, usage)
		}
		d.Email = stringPtr(email.String())
	}
	if raw, ok := m.Value(PrefixAddress); ok {
		address, err := person.NewAddress(raw)
		if err != nil {
			return d, NewParseError(person.AddressConstraints, usage)
		}
		d.Address = stringPtr(address.String())
	}
	if raw, ok := m.Value(PrefixClass); ok {
		class, err := person.NewStudentClass(raw)
		if err != nil {
			return d, NewParseError(person.ClassConstraints, usage)
		}
		d.Class = stringPtr(class.String())
	}

	if m.Has(PrefixTag) {
		values := m.AllValues(PrefixTag)
		if isClearRequest(values) {
			d.Tags = &[]string{}
		} else {
			tags, err := parseTagValues(values, usage)
			if err != nil {
				return d, err
			}
			d.Tags = &tags
		}
	}

	if m.Has(PrefixAttendance) {
		attendance, err := parseAttendanceValues(m.AllValues(PrefixAttendance), usage)
		if err != nil {
			return d, err
		}
		d.Attendance = attendance
	}

	if m.Has(PrefixRemark) {
		values := m.AllValues(PrefixRemark)
		if isClearRequest(values) {
			d.Remarks = &[]string{}
		} else {
			remarks, err := parseRemarkValues(values, usage)
			if err != nil {
				return d, err
			}
			d.Remarks = &remarks
		}
	}

	if m.Has(PrefixSubject) {
		grades, err := parseGradeValues(m.AllValues(PrefixSubject), usage)
		if err != nil {
			return d, err
		}
		d.Grades = grades
	}

	return d, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// find
// ─────────────────────────────────────────────────────────────────────────────

func parseFind(args, usage string) (Command, error) {
	keywords := strings.Fields(args)
	if len(keywords) == 0 {
		return nil, NewParseError(MessageInvalidCommandFormat, usage)
	}
	return FindCommand{Keywords: keywords}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// sort
// ─────────────────────────────────────────────────────────────────────────────

// Sort direction token sets, matched case-insensitively.
var (
	ascendingTokens  = map[string]bool{"asc": true, "ascending": true, "a": true}
	descendingTokens = map[string]bool{"desc": true, "descending": true, "d": true}
)

func parseSort(args, usage string) (Command, error) {
	fields := strings.Fields(args)
	if len(fields) != 1 {
		return nil, NewParseError(MessageInvalidCommandFormat, usage)
	}
	token := strings.ToLower(fields[0])
	switch {
	case ascendingTokens[token]:
		return SortCommand{Descending: false}, nil
	case descendingTokens[token]:
		return SortCommand{Descending: true}, nil
	default:
		return nil, NewParseError(MessageInvalidCommandFormat, usage)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// clear / exit / help / list
// The no-argument commands tolerate trailing arguments: "exit 3" is a
// valid exit.
// ─────────────────────────────────────────────────────────────────────────────

func parseClear(string, string) (Command, error) {
	return ClearCommand{}, nil
}

func parseExit(string, string) (Command, error) {
	return ExitCommand{}, nil
}

func parseHelp(string, string) (Command, error) {
	return HelpCommand{}, nil
}

func parseList(string, string) (Command, error) {
	return ListCommand{}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// VALUE PARSERS
// ══════════════════════════════════════════════════════════════════════════════

// parseOneBasedIndex parses a display index token: digits only, value >= 1.
func parseOneBasedIndex(token string) (int, bool) {
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// parseTagValues validates raw tag values. Input order is preserved; the
// domain collapses duplicates later.
func parseTagValues(raw []string, usage string) ([]string, error) {
	tags := make([]string, 0, len(raw))
	for _, v := range raw {
		tag, err := person.NewTag(v)
		if err != nil {
			return nil, NewParseError(person.TagConstraints, usage)
		}
		tags = append(tags, tag.String())
	}
	return tags, nil
}

// parseRemarkValues validates raw remark values.
func parseRemarkValues(raw []string, usage string) ([]string, error) {
	remarks := make([]string, 0, len(raw))
	for _, v := range raw {
		remark, err := person.NewRemark(v)
		if err != nil {
			return nil, NewParseError(person.RemarkConstraints, usage)
		}
		remarks = append(remarks, remark.String())
	}
	return remarks, nil
}

// parseAttendanceValues parses att/SESSION=0|1 entries into a session map.
// A session given twice keeps the last mark.
func parseAttendanceValues(raw []string, usage string) (map[string]int, error) {
	entries := make(map[string]int, len(raw))
	for _, v := range raw {
		sessionPart, markPart, found := strings.Cut(v, "=")
		if !found {
			return nil, NewParseError(person.AttendanceConstraints, usage)
		}
		session, err := person.NewSessionID(strings.TrimSpace(sessionPart))
		if err != nil {
			return nil, NewParseError(person.AttendanceConstraints, usage)
		}
		mark := strings.TrimSpace(markPart)
		if mark != "0" && mark != "1" {
			return nil, NewParseError(person.AttendanceConstraints, usage)
		}
		attended := 0
		if mark == "1" {
			attended = 1
		}
		entries[session.String()] = attended
	}
	return entries, nil
}

// parseGradeValues parses s/SUBJECT:COMPONENT=SCORE/MAX entries.
func parseGradeValues(raw []string, usage string) ([]command.SubjectGradeInput, error) {
	grades := make([]command.SubjectGradeInput, 0, len(raw))
	for _, v := range raw {
		grade, ok := parseGradeEntry(v)
		if !ok {
			return nil, NewParseError(person.SubjectConstraints, usage)
		}
		grades = append(grades, grade)
	}
	return grades, nil
}

// parseGradeEntry parses one SUBJECT:COMPONENT=SCORE/MAX entry.
func parseGradeEntry(v string) (command.SubjectGradeInput, bool) {
	var zero command.SubjectGradeInput

	subjectPart, rest, found := strings.Cut(v, ":")
	if !found {
		return zero, false
	}
	componentPart, fractionPart, found := strings.Cut(rest, "=")
	if !found {
		return zero, false
	}
	scorePart, maxPart, found := strings.Cut(fractionPart, "/")
	if !found {
		return zero, false
	}

	subject, err := person.NewSubjectName(subjectPart)
	if err != nil {
		return zero, false
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(scorePart), 64)
	if err != nil {
		return zero, false
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(maxPart), 64)
	if err != nil {
		return zero, false
	}
	component, err := person.NewGradedComponent(strings.TrimSpace(componentPart), score, max)
	if err != nil {
		return zero, false
	}

	return command.SubjectGradeInput{
		Subject:   subject.String(),
		Component: component.Label.String(),
		Score:     score,
		Max:       max,
	}, true
}

// isClearRequest reports whether a collection prefix was given as a single
// bare occurrence ("t/" or "rem/"), which means "clear the whole set".
func isClearRequest(values []string) bool {
	return len(values) == 1 && values[0] == ""
}

// joinPrefixes renders prefixes for the duplicate-fields message.
func joinPrefixes(prefixes []Prefix) string {
	words := make([]string, len(prefixes))
	for i, p := range prefixes {
		words[i] = p.String()
	}
	return strings.Join(words, " ")
}

// stringPtr returns a pointer to s, for descriptor fields.
func stringPtr(s string) *string {
	return &s
}
