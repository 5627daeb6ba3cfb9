package person

import (
	"regexp"
	"strings"

	"github.com/alem-hub/watson/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS: ОСНОВНЫЕ ПОЛЯ ЗАПИСИ
// Каждое поле - отдельный тип с валидацией в конструкторе.
// Тексты ограничений показываются пользователю при ошибке ввода.
// ══════════════════════════════════════════════════════════════════════════════

// Тексты ограничений полей. Консольный слой печатает их при отказе валидации.
const (
	NameConstraints    = "Names should only contain alphanumeric characters and spaces, and it should not be blank"
	PhoneConstraints   = "Phone numbers should only contain numbers, and it should be at least 3 digits long"
	EmailConstraints   = "Emails should be of the format local-part@domain and adhere to the following constraints:\n" +
		"1. The local-part should only contain alphanumeric characters and these special characters, excluding the parentheses, (+_.-). The local-part may not start or end with any special characters.\n" +
		"2. This is followed by a '@' and then a domain name. The domain name is made up of domain labels separated by periods.\n" +
		"The domain name must:\n" +
		"    - end with a domain label at least 2 characters long\n" +
		"    - have each domain label start and end with alphanumeric characters\n" +
		"    - have each domain label consist of alphanumeric characters, separated only by hyphens, if any."
	AddressConstraints = "Addresses can take any values, and it should not be blank"
	ClassConstraints   = "Classes can take any values, and it should not be blank"
	TagConstraints     = "Tags names should be alphanumeric"
	RemarkConstraints  = "Remarks can take any values, and it should not be blank"
)

var (
	nameRegex  = regexp.MustCompile(`^[[:alnum:]][[:alnum:] ]*$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{3,}$`)
	emailRegex = regexp.MustCompile(
		`^[a-zA-Z0-9]([+_.\-]?[a-zA-Z0-9])*@` +
			`([a-zA-Z0-9]([a-zA-Z0-9\-]*[a-zA-Z0-9])?\.)*` +
			`[a-zA-Z0-9][a-zA-Z0-9\-]*[a-zA-Z0-9]$`)
	blankStartRegex = regexp.MustCompile(`^[^\s].*`)
	tagRegex        = regexp.MustCompile(`^[[:alnum:]]+$`)
)

// ─────────────────────────────────────────────────────────────────────────────
// Name
// ─────────────────────────────────────────────────────────────────────────────

// Name представляет имя студента. Имя - это идентичность записи:
// два Person с одинаковым Name считаются одной и той же записью.
type Name string

// IsValid проверяет, что имя состоит из алфавитно-цифровых слов и пробелов.
func (n Name) IsValid() bool {
	return nameRegex.MatchString(string(n))
}

// String возвращает строковое представление имени.
func (n Name) String() string {
	return string(n)
}

// EqualsIgnoreCase сравнивает имена без учёта регистра.
func (n Name) EqualsIgnoreCase(other Name) bool {
	return strings.EqualFold(string(n), string(other))
}

// NewName создаёт Name с валидацией. Окружающие пробелы обрезаются.
func NewName(value string) (Name, error) {
	n := Name(strings.TrimSpace(value))
	if !n.IsValid() {
		return "", shared.ErrInvalidName
	}
	return n, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Phone
// ─────────────────────────────────────────────────────────────────────────────

// Phone представляет номер телефона: только цифры, минимум три.
type Phone string

// IsValid проверяет формат номера.
func (p Phone) IsValid() bool {
	return phoneRegex.MatchString(string(p))
}

// String возвращает строковое представление номера.
func (p Phone) String() string {
	return string(p)
}

// NewPhone создаёт Phone с валидацией.
func NewPhone(value string) (Phone, error) {
	p := Phone(strings.TrimSpace(value))
	if !p.IsValid() {
		return "", shared.ErrInvalidPhone
	}
	return p, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Email
// ─────────────────────────────────────────────────────────────────────────────

// Email представляет адрес электронной почты вида local-part@domain.
type Email string

// IsValid проверяет структуру адреса: локальная часть из алфавитно-цифровых
// символов со спецсимволами +_.- между ними, домен из меток через точку,
// последняя метка не короче двух символов.
func (e Email) IsValid() bool {
	return emailRegex.MatchString(string(e))
}

// String возвращает строковое представление адреса.
func (e Email) String() string {
	return string(e)
}

// NewEmail создаёт Email с валидацией.
func NewEmail(value string) (Email, error) {
	e := Email(strings.TrimSpace(value))
	if !e.IsValid() {
		return "", shared.ErrInvalidEmail
	}
	return e, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Address
// ─────────────────────────────────────────────────────────────────────────────

// Address представляет почтовый адрес: произвольный непустой текст.
type Address string

// IsValid проверяет, что адрес не пуст и не начинается с пробела.
func (a Address) IsValid() bool {
	return blankStartRegex.MatchString(string(a))
}

// String возвращает строковое представление адреса.
func (a Address) String() string {
	return string(a)
}

// NewAddress создаёт Address с валидацией.
func NewAddress(value string) (Address, error) {
	a := Address(strings.TrimSpace(value))
	if !a.IsValid() {
		return "", shared.ErrInvalidAddress
	}
	return a, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// StudentClass
// ─────────────────────────────────────────────────────────────────────────────

// StudentClass представляет учебный класс студента (например, "4A").
type StudentClass string

// IsValid проверяет, что обозначение класса не пусто.
func (c StudentClass) IsValid() bool {
	return blankStartRegex.MatchString(string(c))
}

// String возвращает строковое представление класса.
func (c StudentClass) String() string {
	return string(c)
}

// NewStudentClass создаёт StudentClass с валидацией.
func NewStudentClass(value string) (StudentClass, error) {
	c := StudentClass(strings.TrimSpace(value))
	if !c.IsValid() {
		return "", shared.ErrInvalidClass
	}
	return c, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Tag
// ─────────────────────────────────────────────────────────────────────────────

// Tag представляет метку записи: одно алфавитно-цифровое слово.
// Метки образуют неупорядоченное множество без дубликатов.
type Tag string

// IsValid проверяет формат метки.
func (t Tag) IsValid() bool {
	return tagRegex.MatchString(string(t))
}

// String возвращает строковое представление метки.
func (t Tag) String() string {
	return string(t)
}

// NewTag создаёт Tag с валидацией.
func NewTag(value string) (Tag, error) {
	t := Tag(strings.TrimSpace(value))
	if !t.IsValid() {
		return "", shared.ErrInvalidTag
	}
	return t, nil
}

// NewTagSet создаёт множество меток из сырых значений.
// Дубликаты схлопываются; первая невалидная метка прерывает разбор.
func NewTagSet(values []string) ([]Tag, error) {
	seen := make(map[Tag]struct{}, len(values))
	tags := make([]Tag, 0, len(values))
	for _, v := range values {
		t, err := NewTag(v)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Remark
// ─────────────────────────────────────────────────────────────────────────────

// Remark представляет произвольную текстовую заметку о студенте.
type Remark string

// IsValid проверяет, что заметка не пуста.
func (r Remark) IsValid() bool {
	return blankStartRegex.MatchString(string(r))
}

// String возвращает строковое представление заметки.
func (r Remark) String() string {
	return string(r)
}

// NewRemark создаёт Remark с валидацией.
func NewRemark(value string) (Remark, error) {
	r := Remark(strings.TrimSpace(value))
	if !r.IsValid() {
		return "", shared.ErrInvalidRemark
	}
	return r, nil
}

// NewRemarkSet создаёт набор заметок из сырых значений с сохранением
// порядка ввода. Дубликаты схлопываются.
func NewRemarkSet(values []string) ([]Remark, error) {
	seen := make(map[Remark]struct{}, len(values))
	remarks := make([]Remark, 0, len(values))
	for _, v := range values {
		r, err := NewRemark(v)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		remarks = append(remarks, r)
	}
	return remarks, nil
}
