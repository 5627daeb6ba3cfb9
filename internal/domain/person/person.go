package person

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alem-hub/watson/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: PERSON
// Контактная запись студента. Все поля приватны, запись неизменяема:
// любое изменение - это сборка новой записи через NewPerson.
// ══════════════════════════════════════════════════════════════════════════════

// Person - центральная сущность watson: контактная запись студента.
type Person struct {
	// id - инфраструктурный идентификатор (UUID). Не участвует в
	// Equals и не показывается пользователю; доменная идентичность
	// записи - это имя.
	id string

	name       Name
	phone      Phone
	email      Email
	address    Address
	class      StudentClass
	tags       []Tag
	attendance Attendance
	remarks    []Remark
	subjects   SubjectSet
}

// NewPersonParams содержит параметры для создания записи.
// Коллекции опциональны: nil означает пустой контейнер.
type NewPersonParams struct {
	ID         string
	Name       Name
	Phone      Phone
	Email      Email
	Address    Address
	Class      StudentClass
	Tags       []Tag
	Attendance Attendance
	Remarks    []Remark
	Subjects   SubjectSet
}

// NewPerson создаёт запись с повторной валидацией всех полей.
// Запись не создаётся частично: первая невалидная величина прерывает сборку.
func NewPerson(params NewPersonParams) (*Person, error) {
	if strings.TrimSpace(params.ID) == "" {
		return nil, shared.NewDomainError("person", "New", shared.ErrInvalidID, "person id is required")
	}
	if !params.Name.IsValid() {
		return nil, shared.ErrInvalidName
	}
	if !params.Phone.IsValid() {
		return nil, shared.ErrInvalidPhone
	}
	if !params.Email.IsValid() {
		return nil, shared.ErrInvalidEmail
	}
	if !params.Address.IsValid() {
		return nil, shared.ErrInvalidAddress
	}
	if !params.Class.IsValid() {
		return nil, shared.ErrInvalidClass
	}

	tags := make([]Tag, 0, len(params.Tags))
	seenTags := make(map[Tag]struct{}, len(params.Tags))
	for _, t := range params.Tags {
		if !t.IsValid() {
			return nil, shared.ErrInvalidTag
		}
		if _, ok := seenTags[t]; ok {
			continue
		}
		seenTags[t] = struct{}{}
		tags = append(tags, t)
	}

	remarks := make([]Remark, 0, len(params.Remarks))
	seenRemarks := make(map[Remark]struct{}, len(params.Remarks))
	for _, r := range params.Remarks {
		if !r.IsValid() {
			return nil, shared.ErrInvalidRemark
		}
		if _, ok := seenRemarks[r]; ok {
			continue
		}
		seenRemarks[r] = struct{}{}
		remarks = append(remarks, r)
	}

	return &Person{
		id:         params.ID,
		name:       params.Name,
		phone:      params.Phone,
		email:      params.Email,
		address:    params.Address,
		class:      params.Class,
		tags:       tags,
		attendance: params.Attendance,
		remarks:    remarks,
		subjects:   params.Subjects,
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Accessors
// Коллекции возвращаются копиями: внутреннее состояние записи нельзя
// изменить через возвращённое значение.
// ─────────────────────────────────────────────────────────────────────────────

// ID возвращает инфраструктурный идентификатор записи.
func (p *Person) ID() string { return p.id }

// Name возвращает имя студента.
func (p *Person) Name() Name { return p.name }

// Phone возвращает номер телефона.
func (p *Person) Phone() Phone { return p.phone }

// Email возвращает адрес электронной почты.
func (p *Person) Email() Email { return p.email }

// Address возвращает почтовый адрес.
func (p *Person) Address() Address { return p.address }

// Class возвращает учебный класс.
func (p *Person) Class() StudentClass { return p.class }

// Tags возвращает копию меток в порядке добавления.
func (p *Person) Tags() []Tag {
	out := make([]Tag, len(p.tags))
	copy(out, p.tags)
	return out
}

// SortedTags возвращает копию меток в лексикографическом порядке.
func (p *Person) SortedTags() []Tag {
	out := p.Tags()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Attendance возвращает посещаемость (неизменяемое значение).
func (p *Person) Attendance() Attendance { return p.attendance }

// Remarks возвращает копию заметок в порядке добавления.
func (p *Person) Remarks() []Remark {
	out := make([]Remark, len(p.remarks))
	copy(out, p.remarks)
	return out
}

// Subjects возвращает набор предметов (неизменяемое значение).
func (p *Person) Subjects() SubjectSet { return p.subjects }

// ─────────────────────────────────────────────────────────────────────────────
// Comparisons
// ─────────────────────────────────────────────────────────────────────────────

// IsSamePerson - слабая идентичность: записи считаются одной и той же,
// если имена совпадают точно. Используется для поиска дубликатов.
func (p *Person) IsSamePerson(other *Person) bool {
	if other == nil {
		return false
	}
	if p == other {
		return true
	}
	return p.name == other.name
}

// Equals - полное структурное равенство по всем видимым полям:
// имя, телефон, почта, адрес, класс, метки, посещаемость, заметки
// и предметы. Инфраструктурный ID не участвует.
func (p *Person) Equals(other *Person) bool {
	if other == nil {
		return false
	}
	if p == other {
		return true
	}
	if p.name != other.name ||
		p.phone != other.phone ||
		p.email != other.email ||
		p.address != other.address ||
		p.class != other.class {
		return false
	}
	if !tagSetsEqual(p.tags, other.tags) {
		return false
	}
	if !p.attendance.Equals(other.attendance) {
		return false
	}
	if !remarkSetsEqual(p.remarks, other.remarks) {
		return false
	}
	return p.subjects.Equals(other.subjects)
}

// TotalGrade возвращает сумму итоговых процентов всех предметов записи.
func (p *Person) TotalGrade() float64 {
	return p.subjects.TotalGrade()
}

// Compare задаёт порядок сортировки: по возрастанию суммы итоговых
// процентов предметов. Запись без предметов даёт вклад 0.0.
// Возвращает -1, 0 или 1; никогда не паникует.
func (p *Person) Compare(other *Person) int {
	if other == nil {
		return 1
	}
	left, right := p.TotalGrade(), other.TotalGrade()
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	default:
		return 0
	}
}

// tagSetsEqual сравнивает метки как множества, без учёта порядка.
func tagSetsEqual(a, b []Tag) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[Tag]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	for _, t := range b {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}

// remarkSetsEqual сравнивает заметки как множества, без учёта порядка.
func remarkSetsEqual(a, b []Remark) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[Remark]struct{}, len(a))
	for _, r := range a {
		set[r] = struct{}{}
	}
	for _, r := range b {
		if _, ok := set[r]; !ok {
			return false
		}
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Rendering
// ─────────────────────────────────────────────────────────────────────────────

// String возвращает карточку записи одной строкой:
//
//	Alice Tan; Phone: 91234567; Email: alice@example.com; Address: ...;
//	Class: 4A; Attendance: 2/3; Remarks: ...; Subjects: ...; Tags: [friends]
func (p *Person) String() string {
	var sb strings.Builder

	sb.WriteString(p.name.String())
	sb.WriteString("; Phone: ")
	sb.WriteString(p.phone.String())
	sb.WriteString("; Email: ")
	sb.WriteString(p.email.String())
	sb.WriteString("; Address: ")
	sb.WriteString(p.address.String())
	sb.WriteString("; Class: ")
	sb.WriteString(p.class.String())
	sb.WriteString("; Attendance: ")
	sb.WriteString(p.attendance.String())

	sb.WriteString("; Remarks: ")
	remarkParts := make([]string, 0, len(p.remarks))
	for _, r := range p.remarks {
		remarkParts = append(remarkParts, r.String())
	}
	sb.WriteString(strings.Join(remarkParts, ", "))

	sb.WriteString("; Subjects: ")
	sb.WriteString(p.subjects.String())

	sb.WriteString("; Tags: ")
	for _, t := range p.SortedTags() {
		fmt.Fprintf(&sb, "[%s]", t)
	}

	return sb.String()
}

// Clone создаёт глубокую копию записи.
func (p *Person) Clone() *Person {
	if p == nil {
		return nil
	}

	clone := *p
	clone.tags = make([]Tag, len(p.tags))
	copy(clone.tags, p.tags)
	clone.remarks = make([]Remark, len(p.remarks))
	copy(clone.remarks, p.remarks)
	// Attendance и SubjectSet неизменяемы и в копировании не нуждаются.
	return &clone
}
