// Package postgres implements the PostgreSQL roster backend for watson.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PERSON REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// personColumns is the SELECT list every scan helper expects, in order.
const personColumns = `id, name, phone, email, address, class, tags, attendance, remarks, subjects`

// PersonRepository implements person.Repository for PostgreSQL. The
// position column carries the storage order; every read lists by it.
type PersonRepository struct {
	conn *Connection
}

// NewPersonRepository creates a new PersonRepository.
func NewPersonRepository(conn *Connection) *PersonRepository {
	return &PersonRepository{conn: conn}
}

// ─────────────────────────────────────────────────────────────────────────────
// CRUD Operations
// ─────────────────────────────────────────────────────────────────────────────

// Create inserts a new record at the end of the roster.
func (r *PersonRepository) Create(ctx context.Context, p *person.Person) error {
	query := `
		INSERT INTO persons (
			id, name, phone, email, address, class,
			tags, attendance, remarks, subjects, position
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM persons)
		)
	`

	row, err := encodeRow(p)
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(ctx, query,
		row.ID,
		row.Name,
		row.Phone,
		row.Email,
		row.Address,
		row.Class,
		row.Tags,
		row.Attendance,
		row.Remarks,
		row.Subjects,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrDuplicatePerson
		}
		return fmt.Errorf("failed to create person: %w", err)
	}

	return nil
}

// GetByName returns the record with the exact name.
func (r *PersonRepository) GetByName(ctx context.Context, name person.Name) (*person.Person, error) {
	query := fmt.Sprintf(`SELECT %s FROM persons WHERE name = $1`, personColumns)

	row := r.conn.QueryRow(ctx, query, name.String())
	return r.scanPerson(row)
}

// Update replaces the record with the same ID. The position column is
// untouched, so an edited record keeps its place in listings.
func (r *PersonRepository) Update(ctx context.Context, p *person.Person) error {
	query := `
		UPDATE persons SET
			name = $2,
			phone = $3,
			email = $4,
			address = $5,
			class = $6,
			tags = $7,
			attendance = $8,
			remarks = $9,
			subjects = $10,
			updated_at = NOW()
		WHERE id = $1
	`

	row, err := encodeRow(p)
	if err != nil {
		return err
	}

	tag, err := r.conn.Exec(ctx, query,
		row.ID,
		row.Name,
		row.Phone,
		row.Email,
		row.Address,
		row.Class,
		row.Tags,
		row.Attendance,
		row.Remarks,
		row.Subjects,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrDuplicatePerson
		}
		return fmt.Errorf("failed to update person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrPersonNotFound
	}

	return nil
}

// Delete removes the record with the exact name. Positions of the
// remaining records keep their relative order; gaps are harmless.
func (r *PersonRepository) Delete(ctx context.Context, name person.Name) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM persons WHERE name = $1`, name.String())
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrPersonNotFound
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Bulk Operations
// ─────────────────────────────────────────────────────────────────────────────

// GetAll returns records in storage order.
func (r *PersonRepository) GetAll(ctx context.Context, opts person.ListOptions) ([]*person.Person, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM persons ORDER BY position, created_at", personColumns)

	args := make([]interface{}, 0, 2)
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.conn.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query persons: %w", err)
	}
	defer rows.Close()

	return r.scanPersons(rows)
}

// Count returns the roster size.
func (r *PersonRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM persons`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count persons: %w", err)
	}

	return count, nil
}

// Clear removes every record and returns how many were removed.
func (r *PersonRepository) Clear(ctx context.Context) (int, error) {
	tag, err := r.conn.Exec(ctx, `DELETE FROM persons`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear roster: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// SortByGrade durably reorders the roster by the sum of subject
// percentages. The whole reorder happens in one transaction: the grade
// is computed by the domain, positions are rewritten in a single batch
// round trip.
func (r *PersonRepository) SortByGrade(ctx context.Context, descending bool) error {
	query := fmt.Sprintf("SELECT %s FROM persons ORDER BY position, created_at", personColumns)

	return r.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to query persons for sorting: %w", err)
		}

		persons, err := r.scanPersons(rows)
		if err != nil {
			return err
		}

		sort.SliceStable(persons, func(i, j int) bool {
			if descending {
				return persons[i].TotalGrade() > persons[j].TotalGrade()
			}
			return persons[i].TotalGrade() < persons[j].TotalGrade()
		})

		batch := &pgx.Batch{}
		for i, p := range persons {
			batch.Queue(
				`UPDATE persons SET position = $1, updated_at = NOW() WHERE id = $2`,
				i, p.ID(),
			)
		}

		results := tx.SendBatch(ctx, batch)
		for range persons {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return fmt.Errorf("failed to update position: %w", err)
			}
		}

		return results.Close()
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Search & Existence
// ─────────────────────────────────────────────────────────────────────────────

// Search returns records whose name contains at least one of the
// keywords as a whole word, case-insensitively, in storage order.
func (r *PersonRepository) Search(ctx context.Context, keywords []string) ([]*person.Person, error) {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM persons
		WHERE EXISTS (
			SELECT 1
			FROM unnest(regexp_split_to_array(lower(name), ' +')) AS word
			WHERE word = ANY($1)
		)
		ORDER BY position, created_at
	`, personColumns)

	rows, err := r.conn.Query(ctx, query, lowered)
	if err != nil {
		return nil, fmt.Errorf("failed to search persons: %w", err)
	}
	defer rows.Close()

	return r.scanPersons(rows)
}

// Exists reports whether a record with the exact name is stored.
func (r *PersonRepository) Exists(ctx context.Context, name person.Name) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM persons WHERE name = $1)`,
		name.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check person existence: %w", err)
	}

	return exists, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Row Mapping
// ─────────────────────────────────────────────────────────────────────────────

// personRow mirrors the persons table columns the repository reads and
// writes. JSONB columns hold raw document bytes.
type personRow struct {
	ID         string
	Name       string
	Phone      string
	Email      string
	Address    string
	Class      string
	Tags       []byte
	Attendance []byte
	Remarks    []byte
	Subjects   []byte
}

// jsonb column shapes for the collection-valued fields.
type subjectColumn struct {
	Name       string            `json:"name"`
	Components []componentColumn `json:"components"`
}

type componentColumn struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
	Max   float64 `json:"max"`
}

// encodeRow converts a domain record into table columns.
func encodeRow(p *person.Person) (personRow, error) {
	tags := make([]string, 0, len(p.Tags()))
	for _, t := range p.Tags() {
		tags = append(tags, t.String())
	}

	remarks := make([]string, 0, len(p.Remarks()))
	for _, rem := range p.Remarks() {
		remarks = append(remarks, rem.String())
	}

	sessions := p.Attendance().Sessions()
	attendance := make(map[string]int, len(sessions))
	for id, mark := range sessions {
		attendance[id.String()] = mark
	}

	subjects := make([]subjectColumn, 0, p.Subjects().Len())
	for _, s := range p.Subjects().Subjects() {
		sc := subjectColumn{Name: s.Name().String()}
		for _, c := range s.Components() {
			sc.Components = append(sc.Components, componentColumn{
				Label: c.Label.String(),
				Score: c.Score,
				Max:   c.Max,
			})
		}
		subjects = append(subjects, sc)
	}

	row := personRow{
		ID:      p.ID(),
		Name:    p.Name().String(),
		Phone:   p.Phone().String(),
		Email:   p.Email().String(),
		Address: p.Address().String(),
		Class:   p.Class().String(),
	}

	var err error
	if row.Tags, err = json.Marshal(tags); err != nil {
		return personRow{}, fmt.Errorf("failed to marshal tags: %w", err)
	}
	if row.Attendance, err = json.Marshal(attendance); err != nil {
		return personRow{}, fmt.Errorf("failed to marshal attendance: %w", err)
	}
	if row.Remarks, err = json.Marshal(remarks); err != nil {
		return personRow{}, fmt.Errorf("failed to marshal remarks: %w", err)
	}
	if row.Subjects, err = json.Marshal(subjects); err != nil {
		return personRow{}, fmt.Errorf("failed to marshal subjects: %w", err)
	}

	return row, nil
}

// buildPerson rebuilds a domain record from table columns. Every field
// goes back through domain validation, so rows edited by hand cannot
// smuggle invalid values into the roster.
func buildPerson(row personRow) (*person.Person, error) {
	var rawTags []string
	if err := json.Unmarshal(row.Tags, &rawTags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}

	var rawAttendance map[string]int
	if err := json.Unmarshal(row.Attendance, &rawAttendance); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attendance: %w", err)
	}

	var rawRemarks []string
	if err := json.Unmarshal(row.Remarks, &rawRemarks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal remarks: %w", err)
	}

	var rawSubjects []subjectColumn
	if err := json.Unmarshal(row.Subjects, &rawSubjects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subjects: %w", err)
	}

	attendance, err := person.NewAttendanceFromMap(rawAttendance)
	if err != nil {
		return nil, fmt.Errorf("record %q: %w", row.Name, err)
	}

	tags := make([]person.Tag, 0, len(rawTags))
	for _, raw := range rawTags {
		tags = append(tags, person.Tag(raw))
	}

	remarks := make([]person.Remark, 0, len(rawRemarks))
	for _, raw := range rawRemarks {
		remarks = append(remarks, person.Remark(raw))
	}

	subjects := person.NewSubjectSet()
	for _, sc := range rawSubjects {
		for _, cc := range sc.Components {
			component, err := person.NewGradedComponent(cc.Label, cc.Score, cc.Max)
			if err != nil {
				return nil, fmt.Errorf("record %q, subject %q: %w", row.Name, sc.Name, err)
			}
			subjects = subjects.WithGrade(person.SubjectGrade{
				Subject:   person.SubjectName(sc.Name),
				Component: component,
			})
		}
	}

	p, err := person.NewPerson(person.NewPersonParams{
		ID:         row.ID,
		Name:       person.Name(row.Name),
		Phone:      person.Phone(row.Phone),
		Email:      person.Email(row.Email),
		Address:    person.Address(row.Address),
		Class:      person.StudentClass(row.Class),
		Tags:       tags,
		Attendance: attendance,
		Remarks:    remarks,
		Subjects:   subjects,
	})
	if err != nil {
		return nil, fmt.Errorf("record %q: %w", row.Name, err)
	}

	return p, nil
}

// scanPerson scans a single record.
func (r *PersonRepository) scanPerson(row pgx.Row) (*person.Person, error) {
	var pr personRow

	err := row.Scan(
		&pr.ID,
		&pr.Name,
		&pr.Phone,
		&pr.Email,
		&pr.Address,
		&pr.Class,
		&pr.Tags,
		&pr.Attendance,
		&pr.Remarks,
		&pr.Subjects,
	)

	if IsNoRows(err) {
		return nil, shared.ErrPersonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan person: %w", err)
	}

	return buildPerson(pr)
}

// scanPersons scans multiple records from rows.
func (r *PersonRepository) scanPersons(rows pgx.Rows) ([]*person.Person, error) {
	persons := make([]*person.Person, 0)

	for rows.Next() {
		var pr personRow

		err := rows.Scan(
			&pr.ID,
			&pr.Name,
			&pr.Phone,
			&pr.Email,
			&pr.Address,
			&pr.Class,
			&pr.Tags,
			&pr.Attendance,
			&pr.Remarks,
			&pr.Subjects,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}

		p, err := buildPerson(pr)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}

	return persons, rows.Err()
}
