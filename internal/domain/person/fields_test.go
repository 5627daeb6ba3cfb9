package person

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alem-hub/watson/internal/domain/shared"
)

func TestNewName(t *testing.T) {
	valid := []string{"Alice", "Alice Tan", "alice tan 2", "8Ball"}
	for _, v := range valid {
		name, err := NewName(v)
		assert.NoError(t, err, v)
		assert.Equal(t, v, name.String())
	}

	invalid := []string{"", "   ", "Alice*", "-dashes", "питер", "a@home"}
	for _, v := range invalid {
		_, err := NewName(v)
		assert.ErrorIs(t, err, shared.ErrInvalidName, v)
	}
}

func TestNewName_TrimsWhitespace(t *testing.T) {
	name, err := NewName("  Alice Tan  ")
	assert.NoError(t, err)
	assert.Equal(t, "Alice Tan", name.String())
}

func TestNewPhone(t *testing.T) {
	valid := []string{"911", "91234567", "124293842033123"}
	for _, v := range valid {
		phone, err := NewPhone(v)
		assert.NoError(t, err, v)
		assert.Equal(t, v, phone.String())
	}

	invalid := []string{"", "91", "phone", "9011p041", "9312 1534"}
	for _, v := range invalid {
		_, err := NewPhone(v)
		assert.ErrorIs(t, err, shared.ErrInvalidPhone, v)
	}
}

func TestNewEmail(t *testing.T) {
	valid := []string{
		"PeterJack_1190@example.com",
		"a@bc",
		"test@localhost.org",
		"peter_jack@very-very-very-long-example.com",
		"if.you.dream.it_you.can.do.it@example.com",
	}
	for _, v := range valid {
		email, err := NewEmail(v)
		assert.NoError(t, err, v)
		assert.Equal(t, v, email.String())
	}

	invalid := []string{
		"",
		"@example.com",          // missing local part
		"peterjackexample.com",  // missing '@'
		"peterjack@",            // missing domain
		"peterjack@-",           // invalid domain
		"peter jack@example.com",
		"peterjack@example.c",   // final label too short
		".peterjack@example.com",
		"peterjack.@example.com",
		"peterjack@example.com-",
	}
	for _, v := range invalid {
		_, err := NewEmail(v)
		assert.ErrorIs(t, err, shared.ErrInvalidEmail, v)
	}
}

func TestNewAddress(t *testing.T) {
	addr, err := NewAddress("Blk 456, Den Road, #01-355")
	assert.NoError(t, err)
	assert.Equal(t, "Blk 456, Den Road, #01-355", addr.String())

	_, err = NewAddress("   ")
	assert.ErrorIs(t, err, shared.ErrInvalidAddress)
}

func TestNewStudentClass(t *testing.T) {
	class, err := NewStudentClass("4A")
	assert.NoError(t, err)
	assert.Equal(t, "4A", class.String())

	_, err = NewStudentClass("")
	assert.ErrorIs(t, err, shared.ErrInvalidClass)
}

func TestNewTag(t *testing.T) {
	tag, err := NewTag("friends")
	assert.NoError(t, err)
	assert.Equal(t, "friends", tag.String())

	for _, v := range []string{"", "owes money", "hash#tag"} {
		_, err := NewTag(v)
		assert.ErrorIs(t, err, shared.ErrInvalidTag, v)
	}
}

func TestNewTagSet_CollapsesDuplicates(t *testing.T) {
	tags, err := NewTagSet([]string{"friends", "colleagues", "friends"})
	assert.NoError(t, err)
	assert.Equal(t, []Tag{"friends", "colleagues"}, tags)
}

func TestNewRemarkSet(t *testing.T) {
	remarks, err := NewRemarkSet([]string{"needs reading support", "fast learner"})
	assert.NoError(t, err)
	assert.Len(t, remarks, 2)

	_, err = NewRemarkSet([]string{"ok", "  "})
	assert.ErrorIs(t, err, shared.ErrInvalidRemark)
}
