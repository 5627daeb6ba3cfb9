package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeArguments_PreambleOnly(t *testing.T) {
	m := TokenizeArguments("  1  ", PrefixName, PrefixPhone)

	assert.Equal(t, "1", m.Preamble())
	assert.False(t, m.Has(PrefixName))
	assert.False(t, m.Has(PrefixPhone))
}

func TestTokenizeArguments_SplitsPrefixedValues(t *testing.T) {
	m := TokenizeArguments("n/John Doe p/98765432 e/johnd@example.com",
		PrefixName, PrefixPhone, PrefixEmail)

	assert.Empty(t, m.Preamble())

	name, ok := m.Value(PrefixName)
	require.True(t, ok)
	assert.Equal(t, "John Doe", name)

	phone, ok := m.Value(PrefixPhone)
	require.True(t, ok)
	assert.Equal(t, "98765432", phone)

	email, ok := m.Value(PrefixEmail)
	require.True(t, ok)
	assert.Equal(t, "johnd@example.com", email)
}

func TestTokenizeArguments_CapturesPreambleBeforeFirstPrefix(t *testing.T) {
	m := TokenizeArguments("2 p/91234567", PrefixPhone)

	assert.Equal(t, "2", m.Preamble())
	phone, ok := m.Value(PrefixPhone)
	require.True(t, ok)
	assert.Equal(t, "91234567", phone)
}

func TestTokenizeArguments_CollectsRepeatedPrefixInOrder(t *testing.T) {
	m := TokenizeArguments("t/friends t/owesMoney t/colleagues", PrefixTag)

	assert.Equal(t, []string{"friends", "owesMoney", "colleagues"}, m.AllValues(PrefixTag))
}

func TestTokenizeArguments_ValueReturnsLastOccurrence(t *testing.T) {
	m := TokenizeArguments("p/111 p/222", PrefixPhone)

	phone, ok := m.Value(PrefixPhone)
	require.True(t, ok)
	assert.Equal(t, "222", phone)
	assert.Equal(t, []Prefix{PrefixPhone}, m.Duplicated(PrefixPhone))
}

// A slash inside a value must not open a new field: grade entries carry
// SCORE/MAX and addresses may contain slashes.
func TestTokenizeArguments_SlashInsideValueStaysInValue(t *testing.T) {
	m := TokenizeArguments("a/Blk 30/2 Aljunied s/Math:exam=45.5/60",
		PrefixAddress, PrefixSubject)

	address, ok := m.Value(PrefixAddress)
	require.True(t, ok)
	assert.Equal(t, "Blk 30/2 Aljunied", address)

	grade, ok := m.Value(PrefixSubject)
	require.True(t, ok)
	assert.Equal(t, "Math:exam=45.5/60", grade)
}

// "att/" shares its first letter with "a/" and contains "t": the longest
// registered prefix must win, and letters inside a token never match.
func TestTokenizeArguments_LongestPrefixWins(t *testing.T) {
	m := TokenizeArguments("a/Clementi att/m1=1 t/friends",
		PrefixAddress, PrefixAttendance, PrefixTag)

	address, ok := m.Value(PrefixAddress)
	require.True(t, ok)
	assert.Equal(t, "Clementi", address)

	attendance, ok := m.Value(PrefixAttendance)
	require.True(t, ok)
	assert.Equal(t, "m1=1", attendance)

	tag, ok := m.Value(PrefixTag)
	require.True(t, ok)
	assert.Equal(t, "friends", tag)
}

func TestTokenizeArguments_UnregisteredPrefixStaysInValue(t *testing.T) {
	m := TokenizeArguments("n/John t/friends", PrefixName)

	name, ok := m.Value(PrefixName)
	require.True(t, ok)
	assert.Equal(t, "John t/friends", name)
}

func TestTokenizeArguments_BarePrefixYieldsEmptyValue(t *testing.T) {
	m := TokenizeArguments("t/", PrefixTag)

	require.True(t, m.Has(PrefixTag))
	assert.Equal(t, []string{""}, m.AllValues(PrefixTag))
}

func TestTokenizeArguments_HasAll(t *testing.T) {
	m := TokenizeArguments("n/John p/123", PrefixName, PrefixPhone, PrefixEmail)

	assert.True(t, m.HasAll(PrefixName, PrefixPhone))
	assert.False(t, m.HasAll(PrefixName, PrefixPhone, PrefixEmail))
}

func TestTokenizeArguments_PrefixAtStringStart(t *testing.T) {
	m := TokenizeArguments("n/Ann", PrefixName)

	assert.Empty(t, m.Preamble())
	name, ok := m.Value(PrefixName)
	require.True(t, ok)
	assert.Equal(t, "Ann", name)
}
