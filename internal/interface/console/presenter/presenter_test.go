package presenter

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/watson/internal/application/query"
	"github.com/alem-hub/watson/internal/domain/shared"
	"github.com/alem-hub/watson/internal/interface/console/parser"
)

func newTestPresenter() (*Presenter, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewPresenter(&buf), &buf
}

func TestWelcome(t *testing.T) {
	p, buf := newTestPresenter()

	p.Welcome("1.0.0", "memory")

	out := buf.String()
	assert.Contains(t, out, "Welcome to Watson")
	assert.Contains(t, out, "1.0.0")
	assert.Contains(t, out, "memory")
	assert.Contains(t, out, `Type "help"`)
}

func TestShowPrompt_NoNewline(t *testing.T) {
	p, buf := newTestPresenter()

	p.ShowPrompt()

	assert.Equal(t, Prompt, buf.String())
}

func TestPersonResultMessages(t *testing.T) {
	card := "John Doe; Phone: 98765432"

	p, buf := newTestPresenter()
	p.PersonAdded(card)
	assert.Equal(t, "New person added: "+card+"\n", buf.String())

	p, buf = newTestPresenter()
	p.PersonDeleted(card)
	assert.Equal(t, "Deleted Person: "+card+"\n", buf.String())

	p, buf = newTestPresenter()
	p.PersonEdited(card)
	assert.Equal(t, "Edited Person: "+card+"\n", buf.String())
}

func TestRosterCleared(t *testing.T) {
	p, buf := newTestPresenter()

	p.RosterCleared(3)

	assert.Equal(t, "Roster has been cleared! Removed 3 person(s).\n", buf.String())
}

func TestRosterSorted(t *testing.T) {
	p, buf := newTestPresenter()
	p.RosterSorted(false, 4)
	assert.Equal(t, "Sorted 4 person(s) by total grade, lowest first.\n", buf.String())

	p, buf = newTestPresenter()
	p.RosterSorted(true, 4)
	assert.Equal(t, "Sorted 4 person(s) by total grade, highest first.\n", buf.String())
}

func TestFullListing_NumbersEntriesFromOne(t *testing.T) {
	p, buf := newTestPresenter()
	persons := []query.PersonDTO{
		{Index: 1, Name: "Alice Tan", Card: "Alice Tan; Phone: 111"},
		{Index: 2, Name: "Benson Meier", Card: "Benson Meier; Phone: 222"},
	}

	p.FullListing(persons, 2, "memory")

	out := buf.String()
	assert.Contains(t, out, "1. Alice Tan; Phone: 111\n")
	assert.Contains(t, out, "2. Benson Meier; Phone: 222\n")
	assert.Contains(t, out, MessageListedAll)
	assert.Contains(t, out, "2 person(s) in the roster. Storage backend: memory.")
}

func TestFullListing_EmptyRoster(t *testing.T) {
	p, buf := newTestPresenter()

	p.FullListing(nil, 0, "file")

	out := buf.String()
	assert.Contains(t, out, MessageEmptyRoster)
	assert.Contains(t, out, "0 person(s) in the roster. Storage backend: file.")
	assert.NotContains(t, out, MessageListedAll)
}

func TestSearchListing_CountsMatches(t *testing.T) {
	p, buf := newTestPresenter()
	persons := []query.PersonDTO{
		{Index: 1, Name: "Benson Meier", Card: "Benson Meier; Phone: 222"},
		{Index: 2, Name: "Damien Meier", Card: "Damien Meier; Phone: 333"},
	}

	p.SearchListing(persons)

	out := buf.String()
	assert.Contains(t, out, "1. Benson Meier")
	assert.Contains(t, out, "2. Damien Meier")
	assert.Contains(t, out, "2 persons listed!")
}

func TestSearchListing_NoMatches(t *testing.T) {
	p, buf := newTestPresenter()

	p.SearchListing(nil)

	assert.Equal(t, "0 persons listed!\n", buf.String())
}

func TestHelp_RendersWholeCatalogue(t *testing.T) {
	p, buf := newTestPresenter()

	p.Help(parser.AllUsages())

	out := buf.String()
	assert.Contains(t, out, MessageHelpHeader)
	for _, u := range parser.AllUsages() {
		assert.Contains(t, out, u.Usage)
	}
}

func TestError_ParseErrorRendersMessageThenUsage(t *testing.T) {
	p, buf := newTestPresenter()

	p.Error(parser.NewParseError(parser.MessageInvalidIndex, parser.UsageDelete))

	assert.Equal(t, parser.MessageInvalidIndex+"\n"+parser.UsageDelete+"\n", buf.String())
}

func TestError_TranslatesDomainErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: shared.ErrDuplicatePerson, want: MessageDuplicatePerson},
		{err: shared.ErrIndexOutOfRange, want: MessageInvalidIndex},
		{err: shared.ErrPersonNotFound, want: MessagePersonNotFound},
		{err: shared.ErrEditUnchanged, want: MessageEditUnchanged},
		{err: shared.ErrEditNoChanges, want: MessageEditUnchanged},
		{err: shared.ErrStorageUnavailable, want: MessageStorageFailure},
	}

	for _, tt := range tests {
		p, buf := newTestPresenter()

		p.Error(tt.err)

		assert.Equal(t, tt.want+"\n", buf.String(), tt.err.Error())
	}
}

func TestError_WrappedSentinelStillTranslates(t *testing.T) {
	p, buf := newTestPresenter()

	p.Error(fmt.Errorf("edit_person: failed to find person: %w", shared.ErrPersonNotFound))

	assert.Equal(t, MessagePersonNotFound+"\n", buf.String())
}

func TestError_UnknownErrorPrintedAsIs(t *testing.T) {
	p, buf := newTestPresenter()
	err := errors.New("something odd happened")

	p.Error(err)

	assert.Equal(t, "something odd happened\n", buf.String())
}

func TestTranslateError_PrefersSpecificText(t *testing.T) {
	require.Equal(t, MessageDuplicatePerson, TranslateError(shared.ErrDuplicatePerson))
}
