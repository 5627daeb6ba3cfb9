package parser

import (
	"github.com/alem-hub/watson/internal/application/command"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMMAND VARIANTS
// The closed set of commands the console understands. Parsing produces one
// of these values; the session type-switches over the set to execute it.
// ══════════════════════════════════════════════════════════════════════════════

// The command words, matched case-sensitively.
const (
	WordAdd    = "add"
	WordClear  = "clear"
	WordDelete = "delete"
	WordEdit   = "edit"
	WordExit   = "exit"
	WordFind   = "find"
	WordHelp   = "help"
	WordList   = "list"
	WordSort   = "sort"
)

// Command is one parsed console command. The set of implementations is
// closed: only this package constructs Command values.
type Command interface {
	// Word returns the command word the value was parsed from.
	Word() string

	isCommand()
}

// AddCommand creates a new roster record. All field values have already
// passed their format validation.
type AddCommand struct {
	// Name is the person's full name, the roster identity.
	Name string

	// Phone is the contact phone number.
	Phone string

	// Email is the contact email address.
	Email string

	// Address is the postal address.
	Address string

	// Class is the student class label.
	Class string

	// Tags are optional labels, in input order.
	Tags []string
}

// ClearCommand empties the whole roster.
type ClearCommand struct{}

// DeleteCommand removes the record at a listing position.
type DeleteCommand struct {
	// Index is the zero-based position in the last rendered listing.
	Index int
}

// EditCommand changes the supplied fields of the record at a listing
// position.
type EditCommand struct {
	// Index is the zero-based position in the last rendered listing.
	Index int

	// Descriptor holds only the fields to change.
	Descriptor command.EditPersonDescriptor
}

// ExitCommand ends the session.
type ExitCommand struct{}

// FindCommand lists the records whose names match any keyword.
type FindCommand struct {
	// Keywords are the search words, non-empty, in input order.
	Keywords []string
}

// HelpCommand shows the command catalogue.
type HelpCommand struct{}

// ListCommand lists the whole roster in storage order.
type ListCommand struct{}

// SortCommand reorders the roster by total subject grade.
type SortCommand struct {
	// Descending selects highest grade first.
	Descending bool
}

// Word implements Command.
func (AddCommand) Word() string { return WordAdd }

// Word implements Command.
func (ClearCommand) Word() string { return WordClear }

// Word implements Command.
func (DeleteCommand) Word() string { return WordDelete }

// Word implements Command.
func (EditCommand) Word() string { return WordEdit }

// Word implements Command.
func (ExitCommand) Word() string { return WordExit }

// Word implements Command.
func (FindCommand) Word() string { return WordFind }

// Word implements Command.
func (HelpCommand) Word() string { return WordHelp }

// Word implements Command.
func (ListCommand) Word() string { return WordList }

// Word implements Command.
func (SortCommand) Word() string { return WordSort }

func (AddCommand) isCommand()    {}
func (ClearCommand) isCommand()  {}
func (DeleteCommand) isCommand() {}
func (EditCommand) isCommand()   {}
func (ExitCommand) isCommand()   {}
func (FindCommand) isCommand()   {}
func (HelpCommand) isCommand()   {}
func (ListCommand) isCommand()   {}
func (SortCommand) isCommand()   {}
