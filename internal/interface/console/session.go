// Package console implements the interactive line console of watson.
// The session reads input lines, parses them into typed commands, dispatches
// them to the application handlers, and renders results through the
// presenter. Display indices always refer to the last rendered listing.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alem-hub/watson/internal/application/command"
	"github.com/alem-hub/watson/internal/application/query"
	"github.com/alem-hub/watson/internal/domain/shared"
	"github.com/alem-hub/watson/internal/interface/console/parser"
	"github.com/alem-hub/watson/internal/interface/console/presenter"
)

// ══════════════════════════════════════════════════════════════════════════════
// SESSION CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// SessionConfig contains configuration for the console session.
type SessionConfig struct {
	// Input is the command source, normally os.Stdin.
	Input io.Reader

	// Output is the rendering sink, normally os.Stdout.
	Output io.Writer

	// Version is shown in the welcome block.
	Version string

	// Backend names the storage backend, shown in the welcome block and
	// the list statistics line.
	Backend string

	// Logger for structured logging.
	Logger *slog.Logger
}

// ══════════════════════════════════════════════════════════════════════════════
// SESSION DEPENDENCIES
// Aggregates the application handlers the session dispatches to.
// ══════════════════════════════════════════════════════════════════════════════

// SessionDependencies contains all handlers used by the session.
type SessionDependencies struct {
	// Commands
	AddPersonCmd    *command.AddPersonHandler
	DeletePersonCmd *command.DeletePersonHandler
	EditPersonCmd   *command.EditPersonHandler
	ClearRosterCmd  *command.ClearRosterHandler
	SortRosterCmd   *command.SortRosterHandler

	// Queries
	ListPersonsQuery *query.ListPersonsHandler
	FindPersonsQuery *query.FindPersonsHandler

	// EventPublisher receives session lifecycle events. Optional.
	EventPublisher shared.EventPublisher
}

// validate checks that every required handler is wired.
func (d SessionDependencies) validate() error {
	if d.AddPersonCmd == nil || d.DeletePersonCmd == nil || d.EditPersonCmd == nil ||
		d.ClearRosterCmd == nil || d.SortRosterCmd == nil {
		return errors.New("console: all command handlers are required")
	}
	if d.ListPersonsQuery == nil || d.FindPersonsQuery == nil {
		return errors.New("console: all query handlers are required")
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// SESSION
// ══════════════════════════════════════════════════════════════════════════════

// Session is the interactive console loop: prompt, read, parse, execute,
// render. It runs on a single goroutine.
type Session struct {
	config    SessionConfig
	deps      SessionDependencies
	presenter *presenter.Presenter
	scanner   *bufio.Scanner
	logger    *slog.Logger

	// id identifies this session in events and logs.
	id string

	// lastListing holds the person names of the most recently rendered
	// listing, full or filtered. Delete and edit resolve their one-based
	// display indices against this snapshot and dispatch by name.
	lastListing []string

	stats SessionStats
}

// SessionStats holds the counters of one console session.
type SessionStats struct {
	// StartedAt is when Run began.
	StartedAt time.Time

	// CommandsRun counts successfully parsed commands.
	CommandsRun int

	// ErrorsCount counts parse and execution failures.
	ErrorsCount int

	// CommandCounts counts parsed commands by command word.
	CommandCounts map[string]int64
}

// NewSession creates a console session with all dependencies.
func NewSession(config SessionConfig, deps SessionDependencies) (*Session, error) {
	if config.Input == nil {
		return nil, errors.New("console: input reader is required")
	}
	if config.Output == nil {
		return nil, errors.New("console: output writer is required")
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Version == "" {
		config.Version = "dev"
	}
	if config.Backend == "" {
		config.Backend = "memory"
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}

	return &Session{
		config:    config,
		deps:      deps,
		presenter: presenter.NewPresenter(config.Output),
		scanner:   bufio.NewScanner(config.Input),
		logger:    config.Logger,
		id:        uuid.NewString(),
		stats:     SessionStats{CommandCounts: make(map[string]int64)},
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Stats returns a copy of the session counters.
func (s *Session) Stats() SessionStats {
	counts := make(map[string]int64, len(s.stats.CommandCounts))
	for word, n := range s.stats.CommandCounts {
		counts[word] = n
	}
	out := s.stats
	out.CommandCounts = counts
	return out
}

// ══════════════════════════════════════════════════════════════════════════════
// RUN LOOP
// ══════════════════════════════════════════════════════════════════════════════

// Run drives the session until an exit command, end of input, or context
// cancellation. End of input behaves like an explicit exit.
func (s *Session) Run(ctx context.Context) error {
	s.stats.StartedAt = time.Now()
	s.logger.Info("console session started",
		"session_id", s.id,
		"backend", s.config.Backend,
	)
	s.publish(shared.NewSessionStartedEvent(s.id, s.config.Backend))

	defer func() {
		s.publish(shared.NewSessionEndedEvent(s.id, s.stats.CommandsRun))
		s.logger.Info("console session ended",
			"session_id", s.id,
			"commands_run", s.stats.CommandsRun,
			"errors", s.stats.ErrorsCount,
		)
	}()

	s.presenter.Welcome(s.config.Version, s.config.Backend)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.presenter.ShowPrompt()
		line, err := s.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.presenter.Goodbye()
				return nil
			}
			return fmt.Errorf("console: failed to read input: %w", err)
		}

		if exit := s.handleLine(ctx, line); exit {
			return nil
		}
	}
}

// readLine reads the next input line. A closed input stream surfaces as
// io.EOF.
func (s *Session) readLine() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// handleLine parses and executes one input line. It reports whether the
// session should end.
func (s *Session) handleLine(ctx context.Context, line string) bool {
	started := time.Now()

	cmd, err := parser.ParseCommand(line)
	if err != nil {
		s.stats.ErrorsCount++
		s.presenter.Error(err)
		return false
	}

	s.stats.CommandsRun++
	s.stats.CommandCounts[cmd.Word()]++

	exit, err := s.execute(ctx, cmd)
	if err != nil {
		s.stats.ErrorsCount++
		s.presenter.Error(err)
		s.logger.Warn("command failed",
			"command", cmd.Word(),
			"error", err,
			"duration", time.Since(started),
		)
		return false
	}

	s.logger.Debug("command handled",
		"command", cmd.Word(),
		"duration", time.Since(started),
	)
	return exit
}

// ══════════════════════════════════════════════════════════════════════════════
// COMMAND EXECUTION
// ══════════════════════════════════════════════════════════════════════════════

// execute dispatches a parsed command to its handler. It reports whether
// the session should end.
func (s *Session) execute(ctx context.Context, cmd parser.Command) (exit bool, err error) {
	switch c := cmd.(type) {
	case parser.AddCommand:
		return false, s.executeAdd(ctx, c)
	case parser.ClearCommand:
		return false, s.executeClear(ctx)
	case parser.DeleteCommand:
		return false, s.executeDelete(ctx, c)
	case parser.EditCommand:
		return false, s.executeEdit(ctx, c)
	case parser.ExitCommand:
		s.presenter.Goodbye()
		return true, nil
	case parser.FindCommand:
		return false, s.executeFind(ctx, c)
	case parser.HelpCommand:
		s.presenter.Help(parser.AllUsages())
		return false, nil
	case parser.ListCommand:
		return false, s.executeList(ctx)
	case parser.SortCommand:
		return false, s.executeSort(ctx, c)
	default:
		// The command set is closed; a new variant must be wired here.
		return false, fmt.Errorf("console: unhandled command %q", cmd.Word())
	}
}

func (s *Session) executeAdd(ctx context.Context, c parser.AddCommand) error {
	result, err := s.deps.AddPersonCmd.Handle(ctx, command.AddPersonCommand{
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		Class:         c.Class,
		Tags:          c.Tags,
		CorrelationID: s.id,
	})
	if err != nil {
		return err
	}
	s.presenter.PersonAdded(result.Person.String())
	return nil
}

func (s *Session) executeClear(ctx context.Context) error {
	result, err := s.deps.ClearRosterCmd.Handle(ctx, command.ClearRosterCommand{
		CorrelationID: s.id,
	})
	if err != nil {
		return err
	}
	s.lastListing = nil
	s.presenter.RosterCleared(result.RemovedCount)
	return nil
}

func (s *Session) executeDelete(ctx context.Context, c parser.DeleteCommand) error {
	name, err := s.resolveIndex(c.Index)
	if err != nil {
		return err
	}
	result, err := s.deps.DeletePersonCmd.Handle(ctx, command.DeletePersonCommand{
		Name:          name,
		CorrelationID: s.id,
	})
	if err != nil {
		return err
	}
	s.dropListingEntry(c.Index)
	s.presenter.PersonDeleted(result.Removed.String())
	return nil
}

func (s *Session) executeEdit(ctx context.Context, c parser.EditCommand) error {
	name, err := s.resolveIndex(c.Index)
	if err != nil {
		return err
	}
	result, err := s.deps.EditPersonCmd.Handle(ctx, command.EditPersonCommand{
		Name:          name,
		Descriptor:    c.Descriptor,
		CorrelationID: s.id,
	})
	if err != nil {
		return err
	}
	// A rename moves the record under a new name at the same position.
	s.lastListing[c.Index] = result.After.Name().String()
	s.presenter.PersonEdited(result.After.String())
	return nil
}

func (s *Session) executeFind(ctx context.Context, c parser.FindCommand) error {
	result, err := s.deps.FindPersonsQuery.Handle(ctx, query.FindPersonsQuery{
		Keywords: c.Keywords,
	})
	if err != nil {
		return err
	}
	s.rememberListing(result.Persons)
	s.presenter.SearchListing(result.Persons)
	return nil
}

func (s *Session) executeList(ctx context.Context) error {
	result, err := s.deps.ListPersonsQuery.Handle(ctx, query.ListPersonsQuery{})
	if err != nil {
		return err
	}
	s.rememberListing(result.Persons)
	s.presenter.FullListing(result.Persons, result.TotalCount, s.config.Backend)
	return nil
}

func (s *Session) executeSort(ctx context.Context, c parser.SortCommand) error {
	result, err := s.deps.SortRosterCmd.Handle(ctx, command.SortRosterCommand{
		Descending:    c.Descending,
		CorrelationID: s.id,
	})
	if err != nil {
		return err
	}
	// The rendered numbering is stale after a reorder; a fresh list or
	// find must be rendered before the next index-carrying command.
	s.lastListing = nil
	s.presenter.RosterSorted(c.Descending, len(result.Persons))
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// INDEX RESOLUTION
// ══════════════════════════════════════════════════════════════════════════════

// rememberListing snapshots the names of a rendered listing in display
// order.
func (s *Session) rememberListing(persons []query.PersonDTO) {
	names := make([]string, len(persons))
	for i, dto := range persons {
		names[i] = dto.Name
	}
	s.lastListing = names
}

// resolveIndex maps a zero-based display index to the person name shown at
// that position in the last rendered listing.
func (s *Session) resolveIndex(index int) (string, error) {
	if index < 0 || index >= len(s.lastListing) {
		return "", shared.ErrIndexOutOfRange
	}
	return s.lastListing[index], nil
}

// dropListingEntry removes one position from the listing snapshot, the way
// the rendered list compacts after a deletion.
func (s *Session) dropListingEntry(index int) {
	s.lastListing = append(s.lastListing[:index], s.lastListing[index+1:]...)
}

// ══════════════════════════════════════════════════════════════════════════════
// EVENTS
// ══════════════════════════════════════════════════════════════════════════════

// publish sends a session lifecycle event when a publisher is wired.
// Publish failures never disturb the console.
func (s *Session) publish(event shared.Event) {
	if s.deps.EventPublisher == nil {
		return
	}
	if err := s.deps.EventPublisher.Publish(event); err != nil {
		s.logger.Warn("failed to publish session event",
			"event_type", event.EventType(),
			"error", err,
		)
	}
}
