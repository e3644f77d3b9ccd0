package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type InteractionKind int

const (
	KindPing InteractionKind = iota + 1
	KindCommand
	KindComponentSelect
)

func (k InteractionKind) String() string {
	switch k {
	case KindPing:
		return "ping"
	case KindCommand:
		return "command"
	case KindComponentSelect:
		return "component_select"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyQuery      = errors.New("command carries no query")
	ErrInvalidBookID   = errors.New("selected value is not a book id")
	ErrMissingSelected = errors.New("component interaction carries no selected value")
)

// Interaction is one verified inbound event. The set of implementations is
// closed: only Ping, Command and ComponentSelect satisfy it.
type Interaction interface {
	Kind() InteractionKind
	Meta() Envelope
	interaction()
}

// Envelope carries the fields every interaction kind shares. Token addresses
// the follow-up webhook for this interaction.
type Envelope struct {
	ID    string
	Token string
}

func (e Envelope) Meta() Envelope { return e }

type Ping struct {
	Envelope
}

func (Ping) Kind() InteractionKind { return KindPing }
func (Ping) interaction()          {}

// Command is a slash command invocation reduced to its single query argument.
type Command struct {
	Envelope
	Name  string
	Query string
}

func (Command) Kind() InteractionKind { return KindCommand }
func (Command) interaction()          {}

// NewCommand validates the query and returns a Command.
func NewCommand(env Envelope, name, query string) (Command, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Command{}, ErrEmptyQuery
	}
	return Command{Envelope: env, Name: name, Query: query}, nil
}

// SelectBookCustomID identifies the book select menu. It is the only
// component this bot renders.
const SelectBookCustomID = "select_book"

// ComponentSelect is a choice made in a select menu. BookID is the catalog id
// stored in the selected option's value.
type ComponentSelect struct {
	Envelope
	CustomID string
	BookID   int
}

func (ComponentSelect) Kind() InteractionKind { return KindComponentSelect }
func (ComponentSelect) interaction()          {}

// NewComponentSelect parses the first selected value as a catalog id.
func NewComponentSelect(env Envelope, customID string, values []string) (ComponentSelect, error) {
	if len(values) == 0 {
		return ComponentSelect{}, ErrMissingSelected
	}
	id, err := ParseBookID(values[0])
	if err != nil {
		return ComponentSelect{}, err
	}
	return ComponentSelect{Envelope: env, CustomID: customID, BookID: id}, nil
}

// ParseBookID converts an option value back into a catalog id.
func ParseBookID(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBookID, value)
	}
	return id, nil
}

// OptionValue is the inverse of ParseBookID.
func OptionValue(id int) string {
	return strconv.Itoa(id)
}
