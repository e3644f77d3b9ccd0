package model

import "fmt"

type Ack int

// Wire values follow Discord's interaction callback types.
const (
	AckPong                   Ack = 1
	AckDeferredChannelMessage Ack = 5
	AckDeferredUpdateMessage  Ack = 6
)

func (a Ack) String() string {
	switch a {
	case AckPong:
		return "pong"
	case AckDeferredChannelMessage:
		return "deferred_channel_message"
	case AckDeferredUpdateMessage:
		return "deferred_update_message"
	default:
		return fmt.Sprintf("ack(%d)", int(a))
	}
}

type FollowUpMode int

const (
	// FollowUpCreate posts a new message in reply to a deferred channel message.
	FollowUpCreate FollowUpMode = iota + 1
	// FollowUpUpdateOriginal replaces the message the component was attached to.
	FollowUpUpdateOriginal
)

func (m FollowUpMode) String() string {
	switch m {
	case FollowUpCreate:
		return "create"
	case FollowUpUpdateOriginal:
		return "update_original"
	default:
		return "unknown"
	}
}

// FollowUp is the deferred answer to one interaction.
type FollowUp struct {
	Mode    FollowUpMode
	Content string
	// Books are rendered as display cards.
	Books []Book
	// Choices are rendered as a select menu whose option values are book ids.
	Choices []Book
	// ClearComponents removes any UI left on the target message.
	ClearComponents bool
}

const (
	MsgSeveralMatches = "I found several books. Please select one from the list:"
	MsgDetailsFailed  = "Sorry, I couldn't retrieve the details for that book."
)

// NoMatches is the reply for a search that found nothing.
func NoMatches(query string) FollowUp {
	return FollowUp{
		Mode:    FollowUpCreate,
		Content: fmt.Sprintf("Sorry, I couldn't find any books matching **%s**.", query),
	}
}

func SingleBook(b Book) FollowUp {
	return FollowUp{Mode: FollowUpCreate, Books: []Book{b}}
}

func BookChoices(books []Book) FollowUp {
	choices := make([]Book, len(books))
	copy(choices, books)
	return FollowUp{Mode: FollowUpCreate, Content: MsgSeveralMatches, Choices: choices}
}

func DetailsUnavailable(mode FollowUpMode) FollowUp {
	return FollowUp{Mode: mode, Content: MsgDetailsFailed, ClearComponents: mode == FollowUpUpdateOriginal}
}

// SelectedBook replaces the select menu message with the chosen book's card.
func SelectedBook(b Book) FollowUp {
	return FollowUp{Mode: FollowUpUpdateOriginal, Books: []Book{b}, ClearComponents: true}
}
