package chat

import (
	"context"
	"strings"
)

// Identity is the stable platform identifier of one chat account. It may
// arrive platform-qualified ("12345@users.example"); Bare strips the
// qualifier down to the comparable account portion.
type Identity string

// Bare returns the account portion of the identity, without any platform
// domain suffix.
func (id Identity) Bare() string {
	value := strings.TrimSpace(string(id))
	if at := strings.IndexByte(value, '@'); at >= 0 {
		return value[:at]
	}

	return value
}

// Chat describes the conversation a message belongs to.
type Chat struct {
	ID      string
	Title   string
	IsGroup bool
}

// Participant is one member of a group chat as reported by the platform.
type Participant struct {
	ID    Identity
	Name  string
	Admin bool
}

// Message is one inbound chat event in platform-neutral form.
//
// Quoted carries the replied-to message when the platform resolved one;
// sender identity of group messages is always the actual author, never the
// group's own identifier.
type Message struct {
	ID       string
	Chat     Chat
	Sender   Identity
	Text     string
	FromSelf bool
	Quoted   *Message
}

// Gateway is the platform surface the bot core drives. Implementations live
// at the transport edge (see pkg/chat/telegram); the core never talks to a
// platform SDK directly.
type Gateway interface {
	// SendText posts a plain text message to a chat.
	SendText(ctx context.Context, chatID string, text string) error

	// SendTextWithMentions posts text that silently notifies every listed
	// participant. The mention list need not be rendered as visible text.
	SendTextWithMentions(ctx context.Context, chatID string, text string, mentions []Participant) error

	// SendVoice delivers an audio file as a voice-message attachment.
	SendVoice(ctx context.Context, chatID string, filePath string) error

	// SendImage delivers an image file as a photo attachment.
	SendImage(ctx context.Context, chatID string, filePath string) error

	// DeleteMessage requests removal of a message from a chat.
	DeleteMessage(ctx context.Context, chatID string, messageID string) error

	// Participants returns the group roster with administrative-role flags.
	Participants(ctx context.Context, chatID string) ([]Participant, error)

	// RemoveParticipant requests removal of a member from a group. The
	// platform may refuse when the bot lacks the required role.
	RemoveParticipant(ctx context.Context, chatID string, id Identity) error
}
