package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"hollowbot/pkg/chat"
	"hollowbot/pkg/config"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

const channelName = "telegram"
const messagePreviewLimit = 240

// Handler consumes one inbound platform-neutral message.
type Handler func(context.Context, chat.Message)

// Adapter bridges Telegram into the bot: it pumps long-polling updates into a
// Handler and implements chat.Gateway for outbound actions.
type Adapter struct {
	cfg    config.TelegramConfig
	bot    *telego.Bot
	selfID int64
	log    *slog.Logger
}

// NewAdapter validates Telegram configuration and constructs an adapter.
func NewAdapter(cfg config.TelegramConfig, log *slog.Logger) (*Adapter, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("channels.telegram.token is required")
	}

	if log == nil {
		log = slog.Default()
	}

	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	return &Adapter{
		cfg: cfg,
		bot: bot,
		log: log.With("component", "chat.telegram"),
	}, nil
}

// Name returns the channel identifier used in logs.
func (a *Adapter) Name() string {
	return channelName
}

// Run starts long polling and forwards each update to handler, one at a
// time in arrival order. That sequencing is what serializes dispatch.
func (a *Adapter) Run(ctx context.Context, handler Handler) error {
	if handler == nil {
		return errors.New("handler is required")
	}

	self, err := a.bot.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("resolve bot account: %w", err)
	}
	a.selfID = self.ID

	updates, err := a.bot.UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		return fmt.Errorf("start long polling: %w", err)
	}

	a.log.Info("Telegram channel started", "bot", self.Username)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				if err := ctx.Err(); err != nil {
					return nil
				}
				return errors.New("telegram updates channel closed")
			}

			message := update.Message
			if message == nil || message.From == nil {
				continue
			}

			inbound := a.toMessage(message)
			a.log.Debug("Received message",
				"chat_id", inbound.Chat.ID,
				"sender", inbound.Sender,
				"content", previewText(inbound.Text))

			handler(ctx, inbound)
		}
	}
}

// toMessage converts a Telegram message to the platform-neutral form. Group
// messages carry the actual author as sender, never the group id.
func (a *Adapter) toMessage(message *telego.Message) chat.Message {
	out := chat.Message{
		ID:       strconv.Itoa(message.MessageID),
		Chat:     toChat(message.Chat),
		Sender:   chat.Identity(strconv.FormatInt(message.From.ID, 10)),
		Text:     message.Text,
		FromSelf: message.From.ID == a.selfID,
	}

	if quoted := message.ReplyToMessage; quoted != nil && quoted.From != nil {
		out.Quoted = &chat.Message{
			ID:     strconv.Itoa(quoted.MessageID),
			Chat:   out.Chat,
			Sender: chat.Identity(strconv.FormatInt(quoted.From.ID, 10)),
			Text:   quoted.Text,
		}
	}

	return out
}

func toChat(c telego.Chat) chat.Chat {
	return chat.Chat{
		ID:      strconv.FormatInt(c.ID, 10),
		Title:   c.Title,
		IsGroup: c.Type == telego.ChatTypeGroup || c.Type == telego.ChatTypeSupergroup,
	}
}

// SendText implements chat.Gateway.
func (a *Adapter) SendText(ctx context.Context, chatID string, text string) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}

	if _, err := a.bot.SendMessage(ctx, tu.Message(tu.ID(id), text)); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	return nil
}

// SendTextWithMentions implements chat.Gateway. Telegram has no silent
// mention primitive, so each participant is attached as a zero-width
// tg://user link: everyone is notified, nothing extra is rendered.
func (a *Adapter) SendTextWithMentions(ctx context.Context, chatID string, text string, mentions []chat.Participant) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}

	params := tu.Message(tu.ID(id), mentionBody(text, mentions)).WithParseMode(telego.ModeHTML)
	if _, err := a.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("send telegram mention message: %w", err)
	}

	return nil
}

// SendVoice implements chat.Gateway; ogg/opus is Telegram's native
// voice-note format, so the pipeline output uploads as-is.
func (a *Adapter) SendVoice(ctx context.Context, chatID string, filePath string) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open voice file: %w", err)
	}
	defer file.Close()

	if _, err := a.bot.SendVoice(ctx, tu.Voice(tu.ID(id), tu.File(file))); err != nil {
		return fmt.Errorf("send telegram voice note: %w", err)
	}

	return nil
}

// SendImage implements chat.Gateway.
func (a *Adapter) SendImage(ctx context.Context, chatID string, filePath string) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open image file: %w", err)
	}
	defer file.Close()

	if _, err := a.bot.SendPhoto(ctx, tu.Photo(tu.ID(id), tu.File(file))); err != nil {
		return fmt.Errorf("send telegram photo: %w", err)
	}

	return nil
}

// DeleteMessage implements chat.Gateway.
func (a *Adapter) DeleteMessage(ctx context.Context, chatID string, messageID string) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}

	msgID, err := strconv.Atoi(messageID)
	if err != nil {
		return fmt.Errorf("parse message id %q: %w", messageID, err)
	}

	if err := a.bot.DeleteMessage(ctx, &telego.DeleteMessageParams{ChatID: tu.ID(id), MessageID: msgID}); err != nil {
		return fmt.Errorf("delete telegram message: %w", err)
	}

	return nil
}

// Participants implements chat.Gateway. Telegram does not enumerate full
// group membership over the bot API; the administrator list is the roster.
// Privilege checks are unaffected: an identity absent from it is not an
// admin.
func (a *Adapter) Participants(ctx context.Context, chatID string) ([]chat.Participant, error) {
	id, err := parseChatID(chatID)
	if err != nil {
		return nil, err
	}

	members, err := a.bot.GetChatAdministrators(ctx, &telego.GetChatAdministratorsParams{ChatID: tu.ID(id)})
	if err != nil {
		return nil, fmt.Errorf("fetch chat administrators: %w", err)
	}

	participants := make([]chat.Participant, 0, len(members))
	for _, member := range members {
		user := member.MemberUser()
		participants = append(participants, chat.Participant{
			ID:    chat.Identity(strconv.FormatInt(user.ID, 10)),
			Name:  user.FirstName,
			Admin: isAdminStatus(member.MemberStatus()),
		})
	}

	return participants, nil
}

// RemoveParticipant implements chat.Gateway.
func (a *Adapter) RemoveParticipant(ctx context.Context, chatID string, target chat.Identity) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}

	userID, err := strconv.ParseInt(target.Bare(), 10, 64)
	if err != nil {
		return fmt.Errorf("parse participant id %q: %w", target, err)
	}

	if err := a.bot.BanChatMember(ctx, &telego.BanChatMemberParams{ChatID: tu.ID(id), UserID: userID}); err != nil {
		return fmt.Errorf("remove chat member: %w", err)
	}

	return nil
}

func isAdminStatus(status string) bool {
	return status == telego.MemberStatusCreator || status == telego.MemberStatusAdministrator
}

// mentionBody renders escaped text followed by one zero-width link per
// mentioned participant.
func mentionBody(text string, mentions []chat.Participant) string {
	var b strings.Builder
	b.WriteString(html.EscapeString(text))
	for _, participant := range mentions {
		bare := participant.ID.Bare()
		if bare == "" {
			continue
		}
		b.WriteString(`<a href="tg://user?id=`)
		b.WriteString(bare)
		b.WriteString(`">&#8203;</a>`)
	}

	return b.String()
}

func parseChatID(chatID string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(chatID), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse chat id %q: %w", chatID, err)
	}

	return id, nil
}

// previewText returns a bounded log-safe preview of message text.
func previewText(text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= messagePreviewLimit {
		return trimmed
	}

	return trimmed[:messagePreviewLimit] + "..."
}
