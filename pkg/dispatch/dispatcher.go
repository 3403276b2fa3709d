package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"

	"hollowbot/pkg/chat"
	"hollowbot/pkg/command"
	"hollowbot/pkg/moderation"
	"hollowbot/pkg/privilege"
)

// Acquirer is the slice of the media pipeline the play handler needs.
type Acquirer interface {
	Acquire(ctx context.Context, sourceURL string) (string, error)
	Discard(path string)
}

// errSilent marks handler failures that must not produce a chat reply.
var errSilent = errors.New("silent failure")

type handlerFunc func(ctx context.Context, cmd command.Command) error

type route struct {
	privileged bool
	handle     handlerFunc
}

// Dispatcher routes inbound messages through the moderation and privilege
// gates into command handlers.
//
// One Dispatch call runs at a time per chat session: the update pump invokes
// it sequentially, which is the only serialization the mute store needs.
type Dispatcher struct {
	gw     chat.Gateway
	muted  *moderation.Store
	priv   *privilege.Resolver
	player Acquirer
	prefix string
	assets string
	log    *slog.Logger

	routes map[string]route

	// randInt is swapped to math/rand by default and left overridable so
	// handler behavior stays observable without real randomness in tests.
	randInt func(n int) int
}

// Options carries the collaborators a dispatcher needs.
type Options struct {
	Gateway   chat.Gateway
	Muted     *moderation.Store
	Privilege *privilege.Resolver
	Player    Acquirer
	Prefix    string
	AssetsDir string
	Logger    *slog.Logger
}

// New wires a dispatcher and registers the command table.
func New(opts Options) (*Dispatcher, error) {
	if opts.Gateway == nil {
		return nil, errors.New("gateway is required")
	}
	if opts.Muted == nil {
		return nil, errors.New("moderation store is required")
	}
	if opts.Privilege == nil {
		return nil, errors.New("privilege resolver is required")
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	d := &Dispatcher{
		gw:      opts.Gateway,
		muted:   opts.Muted,
		priv:    opts.Privilege,
		player:  opts.Player,
		prefix:  opts.Prefix,
		assets:  opts.AssetsDir,
		log:     log.With("component", "dispatch"),
		randInt: rand.IntN,
	}

	d.routes = map[string]route{
		"menu":      {handle: d.handleMenu},
		"help":      {handle: d.handleMenu},
		"hola":      {handle: d.handleMenu},
		"tag":       {privileged: true, handle: d.handleTag},
		"mute":      {privileged: true, handle: d.handleMute},
		"unmute":    {privileged: true, handle: d.handleUnmute},
		"mutelist":  {handle: d.handleMuteList},
		"del":       {privileged: true, handle: d.handleDelete},
		"kick":      {privileged: true, handle: d.handleKick},
		"dado":      {handle: d.handleDice},
		"moneda":    {handle: d.handleCoin},
		"ruleta":    {handle: d.handleRoulette},
		"8ball":     {handle: d.handleEightBall},
		"chiste":    {handle: d.handleJoke},
		"piropo":    {handle: d.handleCompliment},
		"insulto":   {handle: d.handleInsult},
		"meme":      {handle: d.handleImage},
		"imagen":    {handle: d.handleImage},
		"ppt":       {handle: d.handleRPS},
		"adivina":   {handle: d.handleRiddle},
		"respuesta": {handle: d.handleRiddleAnswer},
		"getid":     {handle: d.handleIdentity},
		"play":      {handle: d.handlePlay},
	}

	return d, nil
}

// Dispatch processes one inbound message end to end.
//
// Gate order is fixed: self-authored filter, mute short-circuit, parse,
// privilege gate, handler. Muted senders and denied privileged calls get
// total silence; that absence of output is the enforcement signal, so no
// branch below may leak an acknowledgment.
func (d *Dispatcher) Dispatch(ctx context.Context, msg chat.Message) {
	if msg.FromSelf {
		return
	}

	if d.muted.Contains(msg.Sender) {
		if err := d.gw.DeleteMessage(ctx, msg.Chat.ID, msg.ID); err != nil {
			d.log.Debug("Could not delete muted sender message", "chat_id", msg.Chat.ID, "error", err)
		}
		return
	}

	cmd, ok := command.Parse(msg, d.prefix)
	if !ok {
		return
	}

	r, ok := d.routes[cmd.Verb]
	if !ok {
		// Unknown verbs are chat noise, not errors.
		return
	}

	if r.privileged && !d.priv.IsPrivileged(ctx, msg.Chat, msg.Sender) {
		// Probing by non-admins must look exactly like a command that
		// does not exist.
		return
	}

	d.log.Info("Executing command", "verb", cmd.Verb, "chat_id", msg.Chat.ID, "sender", msg.Sender.Bare())

	if err := r.handle(ctx, cmd); err != nil {
		d.log.Error("Command failed", "verb", cmd.Verb, "error", err)
		if errors.Is(err, errSilent) {
			return
		}
		d.reply(ctx, cmd, "⚠️ Algo salió mal. Intenta de nuevo.")
	}
}

// reply sends text back to the originating chat, best effort.
func (d *Dispatcher) reply(ctx context.Context, cmd command.Command, text string) {
	if err := d.gw.SendText(ctx, cmd.Msg.Chat.ID, text); err != nil {
		d.log.Error("Could not send reply", "chat_id", cmd.Msg.Chat.ID, "error", err)
	}
}

func (d *Dispatcher) pick(values []string) string {
	return values[d.randInt(len(values))]
}
