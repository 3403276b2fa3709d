package privilege

import (
	"context"
	"log/slog"

	"hollowbot/pkg/chat"
)

// Roster is the slice of the chat gateway the resolver needs: a live
// group-membership query.
type Roster interface {
	Participants(ctx context.Context, chatID string) ([]chat.Participant, error)
}

// Resolver decides whether a sender may invoke privileged commands.
//
// A static allow-list is checked before the live roster: role queries can be
// stale or fail right after a role change, so the list is a deliberate
// override path in front of the authoritative but less reliable lookup.
type Resolver struct {
	allow  map[string]struct{}
	roster Roster
	log    *slog.Logger
}

// NewResolver builds a resolver over a static allow-list of identities and a
// live roster source. Allow-list entries are normalized to their bare form.
func NewResolver(allowlist []string, roster Roster, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}

	allow := make(map[string]struct{}, len(allowlist))
	for _, entry := range allowlist {
		bare := chat.Identity(entry).Bare()
		if bare == "" {
			continue
		}
		allow[bare] = struct{}{}
	}

	return &Resolver{
		allow:  allow,
		roster: roster,
		log:    log.With("component", "privilege.resolver"),
	}
}

// IsPrivileged reports whether sender holds administrative standing in c.
//
// Privileged commands are group-only by definition; outside a group the
// answer is always false. Any lookup failure resolves to deny — a privileged
// action fails closed, never open. The decision is not cached: membership
// and roles can change between calls.
func (r *Resolver) IsPrivileged(ctx context.Context, c chat.Chat, sender chat.Identity) bool {
	if !c.IsGroup {
		return false
	}

	bare := sender.Bare()
	if bare == "" {
		return false
	}

	if _, ok := r.allow[bare]; ok {
		r.log.Debug("Sender allowed by static list", "sender", bare)
		return true
	}

	if r.roster == nil {
		return false
	}

	participants, err := r.roster.Participants(ctx, c.ID)
	if err != nil {
		r.log.Debug("Roster lookup failed, denying", "chat_id", c.ID, "error", err)
		return false
	}

	for _, participant := range participants {
		if participant.ID.Bare() == bare {
			return participant.Admin
		}
	}

	return false
}
