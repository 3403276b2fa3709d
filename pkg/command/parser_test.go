package command

import (
	"testing"

	"hollowbot/pkg/chat"
)

func message(text string) chat.Message {
	return chat.Message{Text: text, Sender: "1", Chat: chat.Chat{ID: "c1"}}
}

func TestParseIgnoresOrdinaryChat(t *testing.T) {
	if _, ok := Parse(message("hello there"), "#"); ok {
		t.Fatal("expected no command for unprefixed text")
	}
	if _, ok := Parse(message("  "), "#"); ok {
		t.Fatal("expected no command for blank text")
	}
	if _, ok := Parse(message("#"), "#"); ok {
		t.Fatal("expected no command for bare prefix")
	}
}

func TestParseVerbIsCaseInsensitive(t *testing.T) {
	cmd, ok := Parse(message("#MeNu"), "#")
	if !ok {
		t.Fatal("expected command")
	}
	if cmd.Verb != "menu" {
		t.Fatalf("verb = %q, want %q", cmd.Verb, "menu")
	}
	if cmd.Args != "" {
		t.Fatalf("args = %q, want empty", cmd.Args)
	}
}

func TestParseSplitsAtFirstWhitespace(t *testing.T) {
	cmd, ok := Parse(message("  #play https://example.com/a b c  "), "#")
	if !ok {
		t.Fatal("expected command")
	}
	if cmd.Verb != "play" {
		t.Fatalf("verb = %q, want %q", cmd.Verb, "play")
	}
	if cmd.Args != "https://example.com/a b c" {
		t.Fatalf("args = %q, want remainder intact", cmd.Args)
	}
}

func TestParseCustomPrefix(t *testing.T) {
	cmd, ok := Parse(message("!menu"), "!")
	if !ok || cmd.Verb != "menu" {
		t.Fatalf("got (%v, %v), want menu command", cmd, ok)
	}
	if _, ok := Parse(message("#menu"), "!"); ok {
		t.Fatal("expected no command when prefix differs")
	}
}

func TestParseCarriesOriginMessage(t *testing.T) {
	msg := message("#getid")
	cmd, ok := Parse(msg, "#")
	if !ok {
		t.Fatal("expected command")
	}
	if cmd.Msg.Sender != msg.Sender || cmd.Msg.Chat.ID != msg.Chat.ID {
		t.Fatal("expected command to reference originating message")
	}
}
