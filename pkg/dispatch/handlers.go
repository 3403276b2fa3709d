package dispatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"hollowbot/pkg/command"
	"hollowbot/pkg/media"
)

func (d *Dispatcher) handleMenu(ctx context.Context, cmd command.Command) error {
	d.reply(ctx, cmd, menuText)
	return nil
}

// handleTag notifies every resolvable participant without rendering the
// mention list as visible text.
func (d *Dispatcher) handleTag(ctx context.Context, cmd command.Command) error {
	if !cmd.Msg.Chat.IsGroup {
		d.reply(ctx, cmd, "⚠️ Este comando solo funciona en grupos.")
		return nil
	}

	participants, err := d.gw.Participants(ctx, cmd.Msg.Chat.ID)
	if err != nil {
		d.reply(ctx, cmd, "⚠️ No se pudieron obtener los participantes del grupo.")
		return fmt.Errorf("%w: fetch participants: %v", errSilent, err)
	}
	if len(participants) == 0 {
		d.reply(ctx, cmd, "⚠️ No se pudieron obtener los participantes del grupo.")
		return nil
	}

	text := strings.TrimSpace(cmd.Args)
	if text == "" {
		text = "🦋 Atención a todos"
	}

	if err := d.gw.SendTextWithMentions(ctx, cmd.Msg.Chat.ID, text, participants); err != nil {
		d.reply(ctx, cmd, "⚠️ Error al mencionar a todos.")
		return fmt.Errorf("%w: send mentions: %v", errSilent, err)
	}

	return nil
}

func (d *Dispatcher) handleMute(ctx context.Context, cmd command.Command) error {
	if cmd.Msg.Quoted == nil {
		d.reply(ctx, cmd, "⚠️ Responde a un mensaje con "+d.verb("mute")+" para silenciar a ese usuario.")
		return nil
	}

	target := cmd.Msg.Quoted.Sender
	d.muted.Add(target)
	d.log.Info("Muted user", "target", target.Bare())
	d.reply(ctx, cmd, "🔇 *Usuario silenciado*")
	return nil
}

func (d *Dispatcher) handleUnmute(ctx context.Context, cmd command.Command) error {
	if cmd.Msg.Quoted == nil {
		d.reply(ctx, cmd, "⚠️ Responde a un mensaje con "+d.verb("unmute")+" para des-silenciar a ese usuario.")
		return nil
	}

	target := cmd.Msg.Quoted.Sender
	d.muted.Remove(target)
	d.log.Info("Unmuted user", "target", target.Bare())
	d.reply(ctx, cmd, "🔊 *Usuario des-silenciado*")
	return nil
}

func (d *Dispatcher) handleMuteList(ctx context.Context, cmd command.Command) error {
	ids := d.muted.List()
	if len(ids) == 0 {
		d.reply(ctx, cmd, "📭 No hay usuarios silenciados.")
		return nil
	}

	var b strings.Builder
	b.WriteString("🔇 *Usuarios silenciados:*")
	for _, id := range ids {
		b.WriteString("\n• ")
		b.WriteString(string(id))
	}

	d.reply(ctx, cmd, b.String())
	return nil
}

func (d *Dispatcher) handleDelete(ctx context.Context, cmd command.Command) error {
	if cmd.Msg.Quoted == nil {
		d.reply(ctx, cmd, "⚠️ Responde a un mensaje con "+d.verb("del")+" para borrar ese mensaje.")
		return nil
	}

	if err := d.gw.DeleteMessage(ctx, cmd.Msg.Chat.ID, cmd.Msg.Quoted.ID); err != nil {
		d.reply(ctx, cmd, "No se pudo eliminar el mensaje.")
		return fmt.Errorf("%w: delete quoted message: %v", errSilent, err)
	}

	d.reply(ctx, cmd, "🗑️ Mensaje eliminado.")
	return nil
}

// handleKick requests removal through the platform; refusal is expected when
// the bot lacks the admin role, and the reply has to say so.
func (d *Dispatcher) handleKick(ctx context.Context, cmd command.Command) error {
	if cmd.Msg.Quoted == nil {
		d.reply(ctx, cmd, "⚠️ Responde a un mensaje con "+d.verb("kick")+" para expulsar a ese usuario.")
		return nil
	}

	target := cmd.Msg.Quoted.Sender
	if err := d.gw.RemoveParticipant(ctx, cmd.Msg.Chat.ID, target); err != nil {
		d.reply(ctx, cmd, "⚠️ El bot no puede expulsar. Solo admins pueden expulsar usuarios.")
		return fmt.Errorf("%w: remove participant: %v", errSilent, err)
	}

	d.reply(ctx, cmd, "🔨 *Usuario expulsado del grupo*")
	return nil
}

func (d *Dispatcher) handleDice(ctx context.Context, cmd command.Command) error {
	d.reply(ctx, cmd, "🎲 "+strconv.Itoa(d.randInt(6)+1))
	return nil
}

func (d *Dispatcher) handleCoin(ctx context.Context, cmd command.Command) error {
	if d.randInt(2) == 0 {
		d.reply(ctx, cmd, "Cara")
	} else {
		d.reply(ctx, cmd, "Cruz")
	}
	return nil
}

func (d *Dispatcher) handleRoulette(ctx context.Context, cmd command.Command) error {
	d.reply(ctx, cmd, "🎯 "+strconv.Itoa(d.randInt(10)+1))
	return nil
}

func (d *Dispatcher) handleEightBall(ctx context.Context, cmd command.Command) error {
	d.reply(ctx, cmd, "🎱 "+d.pick(eightBallAnswers))
	return nil
}

func (d *Dispatcher) handleJoke(ctx context.Context, cmd command.Command) error {
	d.reply(ctx, cmd, d.pick(jokes))
	return nil
}

func (d *Dispatcher) handleCompliment(ctx context.Context, cmd command.Command) error {
	d.reply(ctx, cmd, d.pick(compliments))
	return nil
}

func (d *Dispatcher) handleInsult(ctx context.Context, cmd command.Command) error {
	d.reply(ctx, cmd, d.pick(insults))
	return nil
}

func (d *Dispatcher) handleImage(ctx context.Context, cmd command.Command) error {
	images, err := listImages(d.assets)
	if err != nil {
		d.reply(ctx, cmd, "No hay assets cargados.")
		return nil
	}
	if len(images) == 0 {
		d.reply(ctx, cmd, "No hay imágenes en assets.")
		return nil
	}

	pickPath := filepath.Join(d.assets, images[d.randInt(len(images))])
	if err := d.gw.SendImage(ctx, cmd.Msg.Chat.ID, pickPath); err != nil {
		return fmt.Errorf("send image: %w", err)
	}

	return nil
}

var rpsNames = map[string]string{"p": "Piedra", "r": "Papel", "t": "Tijera"}

// rpsOutcome applies the fixed win table: rock beats scissors, scissors beats
// paper, paper beats rock.
func rpsOutcome(player, bot string) string {
	if player == bot {
		return "Empate"
	}

	switch {
	case player == "p" && bot == "t", player == "r" && bot == "p", player == "t" && bot == "r":
		return "Ganaste"
	default:
		return "Perdiste"
	}
}

func (d *Dispatcher) handleRPS(ctx context.Context, cmd command.Command) error {
	player := strings.ToLower(strings.TrimSpace(strings.SplitN(cmd.Args, " ", 2)[0]))
	if _, ok := rpsNames[player]; !ok {
		d.reply(ctx, cmd, "Usa: "+d.verb("ppt")+" p|r|t (p=piedra, r=papel, t=tijera)")
		return nil
	}

	moves := []string{"p", "r", "t"}
	bot := moves[d.randInt(len(moves))]
	d.reply(ctx, cmd, fmt.Sprintf("Tu: %s vs Bot: %s -> %s", rpsNames[player], rpsNames[bot], rpsOutcome(player, bot)))
	return nil
}

func (d *Dispatcher) handleRiddle(ctx context.Context, cmd command.Command) error {
	r := riddles[d.randInt(len(riddles))]
	d.reply(ctx, cmd, "*Adivinanza:* "+r.Question+"\n(Responde con "+d.verb("respuesta")+" <tu respuesta>)")
	return nil
}

// handleRiddleAnswer checks the attempt against the keywords of every riddle
// in the table, not just the last one posed. That is the running product's
// behavior; keep it until product decides otherwise.
func (d *Dispatcher) handleRiddleAnswer(ctx context.Context, cmd command.Command) error {
	attempt := strings.ToLower(strings.TrimSpace(cmd.Args))
	if attempt == "" {
		return nil
	}

	for _, r := range riddles {
		for _, keyword := range r.Keywords {
			if strings.Contains(attempt, keyword) {
				d.reply(ctx, cmd, "✅ Correcto: "+r.Answer)
				return nil
			}
		}
	}

	d.reply(ctx, cmd, "❌ Intento registrado. Sigue intentando.")
	return nil
}

func (d *Dispatcher) handleIdentity(ctx context.Context, cmd command.Command) error {
	d.reply(ctx, cmd, "Tu ID: "+string(cmd.Msg.Sender))
	return nil
}

// handlePlay validates the url and hands the long-running acquisition to a
// goroutine so dispatch keeps draining other messages meanwhile.
func (d *Dispatcher) handlePlay(ctx context.Context, cmd command.Command) error {
	source := strings.TrimSpace(strings.SplitN(cmd.Args, " ", 2)[0])
	if source == "" {
		d.reply(ctx, cmd, "Usa: "+d.verb("play")+" <url>")
		return nil
	}
	if err := media.ValidateSource(source); err != nil {
		d.reply(ctx, cmd, d.verb("play")+" necesita una URL directa (ej: https://...)")
		return nil
	}
	if d.player == nil {
		d.reply(ctx, cmd, "🎵 La descarga de audio no está disponible.")
		return nil
	}

	d.reply(ctx, cmd, "🔊 Descargando y procesando audio, espera por favor...")

	go func() {
		path, err := d.player.Acquire(ctx, source)
		if err != nil {
			d.log.Error("Media acquisition failed", "url", source, "error", err)
			d.reply(ctx, cmd, "⚠️ No se pudo procesar el audio: "+source)
			return
		}

		if err := d.gw.SendVoice(ctx, cmd.Msg.Chat.ID, path); err != nil {
			d.log.Error("Could not send voice note", "chat_id", cmd.Msg.Chat.ID, "error", err)
			d.reply(ctx, cmd, "⚠️ No se pudo enviar el audio.")
		}
		d.player.Discard(path)
	}()

	return nil
}

// verb renders a command verb with the active prefix for usage strings.
func (d *Dispatcher) verb(name string) string {
	prefix := d.prefix
	if prefix == "" {
		prefix = command.DefaultPrefix
	}

	return prefix + name
}

func listImages(dir string) ([]string, error) {
	if dir == "" {
		return nil, os.ErrNotExist
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif":
			images = append(images, entry.Name())
		}
	}

	return images, nil
}
