package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	intermediateBitrate = "128k"
	voiceBitrate        = "64k"
	voiceCodec          = "libopus"
)

// Transcoder runs the two encode passes of the pipeline.
//
// The passes stay separate on purpose: the first normalizes whatever
// container/codec the source stream arrived in at a fixed bitrate, so the
// second pass always reads a format the voice-note encoder understands.
type Transcoder interface {
	// Intermediate encodes the raw source stream into the intermediate
	// audio-only container at 128 kbps.
	Intermediate(ctx context.Context, source io.Reader, outPath string) error

	// VoiceNote re-encodes the intermediate file into the opus voice-note
	// format at 64 kbps, stripping any video.
	VoiceNote(ctx context.Context, inPath string, outPath string) error
}

// FFmpegTranscoder shells out to an ffmpeg binary, the same way the bot has
// always transcoded.
type FFmpegTranscoder struct {
	// Path is the ffmpeg executable; "ffmpeg" resolves via PATH.
	Path string
}

func (t *FFmpegTranscoder) binary() string {
	if strings.TrimSpace(t.Path) == "" {
		return "ffmpeg"
	}

	return t.Path
}

// Intermediate implements Transcoder by piping the source stream into ffmpeg.
func (t *FFmpegTranscoder) Intermediate(ctx context.Context, source io.Reader, outPath string) error {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-vn",
		"-b:a", intermediateBitrate,
		"-y", outPath,
	}

	return t.run(ctx, source, args)
}

// VoiceNote implements Transcoder with the opus voice-note pass.
func (t *FFmpegTranscoder) VoiceNote(ctx context.Context, inPath string, outPath string) error {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", inPath,
		"-vn",
		"-acodec", voiceCodec,
		"-b:a", voiceBitrate,
		"-y", outPath,
	}

	return t.run(ctx, nil, args)
}

func (t *FFmpegTranscoder) run(ctx context.Context, stdin io.Reader, args []string) error {
	cmd := exec.CommandContext(ctx, t.binary(), args...)
	cmd.Stdin = stdin

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if detail := lastLine(stderr.String()); detail != "" {
			return fmt.Errorf("ffmpeg: %w: %s", err, detail)
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}

	return nil
}

// lastLine extracts the final non-empty stderr line, which is where ffmpeg
// states its actual complaint.
func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}

	return ""
}
