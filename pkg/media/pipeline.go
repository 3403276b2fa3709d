package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Stage labels the step a download job is currently in.
type Stage string

const (
	StageFetching     Stage = "fetching"
	StageIntermediate Stage = "transcoding-intermediate"
	StageFinal        Stage = "transcoding-final"
	StageDone         Stage = "done"
	StageFailed       Stage = "failed"
)

// Job is one in-flight media acquisition. It is owned exclusively by the
// invocation that created it and never shared across commands.
type Job struct {
	ID               string
	SourceURL        string
	IntermediatePath string
	FinalPath        string
	Stage            Stage
}

// Pipeline turns a remote audio source into a local voice-note file.
//
// Invocations are independent and hold no shared mutable state; concurrent
// jobs are safe because every job gets uniquely named files under the shared
// downloads directory.
type Pipeline struct {
	dir   string
	fetch Fetcher
	trans Transcoder
	log   *slog.Logger
}

// NewPipeline creates the downloads directory and wires the stage
// implementations. Nil fetch/trans select the HTTP and ffmpeg defaults.
func NewPipeline(dir string, fetch Fetcher, trans Transcoder, log *slog.Logger) (*Pipeline, error) {
	if dir == "" {
		dir = "downloads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create downloads directory: %w", err)
	}

	if fetch == nil {
		fetch = NewHTTPFetcher()
	}
	if trans == nil {
		trans = &FFmpegTranscoder{}
	}
	if log == nil {
		log = slog.Default()
	}

	return &Pipeline{
		dir:   dir,
		fetch: fetch,
		trans: trans,
		log:   log.With("component", "media.pipeline"),
	}, nil
}

// Acquire fetches sourceURL and transcodes it to a voice-note file, returning
// the final path. The caller delivers the file and removes it afterwards.
//
// A failure at any stage aborts the job, removes every partial artifact, and
// comes back as a single error. There are no retries; the user reissues the
// command instead.
func (p *Pipeline) Acquire(ctx context.Context, sourceURL string) (string, error) {
	job := p.newJob(sourceURL)
	log := p.log.With("job_id", job.ID)

	job.Stage = StageFetching
	log.Info("Fetching source stream", "url", sourceURL)
	stream, err := p.fetch.Open(ctx, sourceURL)
	if err != nil {
		job.Stage = StageFailed
		return "", fmt.Errorf("fetch: %w", err)
	}

	job.Stage = StageIntermediate
	log.Info("Transcoding intermediate pass")
	err = p.trans.Intermediate(ctx, stream, job.IntermediatePath)
	stream.Close()
	if err != nil {
		job.Stage = StageFailed
		removeQuiet(log, job.IntermediatePath)
		return "", fmt.Errorf("intermediate transcode: %w", err)
	}

	job.Stage = StageFinal
	log.Info("Transcoding voice-note pass")
	err = p.trans.VoiceNote(ctx, job.IntermediatePath, job.FinalPath)
	removeQuiet(log, job.IntermediatePath)
	if err != nil {
		job.Stage = StageFailed
		removeQuiet(log, job.FinalPath)
		return "", fmt.Errorf("voice-note transcode: %w", err)
	}

	job.Stage = StageDone
	log.Info("Acquisition complete", "path", job.FinalPath)
	return job.FinalPath, nil
}

// Discard removes a delivered (or undeliverable) final file.
func (p *Pipeline) Discard(path string) {
	removeQuiet(p.log, path)
}

func (p *Pipeline) newJob(sourceURL string) *Job {
	id := uuid.NewString()
	return &Job{
		ID:               id,
		SourceURL:        sourceURL,
		IntermediatePath: filepath.Join(p.dir, "track-"+id+".m4a"),
		FinalPath:        filepath.Join(p.dir, "track-"+id+".ogg"),
		Stage:            StageFetching,
	}
}

func removeQuiet(log *slog.Logger, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn("Could not remove artifact", "path", path, "error", err)
	}
}
