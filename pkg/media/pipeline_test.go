package media

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

type fakeFetcher struct {
	payload string
	err     error
}

func (f *fakeFetcher) Open(context.Context, string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.payload)), nil
}

type fakeTranscoder struct {
	intermediateErr error
	voiceErr        error
}

func (t *fakeTranscoder) Intermediate(_ context.Context, source io.Reader, outPath string) error {
	if t.intermediateErr != nil {
		// simulate a partial artifact left behind by a failed encode
		_ = os.WriteFile(outPath, []byte("partial"), 0o600)
		return t.intermediateErr
	}

	content, err := io.ReadAll(source)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, content, 0o600)
}

func (t *fakeTranscoder) VoiceNote(_ context.Context, inPath string, outPath string) error {
	if t.voiceErr != nil {
		_ = os.WriteFile(outPath, []byte("partial"), 0o600)
		return t.voiceErr
	}

	content, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, content, 0o600)
}

func dirEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	return entries
}

func TestAcquireProducesVoiceNoteAndRemovesIntermediate(t *testing.T) {
	dir := t.TempDir()
	pipeline, err := NewPipeline(dir, &fakeFetcher{payload: "audio-bytes"}, &fakeTranscoder{}, nil)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	path, err := pipeline.Acquire(context.Background(), "https://example.com/song")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if !strings.HasSuffix(path, ".ogg") {
		t.Fatalf("final path = %q, want .ogg suffix", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read final file: %v", err)
	}
	if string(content) != "audio-bytes" {
		t.Fatalf("final content = %q", content)
	}

	entries := dirEntries(t, dir)
	if len(entries) != 1 {
		t.Fatalf("downloads entries = %d, want only the final file", len(entries))
	}

	pipeline.Discard(path)
	if entries := dirEntries(t, dir); len(entries) != 0 {
		t.Fatalf("downloads entries after discard = %d, want 0", len(entries))
	}
}

func TestAcquireFetchFailureLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()
	pipeline, err := NewPipeline(dir, &fakeFetcher{err: errors.New("unreachable")}, &fakeTranscoder{}, nil)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	if _, err := pipeline.Acquire(context.Background(), "https://example.com/song"); err == nil {
		t.Fatal("expected fetch error")
	}
	if entries := dirEntries(t, dir); len(entries) != 0 {
		t.Fatalf("downloads entries = %d, want 0", len(entries))
	}
}

func TestAcquireIntermediateFailureCleansPartials(t *testing.T) {
	dir := t.TempDir()
	trans := &fakeTranscoder{intermediateErr: errors.New("bad stream")}
	pipeline, err := NewPipeline(dir, &fakeFetcher{payload: "x"}, trans, nil)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	if _, err := pipeline.Acquire(context.Background(), "https://example.com/song"); err == nil {
		t.Fatal("expected intermediate error")
	}
	if entries := dirEntries(t, dir); len(entries) != 0 {
		t.Fatalf("downloads entries = %d, want 0", len(entries))
	}
}

func TestAcquireVoiceNoteFailureCleansPartials(t *testing.T) {
	dir := t.TempDir()
	trans := &fakeTranscoder{voiceErr: errors.New("encoder refused")}
	pipeline, err := NewPipeline(dir, &fakeFetcher{payload: "x"}, trans, nil)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	if _, err := pipeline.Acquire(context.Background(), "https://example.com/song"); err == nil {
		t.Fatal("expected voice-note error")
	}
	if entries := dirEntries(t, dir); len(entries) != 0 {
		t.Fatalf("downloads entries = %d, want 0", len(entries))
	}
}

func TestAcquireUnreachableURLWithRealFetcher(t *testing.T) {
	dir := t.TempDir()
	pipeline, err := NewPipeline(dir, NewHTTPFetcher(), &fakeTranscoder{}, nil)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	if _, err := pipeline.Acquire(context.Background(), "http://127.0.0.1:1/nothing"); err == nil {
		t.Fatal("expected error for unreachable url")
	}
	if entries := dirEntries(t, dir); len(entries) != 0 {
		t.Fatalf("downloads entries = %d, want 0", len(entries))
	}
}

func TestHTTPFetcherRejectsNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher()
	if _, err := fetcher.Open(context.Background(), server.URL+"/missing"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestHTTPFetcherStreamsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("stream-data"))
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher()
	stream, err := fetcher.Open(context.Background(), server.URL+"/track")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer stream.Close()

	content, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if string(content) != "stream-data" {
		t.Fatalf("stream content = %q", content)
	}
}

func TestValidateSource(t *testing.T) {
	valid := []string{"http://example.com/a", "https://example.com/a?x=1"}
	for _, source := range valid {
		if err := ValidateSource(source); err != nil {
			t.Fatalf("ValidateSource(%q) = %v, want nil", source, err)
		}
	}

	invalid := []string{"", "   ", "ftp://example.com/a", "not a url", "file:///etc/passwd", "https://"}
	for _, source := range invalid {
		if err := ValidateSource(source); !errors.Is(err, ErrBadSource) {
			t.Fatalf("ValidateSource(%q) = %v, want ErrBadSource", source, err)
		}
	}
}
