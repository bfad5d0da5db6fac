package audit

import (
	"context"
	"fmt"
	"os"
)

// Sink persists one complete JSON line per call. Implementations must append
// atomically: a reader may never observe a partial or interleaved line.
type Sink interface {
	Append(ctx context.Context, line []byte) error
}

// FileSink appends lines to a single JSONL file. The file is opened,
// appended to, and closed per write; no handle outlives a request. Each line
// goes out in one Write on an O_APPEND descriptor, which is what keeps
// concurrent appends from interleaving.
type FileSink struct {
	path string
}

// NewFileSink builds a sink for the given path. The file is created lazily
// on first append.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Append writes line plus a trailing newline as a single write call.
func (s *FileSink) Append(_ context.Context, line []byte) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open audit log %s: %w", s.path, err)
	}
	defer f.Close()

	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')
	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("append audit log %s: %w", s.path, err)
	}
	return nil
}
