package log

import (
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerAppendsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "source"+FileExtension)

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	logger.Log(Event{Timestamp: time.Now(), SessionID: "s1"})
	logger.Log(Event{Timestamp: time.Now(), SessionID: "s1"})
	if got := logger.Written(); got != 2 {
		t.Errorf("Written() = %d, want 2", got)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopen appends.
	logger, err = NewFileLogger(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	logger.Log(Event{Timestamp: time.Now(), SessionID: "s2"})
	_ = logger.Close()

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	var sessions []string
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		sessions = append(sessions, ev.SessionID)
	}
	if len(sessions) != 3 || sessions[2] != "s2" {
		t.Errorf("sessions = %v, want [s1 s1 s2]", sessions)
	}
}

func TestFileLoggerCloseIsIdempotent(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "x.clog"))
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	logger.Log(Event{})
	if logger.Written() != 0 {
		t.Error("Log after Close should be ignored")
	}
}

func TestFileLoggerConcurrent(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "c.clog"))
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	defer logger.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				logger.Log(Event{Timestamp: time.Now()})
			}
		}()
	}
	wg.Wait()

	if got := logger.Written(); got != 200 {
		t.Errorf("Written() = %d, want 200", got)
	}
}
