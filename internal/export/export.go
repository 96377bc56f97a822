// Package export writes a calculator session's history and memory as JSON.
//
//	{
//	  "session": "6f1c...",
//	  "exported_at": "2026-10-15T09:30:00Z",
//	  "memory": 6,
//	  "history": [
//	    {"expression": "Memory M+", "result": 6, "display": "Memory M+ = 6", "time": "..."},
//	    {"expression": "2*3", "result": 6, "display": "2*3 = 6", "time": "..."}
//	  ]
//	}
//
// History is newest first, as shown on screen.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/sjson"

	"github.com/dshills/keycalc/internal/engine"
)

// Snapshot is the exported state of one session.
type Snapshot struct {
	Session    string
	ExportedAt time.Time
	Memory     float64
	History    []engine.Entry
}

// Source is what a snapshot is taken from. *engine.Engine satisfies it.
type Source interface {
	Memory() float64
	History() []engine.Entry
}

// Take captures src for session at now.
func Take(src Source, session string, now time.Time) Snapshot {
	return Snapshot{
		Session:    session,
		ExportedAt: now,
		Memory:     src.Memory(),
		History:    src.History(),
	}
}

// JSON encodes s.
func JSON(s Snapshot) ([]byte, error) {
	doc := []byte(`{}`)
	var err error

	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.SetBytes(doc, path, v)
		}
	}

	set("session", s.Session)
	set("exported_at", s.ExportedAt.UTC().Format(time.RFC3339))
	set("memory", s.Memory)
	if err == nil {
		doc, err = sjson.SetRawBytes(doc, "history", []byte(`[]`))
	}
	for i, e := range s.History {
		prefix := fmt.Sprintf("history.%d.", i)
		set(prefix+"expression", e.Expression)
		set(prefix+"result", e.Result)
		set(prefix+"display", e.String())
		if !e.Time.IsZero() {
			set(prefix+"time", e.Time.UTC().Format(time.RFC3339Nano))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return doc, nil
}

// WriteFile writes s as JSON to path, creating parent directories.
func WriteFile(path string, s Snapshot) error {
	data, err := JSON(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
