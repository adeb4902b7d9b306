package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// SchemaVersion is written into every snapshot envelope.
const SchemaVersion = 1

// envelope is the persisted form of a collection.
type envelope[T any] struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Items   []T       `json:"items"`
}

func encodeSnapshot[T any](items []T, at time.Time) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(envelope[T]{Version: SchemaVersion, SavedAt: at.UTC(), Items: items})
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// decodeSnapshot accepts the versioned envelope and the unversioned bare
// array written by earlier releases.
func decodeSnapshot[T any](data []byte) ([]T, int, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, 0, fmt.Errorf("empty snapshot")
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, 0, fmt.Errorf("unmarshal legacy snapshot: %w", err)
		}
		return items, 0, nil
	}

	var env envelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, 0, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if env.Version > SchemaVersion {
		return nil, env.Version, fmt.Errorf("snapshot version %d is newer than supported %d", env.Version, SchemaVersion)
	}
	return env.Items, env.Version, nil
}
