package envgate

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = "1.0"

// Snapshot errors.
var (
	// ErrNilConfig is returned when CreateSnapshot receives a nil config.
	ErrNilConfig = errors.New("envgate: config is nil")

	// ErrUnsupportedVersion is returned when reading a snapshot with an
	// unknown format version.
	ErrUnsupportedVersion = errors.New("envgate: unsupported snapshot version")
)

// supportedVersions lists snapshot format versions that can be read.
var supportedVersions = map[string]bool{
	"1.0": true,
}

// SnapshotValue is one variable's state inside a snapshot. Server-only
// values are redacted before the snapshot ever exists in memory.
type SnapshotValue struct {
	Value      string `json:"value"`
	Set        bool   `json:"set"`
	Visibility string `json:"visibility"`
	Source     string `json:"source,omitempty"`
}

// ConfigSnapshot is a point-in-time capture of a validated configuration,
// suitable for audit logs or support bundles.
type ConfigSnapshot struct {
	// Version is the snapshot format version (currently "1.0")
	Version string `json:"version"`

	// Timestamp is when the snapshot was created
	Timestamp time.Time `json:"timestamp"`

	// Values maps every covered variable name to its redacted state.
	Values map[string]SnapshotValue `json:"values"`
}

// CreateSnapshot captures the configuration state. Server-only values are
// always redacted; client-exposed values are kept in clear text. The
// snapshot's Timestamp is captured at creation time.
func CreateSnapshot(cfg *Config) (*ConfigSnapshot, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	values := make(map[string]SnapshotValue, len(cfg.order))
	for _, name := range cfg.order {
		v := cfg.values[name]
		sv := SnapshotValue{
			Set:        v.set,
			Visibility: v.visibility.String(),
			Source:     v.source,
		}
		if v.set {
			if v.visibility == VisibilityServer {
				sv.Value = redactedPlaceholder
			} else {
				sv.Value = v.raw
			}
		}
		values[name] = sv
	}

	return &ConfigSnapshot{
		Version:   SnapshotVersion,
		Timestamp: time.Now().UTC(),
		Values:    values,
	}, nil
}

// WriteSnapshot serializes a snapshot to path as JSON. The write is atomic:
// data goes to a randomized temp file in the same directory, then renames
// over the target.
func WriteSnapshot(path string, snap *ConfigSnapshot) error {
	if snap == nil {
		return fmt.Errorf("envgate: snapshot is nil")
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return fmt.Errorf("generate temp name: %w", err)
	}
	tmpPath := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+hex.EncodeToString(suffix))

	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalize snapshot: %w", err)
	}

	return nil
}

// ReadSnapshot loads a snapshot previously written by WriteSnapshot.
func ReadSnapshot(path string) (*ConfigSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var snap ConfigSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}

	if !supportedVersions[snap.Version] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, snap.Version)
	}

	return &snap, nil
}
