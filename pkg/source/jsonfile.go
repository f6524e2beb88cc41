package source

import (
	"context"
	"encoding/json"
	"os"

	"github.com/matzehuels/ontomat/pkg/errors"
	"github.com/matzehuels/ontomat/pkg/hierarchy"
)

// JSONFile loads a snapshot from a JSON file on each Load call, so a
// provider can be constructed before the file exists. Implements
// [hierarchy.Provider] and [hierarchy.Materializer].
type JSONFile struct {
	path string
}

// NewJSONFile creates a provider reading from path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the backing file path.
func (f *JSONFile) Path() string { return f.path }

func (f *JSONFile) read() (Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeSourceLoad, err, "read snapshot %s", f.path)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeSourceLoad, err, "parse snapshot %s", f.path)
	}
	return snap, nil
}

// Load reads and parses the snapshot file.
func (f *JSONFile) Load(context.Context) ([]string, []hierarchy.Edge, error) {
	snap, err := f.read()
	if err != nil {
		return nil, nil, err
	}
	return snap.Classes, snap.Edges, nil
}

// Materialize reads the snapshot's entailed edges, falling back to the
// asserted edges when none are recorded.
func (f *JSONFile) Materialize(context.Context) ([]hierarchy.Edge, error) {
	snap, err := f.read()
	if err != nil {
		return nil, err
	}
	if len(snap.Entailed) == 0 {
		return snap.Edges, nil
	}
	return snap.Entailed, nil
}

// WriteJSON stores a snapshot as an indented JSON file, the inverse of
// [NewJSONFile]. Used by the CLI to export extracted hierarchies.
func WriteJSON(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode snapshot")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write snapshot %s", path)
	}
	return nil
}
