package source

import (
	"context"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ontomat/pkg/errors"
	"github.com/matzehuels/ontomat/pkg/hierarchy"
)

// tomlEdge mirrors hierarchy.Edge for TOML decoding; the edges appear as
// [[edges]] tables with sub/super keys.
type tomlEdge struct {
	Sub   string `toml:"sub"`
	Super string `toml:"super"`
}

type tomlSnapshot struct {
	Classes  []string   `toml:"classes"`
	Edges    []tomlEdge `toml:"edges"`
	Entailed []tomlEdge `toml:"entailed"`
}

// TOMLFile loads a snapshot from a TOML file. Implements
// [hierarchy.Provider] and [hierarchy.Materializer].
type TOMLFile struct {
	path string
}

// NewTOMLFile creates a provider reading from path.
func NewTOMLFile(path string) *TOMLFile {
	return &TOMLFile{path: path}
}

// Path returns the backing file path.
func (f *TOMLFile) Path() string { return f.path }

func (f *TOMLFile) read() (Snapshot, error) {
	var raw tomlSnapshot
	if _, err := toml.DecodeFile(f.path, &raw); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeSourceLoad, err, "parse snapshot %s", f.path)
	}
	return Snapshot{
		Classes:  raw.Classes,
		Edges:    convertEdges(raw.Edges),
		Entailed: convertEdges(raw.Entailed),
	}, nil
}

func convertEdges(in []tomlEdge) []hierarchy.Edge {
	if in == nil {
		return nil
	}
	out := make([]hierarchy.Edge, len(in))
	for i, e := range in {
		out[i] = hierarchy.Edge{Sub: e.Sub, Super: e.Super}
	}
	return out
}

// Load reads and parses the snapshot file.
func (f *TOMLFile) Load(context.Context) ([]string, []hierarchy.Edge, error) {
	snap, err := f.read()
	if err != nil {
		return nil, nil, err
	}
	return snap.Classes, snap.Edges, nil
}

// Materialize reads the snapshot's entailed edges, falling back to the
// asserted edges when none are recorded.
func (f *TOMLFile) Materialize(context.Context) ([]hierarchy.Edge, error) {
	snap, err := f.read()
	if err != nil {
		return nil, err
	}
	if len(snap.Entailed) == 0 {
		return snap.Edges, nil
	}
	return snap.Entailed, nil
}
