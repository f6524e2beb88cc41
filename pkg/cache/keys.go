package cache

// Keyer generates cache keys for the pipeline stages. Keys embed every
// option that affects the stage's output, so distinct configurations never
// collide.
type Keyer interface {
	// SnapshotKey identifies a parsed source snapshot.
	SnapshotKey(source, format string) string

	// MatrixKey identifies the closure matrices built from a snapshot under
	// the given options.
	MatrixKey(snapshotHash string, opts MatrixKeyOpts) string

	// ArtifactKey identifies a rendered output of a result matrix.
	ArtifactKey(matrixHash string, opts ArtifactKeyOpts) string
}

// MatrixKeyOpts captures the construction options that shape the closure.
type MatrixKeyOpts struct {
	Mode      string `json:"mode"`
	Reflexive string `json:"reflexive"`
	Scope     string `json:"scope"`
}

// ArtifactKeyOpts captures the rendering options.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	ShortNames bool   `json:"short_names"`
	SelfLoops  bool   `json:"self_loops"`
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SnapshotKey generates a key for snapshot caching.
// Format: snapshot:<format>:<source>
func (k *DefaultKeyer) SnapshotKey(source, format string) string {
	return "snapshot:" + format + ":" + source
}

// MatrixKey generates a key for closure-matrix caching.
func (k *DefaultKeyer) MatrixKey(snapshotHash string, opts MatrixKeyOpts) string {
	return hashKey("matrix", snapshotHash, opts)
}

// ArtifactKey generates a key for rendered-artifact caching.
func (k *DefaultKeyer) ArtifactKey(matrixHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", matrixHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
