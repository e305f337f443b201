package cache

// keyVersion is mixed into every hashed key; bump it when the layout or
// artifact encoding changes.
const keyVersion = 1

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of the diagram laid out from sizes.
	LayoutKey(sizes string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists the settings that change a layout.
type LayoutKeyOpts struct {
	Scale          float64 `json:"scale"`
	MinRadius      float64 `json:"min_radius"`
	MaxIterations  int     `json:"max_iterations"`
	Tolerance      float64 `json:"tolerance"`
	Grid           int     `json:"grid"`
	SetLabelOffset float64 `json:"set_label_offset"`
}

// ArtifactKeyOpts lists the settings that change a rendered output.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	StyleHash   string  `json:"style_hash"`
	Interactive bool    `json:"interactive,omitempty"`
	Title       string  `json:"title,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(sizes string, opts LayoutKeyOpts) string {
	return hashKey("layout", keyVersion, sizes, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", keyVersion, layoutHash, opts)
}
