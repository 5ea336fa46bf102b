package cache

// ChartKeyOpts holds every option that changes rendered output.
type ChartKeyOpts struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Range  string `json:"range"`
	Symbol string `json:"symbol"`
	Type   string `json:"type"`
	Colour bool   `json:"colour"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ChartKey identifies the output of rendering the dataset whose content
	// hash is datasetHash with opts.
	ChartKey(datasetHash string, opts ChartKeyOpts) string
}

// DefaultKeyer produces keys of the form "chart:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ChartKey hashes the dataset hash together with opts.
func (DefaultKeyer) ChartKey(datasetHash string, opts ChartKeyOpts) string {
	return hashKey("chart", datasetHash, opts)
}

var _ Keyer = DefaultKeyer{}
