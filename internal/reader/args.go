package reader

// Format values accepted by the format argument.
const (
	FormatJSON   = "json"
	FormatStream = "stream"
)

// ReadURLArgs contains parameters for the read_url tool.
// Pointer fields distinguish an absent value from a zero value.
type ReadURLArgs struct {
	URL               string   `json:"url"`
	NoCache           bool     `json:"no_cache,omitempty"`
	Format            string   `json:"format,omitempty"`
	Timeout           *float64 `json:"timeout,omitempty"`
	TargetSelector    *string  `json:"target_selector,omitempty"`
	WaitForSelector   *string  `json:"wait_for_selector,omitempty"`
	RemoveSelector    *string  `json:"remove_selector,omitempty"`
	WithLinksSummary  bool     `json:"with_links_summary,omitempty"`
	WithImagesSummary bool     `json:"with_images_summary,omitempty"`
	WithGeneratedAlt  bool     `json:"with_generated_alt,omitempty"`
	WithIframe        bool     `json:"with_iframe,omitempty"`
}

// Accept returns the content type requested from the reader.
// Anything other than "stream" negotiates JSON.
func (a ReadURLArgs) Accept() string {
	if a.Format == FormatStream {
		return AcceptEventStream
	}
	return AcceptJSON
}
