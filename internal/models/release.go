package models

// Release is the release-note input together with its display metadata
type Release struct {
	// Name is the release name (e.g., "v1.4.0")
	Name string
	// URL is the release page
	URL string
	// Body is the raw release-note markdown
	Body string
}
