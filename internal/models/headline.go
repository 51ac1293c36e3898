package models

// HeadlineRecord is one extracted news item, either as published or translated.
type HeadlineRecord struct {
	Title string  `json:"title"`
	Link  string  `json:"link"`
	Image *string `json:"image,omitempty"`
	Body  string  `json:"body"`
}

// HasImage reports whether a lead image was found.
func (r HeadlineRecord) HasImage() bool {
	return r.Image != nil && *r.Image != ""
}

// HeadlineResponse is the payload of GET /api/get-top-headline.
// Headlines always holds exactly two records: translated first, original second.
type HeadlineResponse struct {
	Headlines [2]HeadlineRecord `json:"headlines"`
}

// NewHeadlineResponse pairs a translated record with its original.
func NewHeadlineResponse(translated, original HeadlineRecord) *HeadlineResponse {
	return &HeadlineResponse{Headlines: [2]HeadlineRecord{translated, original}}
}

// Translated returns the machine-translated record.
func (r *HeadlineResponse) Translated() HeadlineRecord {
	return r.Headlines[0]
}

// Original returns the record as extracted from the site.
func (r *HeadlineResponse) Original() HeadlineRecord {
	return r.Headlines[1]
}
