package models

// Photo belongs to exactly one TravelRecord. Tags is an
// insertion-ordered set; duplicates are rejected at mutation time.
type Photo struct {
	ID             string   `json:"id"`
	TravelRecordID string   `json:"travelRecordId,omitempty"`
	Src            string   `json:"src"` // data URI or remote URL
	Title          string   `json:"title,omitempty"`
	Date           string   `json:"date,omitempty"`
	Location       string   `json:"location,omitempty"`
	Tags           []string `json:"tags"`
	IsFavorite     bool     `json:"isFavorite"`
	Description    string   `json:"description,omitempty"`
}

// Clone returns a copy with its own tag slice. An empty tag set stays
// non-nil so it serializes as [] rather than null.
func (p Photo) Clone() Photo {
	out := p
	if p.Tags != nil {
		out.Tags = append(make([]string, 0, len(p.Tags)), p.Tags...)
	}
	return out
}

// HasTag reports whether tag is already in the set.
func (p Photo) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
