package models

// Coordinate is a WGS84 point as produced by the place search or the
// geolocation source. Records captured without a location carry a nil
// *Coordinate rather than a zero value, so (0,0) stays a real place.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// TravelRecord is one visit event: a pin on the map with its date, memo
// and attached photos. UserID never changes after creation. Photos keep
// insertion order. UpdatedAt advances on every mutation, photo edits
// included.
type TravelRecord struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	Title        string      `json:"title"`
	Date         string      `json:"date"` // calendar date, YYYY-MM-DD
	LocationName string      `json:"location"`
	Coordinate   *Coordinate `json:"coordinate,omitempty"`
	Country      string      `json:"country,omitempty"`
	Memo         string      `json:"memo,omitempty"`
	Photos       []Photo     `json:"photos"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    string      `json:"updatedAt"`
}

// Clone returns a deep copy, detached from the store's internal slices.
func (r TravelRecord) Clone() TravelRecord {
	out := r
	if r.Coordinate != nil {
		c := *r.Coordinate
		out.Coordinate = &c
	}
	out.Photos = make([]Photo, len(r.Photos))
	for i, p := range r.Photos {
		out.Photos[i] = p.Clone()
	}
	return out
}
