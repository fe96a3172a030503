package response_models

type MarkerPageResponse struct {
	RecordID string `json:"record_id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Memo     string `json:"memo,omitempty"`
	Location string `json:"location,omitempty"`
	Country  string `json:"country,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Position string `json:"position"` // e.g. "2/5"
}

type MarkerResponse struct {
	ID        string               `json:"id"`
	Latitude  float64              `json:"lat"`
	Longitude float64              `json:"lng"`
	Count     int                  `json:"count"`
	Label     string               `json:"label"`
	Pages     []MarkerPageResponse `json:"pages"`
}
