package request_models

type CoordinatePayload struct {
	Latitude  float64 `json:"lat" binding:"min=-90,max=90"`
	Longitude float64 `json:"lng" binding:"min=-180,max=180"`
}

type PhotoPayload struct {
	Src         string `json:"src" binding:"required"`
	Title       string `json:"title,omitempty"`
	Date        string `json:"date,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

type CreateRecordRequest struct {
	Title      string             `json:"title" binding:"required"`
	Date       string             `json:"date" binding:"required"` // YYYY-MM-DD
	Location   string             `json:"location"`
	Coordinate *CoordinatePayload `json:"coordinate,omitempty"`
	Country    string             `json:"country,omitempty"`
	Memo       string             `json:"memo,omitempty"`
	Photos     []PhotoPayload     `json:"photos,omitempty"`
}

// UpdateRecordRequest merges only the fields that are present.
type UpdateRecordRequest struct {
	Title      *string            `json:"title,omitempty"`
	Date       *string            `json:"date,omitempty"`
	Location   *string            `json:"location,omitempty"`
	Coordinate *CoordinatePayload `json:"coordinate,omitempty"`
	Country    *string            `json:"country,omitempty"`
	Memo       *string            `json:"memo,omitempty"`
}

type UpdatePhotoDetailsRequest struct {
	Title       *string   `json:"title,omitempty"`
	Date        *string   `json:"date,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

type FavoriteRequest struct {
	IsFavorite *bool `json:"is_favorite" binding:"required"`
}

type TagRequest struct {
	Tag string `json:"tag" binding:"required"`
}
