package models

// User is one registered identity. The password hash travels with the
// slot snapshot but is stripped from API responses by the response
// models.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	CreatedAt    int64  `json:"createdAt"`
	UpdatedAt    int64  `json:"updatedAt"`
}
