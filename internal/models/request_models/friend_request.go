package request_models

type SendFriendRequest struct {
	UserID string `json:"user_id" binding:"required"`
}
