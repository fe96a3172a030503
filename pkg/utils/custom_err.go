package utils

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrRecordNotFound     = errors.New("travel record not found")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrDuplicateTag       = errors.New("tag already present")
	ErrStorageWrite       = errors.New("storage write failed")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrFriendNotFound     = errors.New("friend not found")
	ErrRequestNotFound    = errors.New("friend request not found")
)
