package models

// FriendKind discriminates the three shapes a friend-page row can take.
// The kind is decided where the data is fetched, never inferred later
// from which fields happen to be set.
type FriendKind string

const (
	KindFriend          FriendKind = "friend"
	KindSearchResult    FriendKind = "searchResult"
	KindReceivedRequest FriendKind = "receivedRequest"
)

// FriendListItem is a tagged row for the friends UI: an accepted friend,
// a user found by search, or a pending received request.
type FriendListItem struct {
	Kind         FriendKind `json:"kind"`
	UserID       string     `json:"userId"`
	Name         string     `json:"name"`
	ProfileImage string     `json:"profileImage,omitempty"`

	// Set only for Kind == KindReceivedRequest.
	FriendshipID string `json:"friendshipId,omitempty"`
	RequestDate  string `json:"requestDate,omitempty"`
}
