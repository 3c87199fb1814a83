package models

// Friendship is the directed edge "UserID added FriendID". It grants
// FriendID read access to UserID's notes and says nothing about the
// reverse direction.
type Friendship struct {
	ID       int64 `json:"id"`
	UserID   int64 `json:"userId"`
	FriendID int64 `json:"friendId"`
}
