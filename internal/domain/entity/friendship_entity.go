package entity

// Friendship is one direction of the symmetric friend relation. The
// repository always inserts both directions of a pair together, so for every
// edge (user, friend) the edge (friend, user) also exists.
type Friendship struct {
	ID       int64
	UserID   int64
	FriendID int64
}
