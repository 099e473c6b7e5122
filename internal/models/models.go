package models

import "time"

// Permission is a user's global permission level. It is distinct from
// channel ownership: a channel owner moderates one channel, a global
// Owner can moderate any channel and change permission levels.
type Permission int

const (
	PermOwner  Permission = 1
	PermMember Permission = 2
)

// Valid reports whether p is one of the defined levels.
func (p Permission) Valid() bool {
	return p == PermOwner || p == PermMember
}

// User is a registered account.
//
// The first user ever registered is the "first owner": they hold
// PermOwner forever and can never be demoted, not even by themselves.
// The store tracks which user that is; the record itself stays plain.
//
// PasswordHash carries the bcrypt hash produced by the HTTP layer —
// the core never sees a plaintext password. json:"-" keeps the hash
// out of every response body.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Handle       string     `json:"handle"`
	Perm         Permission `json:"permission"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Channel is a chat room. Owners are always a subset of members;
// every mutation in the store maintains that invariant, so reading
// code may rely on it. ID slices are kept in insertion order so
// member listings are stable.
type Channel struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsPublic  bool      `json:"is_public"`
	OwnerIDs  []int64   `json:"owner_ids"`
	MemberIDs []int64   `json:"member_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// HasMember reports whether the user belongs to the channel.
func (c *Channel) HasMember(userID int64) bool {
	return containsID(c.MemberIDs, userID)
}

// HasOwner reports whether the user owns the channel.
func (c *Channel) HasOwner(userID int64) bool {
	return containsID(c.OwnerIDs, userID)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ChannelSummary is the listing shape: just enough to render a sidebar.
type ChannelSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Message is a single chat message.
//
// Why int64 for ID (not UUID)?
//   - Message IDs come from one global counter, so a higher ID always
//     means a later message — across every channel, not per channel.
//     That total order is load-bearing: clients sort and deduplicate
//     by it, and IDs are never reused even after a remove.
type Message struct {
	ID        int64     `json:"id"`
	ChannelID int64     `json:"channel_id"`
	AuthorID  int64     `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// MessagePage is one window of a channel's history, newest first.
// End is Start+PageSize, or -1 when the window reached the oldest
// message in the channel.
type MessagePage struct {
	Messages []Message `json:"messages"`
	Start    int       `json:"start"`
	End      int       `json:"end"`
}
