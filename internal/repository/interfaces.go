package repository

import "github.com/lalith-99/flocknest/internal/models"

// Why no context.Context on these methods?
//
//   - Every operation runs to completion against in-process state under
//     one lock; there is no I/O to cancel and no mid-operation suspend
//     point. A context here would promise cancellation semantics the
//     store cannot honor.

// TokenMinter produces the session token for a freshly authenticated
// user. The HTTP layer supplies it (it owns the signing secret); the
// session registry calls it while holding the store lock so "mint and
// record" is one atomic step.
type TokenMinter func(u *models.User) (string, error)

// PasswordCheck verifies a candidate password against the stored hash.
// The HTTP layer supplies it as a closure over the plaintext, so the
// core never sees a password — only the verdict.
type PasswordCheck func(passwordHash string) bool

// ProfileUpdate carries the profile fields to change. Nil means
// "leave as is". Email and handle uniqueness are re-checked on change.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Handle    *string
}

// ChannelDetails is the full view of one channel, including resolved
// user records for owners and members.
type ChannelDetails struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	IsPublic bool          `json:"is_public"`
	Owners   []models.User `json:"owners"`
	Members  []models.User `json:"members"`
}

// IdentityRepository is the sole authority for user records and
// permission levels.
type IdentityRepository interface {
	// Register creates a user. The first registered user becomes the
	// permanently protected first owner; everyone else is a Member.
	// Fails with ErrDuplicateEmail on a known (case-insensitive) email.
	Register(email, passwordHash, firstName, lastName string) (*models.User, error)

	// SetPermission changes a user's global permission level. Only a
	// global Owner may call it, and the first owner can never be
	// demoted — by anyone, including themselves.
	SetPermission(actorID, targetID int64, perm models.Permission) error

	// FindByEmail looks a user up by normalized email. Absence is a
	// normal result, not an error.
	FindByEmail(email string) (*models.User, bool)

	// FindByID looks a user up by ID. Absence is a normal result.
	FindByID(id int64) (*models.User, bool)

	// UpdateProfile mutates name/email/handle, re-checking email and
	// handle uniqueness, and returns the updated record.
	UpdateProfile(userID int64, upd ProfileUpdate) (*models.User, error)
}

// SessionRepository maps opaque tokens to identities. It is the sole
// authority for token validity: a logged-out token never resolves
// again, whatever its embedded expiry says.
type SessionRepository interface {
	// Login authenticates by email and records a new session. A user
	// has at most one active session: a second login fails with
	// ErrAlreadyLoggedIn while the first is still open.
	Login(email string, check PasswordCheck, mint TokenMinter) (string, error)

	// RegisterAndLogin composes registration with immediate session
	// creation, atomically.
	RegisterAndLogin(email, passwordHash, firstName, lastName string, mint TokenMinter) (*models.User, string, error)

	// Logout invalidates the token and reports whether a session was
	// actually removed. Unknown tokens are a false, never an error.
	Logout(token string) bool

	// Resolve returns the user ID behind an active session token, or
	// ErrInvalidSession. This is the authentication gate every
	// privileged operation passes through first.
	Resolve(token string) (int64, error)
}

// ChannelRepository owns channel records: membership, ownership and
// the per-channel message log.
type ChannelRepository interface {
	// Create makes a channel (name 1–20 chars) with the creator as
	// both member and owner.
	Create(creatorID int64, name string, isPublic bool) (*models.Channel, error)

	// Join adds the user as a member. Private channels reject anyone
	// who is not already an owner; joining twice is a no-op.
	Join(userID, channelID int64) error

	// Invite adds target as a member, regardless of visibility. The
	// actor must already be a member.
	Invite(actorID, channelID, targetID int64) error

	// Leave removes the user from both the member and owner sets. The
	// last owner leaving leaves the channel with zero owners.
	Leave(userID, channelID int64) error

	// AddOwner promotes target to channel owner (adding them as a
	// member first if needed). Actor must be a channel owner or a
	// global Owner.
	AddOwner(actorID, channelID, targetID int64) error

	// RemoveOwner demotes target from channel owner; they stay a
	// member. Same authorization as AddOwner.
	RemoveOwner(actorID, channelID, targetID int64) error

	// ListForUser returns the channels the user belongs to, in
	// creation order.
	ListForUser(userID int64) []models.ChannelSummary

	// ListAll returns every channel regardless of membership or
	// visibility. Content stays gated at the message level.
	ListAll() []models.ChannelSummary

	// Details returns the full channel view, gated on view rights.
	Details(userID, channelID int64) (*ChannelDetails, error)
}

// MessageRepository appends to and reads from channel message logs.
type MessageRepository interface {
	// Send posts a message (≤1000 chars) and returns it with its
	// globally unique, monotonically increasing ID.
	Send(userID, channelID int64, text string) (*models.Message, error)

	// Edit replaces a message's text; empty text deletes it instead.
	// Channel owners and global Owners only.
	Edit(userID, messageID int64, text string) error

	// Remove deletes a message. Channel owners and global Owners only;
	// a global Owner may remove messages in channels they never joined.
	Remove(userID, messageID int64) error

	// Page returns up to 50 messages starting at offset start
	// (0 = most recent).
	Page(userID, channelID int64, start int) (*models.MessagePage, error)

	// Search scans the caller's channels for messages containing query
	// as a case-sensitive substring.
	Search(userID int64, query string) ([]models.Message, error)
}

// Resetter wipes all state, counters included, in one atomic step.
// Exposed to the HTTP layer for the reset-between-test-runs endpoint.
type Resetter interface {
	Reset()
}
