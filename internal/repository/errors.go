// Package repository defines the contracts between the HTTP layer and
// the store, plus the sentinel errors shared across them. Every
// sentinel carries one of the two apperr kinds, so handlers can map a
// failure to a status code without knowing which operation raised it.
package repository

import "github.com/lalith-99/flocknest/internal/apperr"

// Input-kind errors: the request referenced something malformed or
// nonexistent.
var (
	ErrDuplicateEmail     = apperr.Input("email already registered")
	ErrDuplicateHandle    = apperr.Input("handle already taken")
	ErrUnknownUser        = apperr.Input("user does not exist")
	ErrUnknownChannel     = apperr.Input("channel does not exist")
	ErrUnknownMessage     = apperr.Input("message does not exist")
	ErrInvalidChannelName = apperr.Input("channel name must be between 1 and 20 characters")
	ErrMessageTooLong     = apperr.Input("message exceeds 1000 characters")
	ErrEmptyQuery         = apperr.Input("search query is empty")
	ErrPageOutOfRange     = apperr.Input("start exceeds the channel's message count")
	ErrAlreadyOwner       = apperr.Input("user is already an owner of this channel")
	ErrNotAnOwner         = apperr.Input("user is not an owner of this channel")
	ErrWrongCredentials   = apperr.Input("invalid email or password")
	ErrInvalidPermission  = apperr.Input("unknown permission level")
)

// Access-kind errors: the resource exists but the caller is not
// permitted.
var (
	ErrAlreadyLoggedIn = apperr.Access("user already has an active session")
	ErrInvalidSession  = apperr.Access("invalid session token")
	ErrNotAMember      = apperr.Access("user is not a member of this channel")
	ErrPrivateChannel  = apperr.Access("channel is private")
	ErrNotAuthorized   = apperr.Access("operation requires owner rights")
	ErrProtectedOwner  = apperr.Access("the first owner cannot be demoted")
)
