package domain

import "errors"

var (
	ErrPollNotFound    = errors.New("poll not found")
	ErrPollInactive    = errors.New("poll is closed")
	ErrInvalidOption   = errors.New("invalid option for this poll")
	ErrAlreadyVoted    = errors.New("user has already voted")
	ErrUnauthorized    = errors.New("not allowed for this user")
	ErrValidation      = errors.New("validation failed")
	ErrNotSubscribed   = errors.New("user is not subscribed to required channels")
	ErrBroadcastBusy   = errors.New("a broadcast is already running")
	ErrAdminNotFound   = errors.New("admin not found")
	ErrChannelNotFound = errors.New("channel not found")
	ErrDuplicate       = errors.New("entry already exists")
	ErrSelfRemoval     = errors.New("admins cannot remove themselves")
	ErrLastAdmin       = errors.New("cannot remove the last admin")
)
