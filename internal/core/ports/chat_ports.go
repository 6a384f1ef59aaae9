package ports

import "context"

type MembershipStatus string

const (
	StatusMember        MembershipStatus = "member"
	StatusAdministrator MembershipStatus = "administrator"
	StatusCreator       MembershipStatus = "creator"
	StatusRestricted    MembershipStatus = "restricted"
	StatusLeft          MembershipStatus = "left"
	StatusKicked        MembershipStatus = "kicked"
)

// Qualifies reports whether the status counts as channel membership for
// gating purposes.
func (s MembershipStatus) Qualifies() bool {
	switch s {
	case StatusMember, StatusAdministrator, StatusCreator:
		return true
	}
	return false
}

// MessageRef identifies a message already stored by the chat platform so it
// can be copied to other users without re-uploading its content.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// ChatTransport is the outbound capability of the chat platform. All calls
// are fallible network I/O; callers must not hold store locks across them.
type ChatTransport interface {
	SendText(ctx context.Context, userID int64, text string) error
	SendMedia(ctx context.Context, userID int64, mediaRef, caption string) error
	GetMembership(ctx context.Context, channel string, userID int64) (MembershipStatus, error)
	CopyMessageToUser(ctx context.Context, userID int64, msg MessageRef) error
}
