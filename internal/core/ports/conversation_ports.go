package ports

import (
	"context"

	"ovozbot/internal/core/domain"
)

type ConversationRepository interface {
	Get(ctx context.Context, userID int64) domain.Conversation
	Set(ctx context.Context, userID int64, conv domain.Conversation)
	Clear(ctx context.Context, userID int64)
}

// IncomingMessage is one text or media event from a user, tagged with the
// platform reference needed to copy it verbatim during a broadcast.
type IncomingMessage struct {
	UserID   int64
	Text     string
	MediaRef string
	Ref      MessageRef
}

// ReplyKind enumerates every outcome the conversation engine can produce.
// Rendering the kinds into user-visible text is the transport adapter's job.
type ReplyKind int

const (
	ReplyNone ReplyKind = iota
	ReplyPromptTitle
	ReplyTitleTooLong
	ReplyPromptImage
	ReplyPromptOptions
	ReplyBadOptionCount
	ReplyPollCreated
	ReplyPromptNewAdminID
	ReplyPromptRemovalAdminID
	ReplyPromptChannel
	ReplyPromptAnnouncement
	ReplyBadID
	ReplyAdminAdded
	ReplyDuplicateAdmin
	ReplyAdminRemoved
	ReplyAdminNotFound
	ReplySelfRemoval
	ReplyLastAdmin
	ReplyChannelAdded
	ReplyDuplicateChannel
	ReplyAnnouncementStarted
	ReplyAnnouncementCancelled
	ReplyBroadcastBusy
	ReplyNoRecipients
)

type Reply struct {
	Kind       ReplyKind
	PollID     string
	AdminID    int64
	Channel    string
	Recipients int
}

// ConversationService drives the per-user state machine. Begin enters a new
// flow (overwriting any active one) and returns the opening prompt;
// HandleMessage advances the active flow with an inbound event.
type ConversationService interface {
	State(ctx context.Context, userID int64) domain.ConversationState
	Begin(ctx context.Context, userID int64, state domain.ConversationState) Reply
	HandleMessage(ctx context.Context, msg IncomingMessage) (Reply, error)
}
