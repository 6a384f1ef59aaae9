package domain

// ConversationState tags the multi-step flow a user is currently inside.
// A user holds exactly one state; starting a new flow overwrites the old one.
type ConversationState int

const (
	StateIdle ConversationState = iota
	StateAwaitingPollTitle
	StateAwaitingPollImage
	StateAwaitingPollOptions
	StateAwaitingNewAdminID
	StateAwaitingAdminRemovalID
	StateAwaitingNewChannel
	StateAwaitingAnnouncement
)

func (s ConversationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingPollTitle:
		return "awaiting_poll_title"
	case StateAwaitingPollImage:
		return "awaiting_poll_image"
	case StateAwaitingPollOptions:
		return "awaiting_poll_options"
	case StateAwaitingNewAdminID:
		return "awaiting_new_admin_id"
	case StateAwaitingAdminRemovalID:
		return "awaiting_admin_removal_id"
	case StateAwaitingNewChannel:
		return "awaiting_new_channel"
	case StateAwaitingAnnouncement:
		return "awaiting_announcement"
	}
	return "unknown"
}

// PollDraft holds the partial poll collected so far during a creation flow.
type PollDraft struct {
	Title    string
	MediaRef string
}

type Conversation struct {
	State ConversationState
	Draft PollDraft
}
