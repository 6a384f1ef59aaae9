package ports

import (
	"context"

	"ovozbot/internal/core/domain"
)

type PollRepository interface {
	// Create assigns the next id, initializes the tally and an empty ledger,
	// and indexes the poll under its creator.
	Create(ctx context.Context, poll *domain.Poll) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Poll, error)
	All(ctx context.Context) ([]*domain.Poll, error)
	ByCreator(ctx context.Context, creatorID int64) ([]*domain.Poll, error)
	SetActive(ctx context.Context, id string, active bool) error
	// Delete removes the poll, its ledger and its creator-index entry as one unit.
	Delete(ctx context.Context, id string) error
	// RecordVote adds the voter to the ledger and increments the tally under
	// one lock, so no observer can see the two out of sync.
	RecordVote(ctx context.Context, pollID, option string, userID int64) error
	HasVoted(ctx context.Context, pollID string, userID int64) (bool, error)
	VoteCount(ctx context.Context, pollID string) (int, error)
	TotalVotes(ctx context.Context) (int, error)
}

type CreatePollInput struct {
	Title     string
	MediaRef  string
	Options   []string
	CreatorID int64
}

type CastVoteInput struct {
	PollID string
	Option string
	UserID int64
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	Get(ctx context.Context, id string) (*domain.Poll, error)
	Active(ctx context.Context) ([]*domain.Poll, error)
	ByCreator(ctx context.Context, creatorID int64) ([]*domain.Poll, error)
	CastVote(ctx context.Context, input CastVoteInput) (*domain.Poll, error)
	HasVoted(ctx context.Context, pollID string, userID int64) (bool, error)
	SetActive(ctx context.Context, pollID string, active bool, requesterID int64) error
	Delete(ctx context.Context, pollID string, requesterID int64) error
	Stats(ctx context.Context, pollID string, requesterID int64) (*domain.PollStats, error)
	Overview(ctx context.Context) (*domain.Overview, error)
}
