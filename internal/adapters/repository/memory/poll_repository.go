package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"ovozbot/internal/core/domain"
	"ovozbot/internal/core/ports"
)

type pollRepository struct {
	mu        sync.Mutex
	seq       int
	polls     map[string]*domain.Poll
	ledgers   map[string]map[int64]struct{}
	byCreator map[int64][]string
}

func NewPollRepository() ports.PollRepository {
	return &pollRepository{
		polls:     make(map[string]*domain.Poll),
		ledgers:   make(map[string]map[int64]struct{}),
		byCreator: make(map[int64][]string),
	}
}

func (r *pollRepository) Create(ctx context.Context, poll *domain.Poll) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	id := strconv.Itoa(r.seq)

	stored := clonePoll(poll)
	stored.ID = id
	stored.Tally = make(map[string]int, len(stored.Options))
	for _, opt := range stored.Options {
		stored.Tally[opt] = 0
	}

	r.polls[id] = stored
	r.ledgers[id] = make(map[int64]struct{})
	r.byCreator[stored.CreatorID] = append(r.byCreator[stored.CreatorID], id)
	return id, nil
}

func (r *pollRepository) GetByID(ctx context.Context, id string) (*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	poll, ok := r.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	return clonePoll(poll), nil
}

func (r *pollRepository) All(ctx context.Context) ([]*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Poll, 0, len(r.polls))
	for _, poll := range r.polls {
		out = append(out, clonePoll(poll))
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i].ID)
		b, _ := strconv.Atoi(out[j].ID)
		return a < b
	})
	return out, nil
}

func (r *pollRepository) ByCreator(ctx context.Context, creatorID int64) ([]*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.byCreator[creatorID]
	out := make([]*domain.Poll, 0, len(ids))
	for _, id := range ids {
		if poll, ok := r.polls[id]; ok {
			out = append(out, clonePoll(poll))
		}
	}
	return out, nil
}

func (r *pollRepository) SetActive(ctx context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	poll, ok := r.polls[id]
	if !ok {
		return domain.ErrPollNotFound
	}
	poll.Active = active
	return nil
}

func (r *pollRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	poll, ok := r.polls[id]
	if !ok {
		return domain.ErrPollNotFound
	}

	delete(r.polls, id)
	delete(r.ledgers, id)

	ids := r.byCreator[poll.CreatorID]
	for i, pid := range ids {
		if pid == id {
			r.byCreator[poll.CreatorID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (r *pollRepository) RecordVote(ctx context.Context, pollID, option string, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	poll, ok := r.polls[pollID]
	if !ok {
		return domain.ErrPollNotFound
	}
	if !poll.Active {
		return domain.ErrPollInactive
	}
	if _, ok := poll.Tally[option]; !ok {
		return domain.ErrInvalidOption
	}

	ledger := r.ledgers[pollID]
	if _, voted := ledger[userID]; voted {
		return domain.ErrAlreadyVoted
	}

	ledger[userID] = struct{}{}
	poll.Tally[option]++
	return nil
}

func (r *pollRepository) HasVoted(ctx context.Context, pollID string, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ledger, ok := r.ledgers[pollID]
	if !ok {
		return false, domain.ErrPollNotFound
	}
	_, voted := ledger[userID]
	return voted, nil
}

func (r *pollRepository) VoteCount(ctx context.Context, pollID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ledger, ok := r.ledgers[pollID]
	if !ok {
		return 0, domain.ErrPollNotFound
	}
	return len(ledger), nil
}

func (r *pollRepository) TotalVotes(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, ledger := range r.ledgers {
		total += len(ledger)
	}
	return total, nil
}

// clonePoll deep-copies a poll so callers never share memory with the store.
func clonePoll(poll *domain.Poll) *domain.Poll {
	out := *poll
	out.Options = append([]string(nil), poll.Options...)
	if poll.Tally != nil {
		out.Tally = make(map[string]int, len(poll.Tally))
		for opt, n := range poll.Tally {
			out.Tally[opt] = n
		}
	}
	return &out
}
