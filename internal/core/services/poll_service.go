package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"ovozbot/internal/core/domain"
	"ovozbot/internal/core/ports"
)

type pollService struct {
	repo      ports.PollRepository
	admins    ports.AdminRegistry
	directory ports.UserDirectory
	logger    *zap.Logger
}

func NewPollService(repo ports.PollRepository, admins ports.AdminRegistry, directory ports.UserDirectory, logger *zap.Logger) ports.PollService {
	return &pollService{
		repo:      repo,
		admins:    admins,
		directory: directory,
		logger:    logger,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len([]rune(title)) > domain.MaxTitleLen {
		return nil, fmt.Errorf("%w: title exceeds %d characters", domain.ErrValidation, domain.MaxTitleLen)
	}

	options := make([]string, 0, len(input.Options))
	seen := make(map[string]struct{}, len(input.Options))
	for _, opt := range input.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		if _, dup := seen[opt]; dup {
			return nil, fmt.Errorf("%w: duplicate option %q", domain.ErrValidation, opt)
		}
		seen[opt] = struct{}{}
		options = append(options, opt)
	}
	if len(options) < domain.MinOptions || len(options) > domain.MaxOptions {
		return nil, fmt.Errorf("%w: need between %d and %d options, got %d",
			domain.ErrValidation, domain.MinOptions, domain.MaxOptions, len(options))
	}

	poll := &domain.Poll{
		Title:     title,
		MediaRef:  input.MediaRef,
		Options:   options,
		CreatorID: input.CreatorID,
		CreatedAt: time.Now(),
		Active:    true,
	}

	id, err := s.repo.Create(ctx, poll)
	if err != nil {
		return nil, err
	}

	s.logger.Info("poll created",
		zap.String("poll_id", id),
		zap.Int64("creator_id", input.CreatorID),
		zap.Int("options", len(options)))

	return s.repo.GetByID(ctx, id)
}

func (s *pollService) Get(ctx context.Context, id string) (*domain.Poll, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *pollService) Active(ctx context.Context) ([]*domain.Poll, error) {
	polls, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	active := polls[:0]
	for _, poll := range polls {
		if poll.Active {
			active = append(active, poll)
		}
	}
	return active, nil
}

func (s *pollService) ByCreator(ctx context.Context, creatorID int64) ([]*domain.Poll, error) {
	return s.repo.ByCreator(ctx, creatorID)
}

func (s *pollService) CastVote(ctx context.Context, input ports.CastVoteInput) (*domain.Poll, error) {
	if err := s.repo.RecordVote(ctx, input.PollID, input.Option, input.UserID); err != nil {
		return nil, err
	}

	s.logger.Info("vote recorded",
		zap.String("poll_id", input.PollID),
		zap.Int64("user_id", input.UserID))

	return s.repo.GetByID(ctx, input.PollID)
}

func (s *pollService) HasVoted(ctx context.Context, pollID string, userID int64) (bool, error) {
	return s.repo.HasVoted(ctx, pollID, userID)
}

func (s *pollService) SetActive(ctx context.Context, pollID string, active bool, requesterID int64) error {
	if err := s.authorize(ctx, pollID, requesterID); err != nil {
		return err
	}
	return s.repo.SetActive(ctx, pollID, active)
}

func (s *pollService) Delete(ctx context.Context, pollID string, requesterID int64) error {
	if err := s.authorize(ctx, pollID, requesterID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, pollID); err != nil {
		return err
	}
	s.logger.Info("poll deleted", zap.String("poll_id", pollID), zap.Int64("requester_id", requesterID))
	return nil
}

func (s *pollService) Stats(ctx context.Context, pollID string, requesterID int64) (*domain.PollStats, error) {
	if err := s.authorize(ctx, pollID, requesterID); err != nil {
		return nil, err
	}

	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.VoteCount(ctx, pollID)
	if err != nil {
		return nil, err
	}

	stats := &domain.PollStats{
		ID:         poll.ID,
		Title:      poll.Title,
		MediaRef:   poll.MediaRef,
		Active:     poll.Active,
		CreatedAt:  poll.CreatedAt,
		TotalVotes: total,
	}
	for _, opt := range poll.Options {
		count := poll.Tally[opt]
		pct := 0.0
		if total > 0 {
			pct = float64(count) / float64(total) * 100
		}
		stats.Options = append(stats.Options, domain.OptionCount{
			Option:     opt,
			Count:      count,
			Percentage: pct,
		})
	}
	return stats, nil
}

func (s *pollService) Overview(ctx context.Context) (*domain.Overview, error) {
	polls, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	totalVotes, err := s.repo.TotalVotes(ctx)
	if err != nil {
		return nil, err
	}

	overview := &domain.Overview{
		TotalUsers: s.directory.Count(ctx),
		TotalPolls: len(polls),
		TotalVotes: totalVotes,
	}
	for _, poll := range polls {
		votes, err := s.repo.VoteCount(ctx, poll.ID)
		if err != nil {
			continue
		}
		if poll.Active {
			overview.ActivePolls++
		} else {
			overview.ClosedPolls++
		}
		overview.Polls = append(overview.Polls, domain.PollSummary{
			ID:     poll.ID,
			Title:  poll.Title,
			Active: poll.Active,
			Votes:  votes,
		})
	}
	return overview, nil
}

// authorize allows the poll's creator and any admin.
func (s *pollService) authorize(ctx context.Context, pollID string, requesterID int64) error {
	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return err
	}
	if poll.CreatorID == requesterID || s.admins.Contains(ctx, requesterID) {
		return nil
	}
	return domain.ErrUnauthorized
}
