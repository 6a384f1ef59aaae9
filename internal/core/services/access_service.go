package services

import (
	"context"

	"go.uber.org/zap"

	"ovozbot/internal/core/ports"
)

type accessService struct {
	transport ports.ChatTransport
	admins    ports.AdminRegistry
	channels  ports.ChannelRegistry
	logger    *zap.Logger
}

func NewAccessService(transport ports.ChatTransport, admins ports.AdminRegistry, channels ports.ChannelRegistry, logger *zap.Logger) ports.AccessService {
	return &accessService{
		transport: transport,
		admins:    admins,
		channels:  channels,
		logger:    logger,
	}
}

// IsSubscribed checks membership in every gating channel. The first
// transport error or non-qualifying status fails the whole check.
func (s *accessService) IsSubscribed(ctx context.Context, userID int64) bool {
	for _, channel := range s.channels.List(ctx) {
		status, err := s.transport.GetMembership(ctx, channel, userID)
		if err != nil {
			s.logger.Warn("membership check failed",
				zap.String("channel", channel),
				zap.Int64("user_id", userID),
				zap.Error(err))
			return false
		}
		if !status.Qualifies() {
			return false
		}
	}
	return true
}

func (s *accessService) IsAdmin(ctx context.Context, userID int64) bool {
	return s.admins.Contains(ctx, userID)
}
