package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"ovozbot/internal/core/domain"
	"ovozbot/internal/core/ports"
)

// CancelCommand aborts announcement authoring.
const CancelCommand = "/cancel"

type conversationService struct {
	convs     ports.ConversationRepository
	polls     ports.PollService
	admins    ports.AdminRegistry
	channels  ports.ChannelRegistry
	broadcast ports.BroadcastService
	logger    *zap.Logger
}

func NewConversationService(
	convs ports.ConversationRepository,
	polls ports.PollService,
	admins ports.AdminRegistry,
	channels ports.ChannelRegistry,
	broadcast ports.BroadcastService,
	logger *zap.Logger,
) ports.ConversationService {
	return &conversationService{
		convs:     convs,
		polls:     polls,
		admins:    admins,
		channels:  channels,
		broadcast: broadcast,
		logger:    logger,
	}
}

func (s *conversationService) State(ctx context.Context, userID int64) domain.ConversationState {
	return s.convs.Get(ctx, userID).State
}

func (s *conversationService) Begin(ctx context.Context, userID int64, state domain.ConversationState) ports.Reply {
	// Entering a flow overwrites whatever flow was active; there is no nesting.
	s.convs.Set(ctx, userID, domain.Conversation{State: state})

	switch state {
	case domain.StateAwaitingPollTitle:
		return ports.Reply{Kind: ports.ReplyPromptTitle}
	case domain.StateAwaitingNewAdminID:
		return ports.Reply{Kind: ports.ReplyPromptNewAdminID}
	case domain.StateAwaitingAdminRemovalID:
		return ports.Reply{Kind: ports.ReplyPromptRemovalAdminID}
	case domain.StateAwaitingNewChannel:
		return ports.Reply{Kind: ports.ReplyPromptChannel}
	case domain.StateAwaitingAnnouncement:
		return ports.Reply{Kind: ports.ReplyPromptAnnouncement}
	}
	return ports.Reply{Kind: ports.ReplyNone}
}

func (s *conversationService) HandleMessage(ctx context.Context, msg ports.IncomingMessage) (ports.Reply, error) {
	conv := s.convs.Get(ctx, msg.UserID)

	switch conv.State {
	case domain.StateAwaitingPollTitle:
		return s.handleTitle(ctx, msg, conv), nil
	case domain.StateAwaitingPollImage:
		return s.handleImage(ctx, msg, conv), nil
	case domain.StateAwaitingPollOptions:
		return s.handleOptions(ctx, msg, conv)
	case domain.StateAwaitingNewAdminID:
		return s.handleNewAdmin(ctx, msg), nil
	case domain.StateAwaitingAdminRemovalID:
		return s.handleAdminRemoval(ctx, msg), nil
	case domain.StateAwaitingNewChannel:
		return s.handleNewChannel(ctx, msg), nil
	case domain.StateAwaitingAnnouncement:
		return s.handleAnnouncement(ctx, msg), nil
	}
	return ports.Reply{Kind: ports.ReplyNone}, nil
}

func (s *conversationService) handleTitle(ctx context.Context, msg ports.IncomingMessage, conv domain.Conversation) ports.Reply {
	title := strings.TrimSpace(msg.Text)
	if title == "" || len([]rune(title)) > domain.MaxTitleLen {
		// State kept: the user retries within the same flow.
		return ports.Reply{Kind: ports.ReplyTitleTooLong}
	}

	conv.Draft.Title = title
	conv.State = domain.StateAwaitingPollImage
	s.convs.Set(ctx, msg.UserID, conv)
	return ports.Reply{Kind: ports.ReplyPromptImage}
}

func (s *conversationService) handleImage(ctx context.Context, msg ports.IncomingMessage, conv domain.Conversation) ports.Reply {
	switch {
	case msg.MediaRef != "":
		conv.Draft.MediaRef = msg.MediaRef
	case strings.EqualFold(strings.TrimSpace(msg.Text), "skip"):
		conv.Draft.MediaRef = ""
	default:
		return ports.Reply{Kind: ports.ReplyPromptImage}
	}

	conv.State = domain.StateAwaitingPollOptions
	s.convs.Set(ctx, msg.UserID, conv)
	return ports.Reply{Kind: ports.ReplyPromptOptions}
}

func (s *conversationService) handleOptions(ctx context.Context, msg ports.IncomingMessage, conv domain.Conversation) (ports.Reply, error) {
	poll, err := s.polls.Create(ctx, ports.CreatePollInput{
		Title:     conv.Draft.Title,
		MediaRef:  conv.Draft.MediaRef,
		Options:   strings.Split(msg.Text, ","),
		CreatorID: msg.UserID,
	})
	if errors.Is(err, domain.ErrValidation) {
		return ports.Reply{Kind: ports.ReplyBadOptionCount}, nil
	}
	if err != nil {
		return ports.Reply{}, err
	}

	s.convs.Clear(ctx, msg.UserID)
	return ports.Reply{Kind: ports.ReplyPollCreated, PollID: poll.ID}, nil
}

func (s *conversationService) handleNewAdmin(ctx context.Context, msg ports.IncomingMessage) ports.Reply {
	id, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
	if err != nil {
		return ports.Reply{Kind: ports.ReplyBadID}
	}

	if err := s.admins.Add(ctx, id); errors.Is(err, domain.ErrDuplicate) {
		s.convs.Clear(ctx, msg.UserID)
		return ports.Reply{Kind: ports.ReplyDuplicateAdmin, AdminID: id}
	}

	s.logger.Info("admin added", zap.Int64("admin_id", id), zap.Int64("by", msg.UserID))
	s.convs.Clear(ctx, msg.UserID)
	return ports.Reply{Kind: ports.ReplyAdminAdded, AdminID: id}
}

func (s *conversationService) handleAdminRemoval(ctx context.Context, msg ports.IncomingMessage) ports.Reply {
	id, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
	if err != nil {
		return ports.Reply{Kind: ports.ReplyBadID}
	}

	reply := ports.Reply{AdminID: id}
	switch {
	case id == msg.UserID:
		reply.Kind = ports.ReplySelfRemoval
	default:
		switch err := s.admins.Remove(ctx, id); {
		case errors.Is(err, domain.ErrAdminNotFound):
			reply.Kind = ports.ReplyAdminNotFound
		case errors.Is(err, domain.ErrLastAdmin):
			reply.Kind = ports.ReplyLastAdmin
		default:
			s.logger.Info("admin removed", zap.Int64("admin_id", id), zap.Int64("by", msg.UserID))
			reply.Kind = ports.ReplyAdminRemoved
		}
	}

	s.convs.Clear(ctx, msg.UserID)
	return reply
}

func (s *conversationService) handleNewChannel(ctx context.Context, msg ports.IncomingMessage) ports.Reply {
	channel := NormalizeChannel(msg.Text)
	if channel == "@" {
		return ports.Reply{Kind: ports.ReplyBadID}
	}

	reply := ports.Reply{Channel: channel}
	if err := s.channels.Add(ctx, channel); errors.Is(err, domain.ErrDuplicate) {
		reply.Kind = ports.ReplyDuplicateChannel
	} else {
		s.logger.Info("channel added", zap.String("channel", channel), zap.Int64("by", msg.UserID))
		reply.Kind = ports.ReplyChannelAdded
	}

	s.convs.Clear(ctx, msg.UserID)
	return reply
}

func (s *conversationService) handleAnnouncement(ctx context.Context, msg ports.IncomingMessage) ports.Reply {
	if strings.TrimSpace(msg.Text) == CancelCommand {
		s.convs.Clear(ctx, msg.UserID)
		return ports.Reply{Kind: ports.ReplyAnnouncementCancelled}
	}

	recipients, err := s.broadcast.Start(ctx, msg.Ref, msg.UserID)
	if errors.Is(err, domain.ErrBroadcastBusy) {
		// State kept so the admin can resend once the running fan-out reports.
		return ports.Reply{Kind: ports.ReplyBroadcastBusy}
	}

	s.convs.Clear(ctx, msg.UserID)
	if recipients == 0 {
		return ports.Reply{Kind: ports.ReplyNoRecipients}
	}
	return ports.Reply{Kind: ports.ReplyAnnouncementStarted, Recipients: recipients}
}

// NormalizeChannel trims a channel name and guarantees the leading @.
func NormalizeChannel(channel string) string {
	channel = strings.TrimSpace(channel)
	if !strings.HasPrefix(channel, "@") {
		channel = "@" + channel
	}
	return channel
}
