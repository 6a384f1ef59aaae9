package telegram

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"ovozbot/internal/core/domain"
	"ovozbot/internal/core/ports"
)

// Router decodes inbound Telegram updates into core operations. Callback
// actions go through a verb dispatch table; plain messages feed the
// conversation engine of whoever sent them.
type Router struct {
	transport ports.ChatTransport
	access    ports.AccessService
	polls     ports.PollService
	convo     ports.ConversationService
	admins    ports.AdminRegistry
	channels  ports.ChannelRegistry
	directory ports.UserDirectory
	logger    *zap.Logger

	actions map[string]func(tele.Context, []string) error
}

func NewRouter(
	transport ports.ChatTransport,
	access ports.AccessService,
	polls ports.PollService,
	convo ports.ConversationService,
	admins ports.AdminRegistry,
	channels ports.ChannelRegistry,
	directory ports.UserDirectory,
	logger *zap.Logger,
) *Router {
	r := &Router{
		transport: transport,
		access:    access,
		polls:     polls,
		convo:     convo,
		admins:    admins,
		channels:  channels,
		directory: directory,
		logger:    logger,
	}
	r.actions = map[string]func(tele.Context, []string) error{
		verbNewPoll:       r.cbNewPoll,
		verbMyPolls:       r.cbMyPolls,
		verbVote:          r.cbVote,
		verbSelect:        r.cbSelect,
		verbManage:        r.cbManage,
		verbStats:         r.cbStats,
		verbDeactivate:    r.cbDeactivate,
		verbActivate:      r.cbActivate,
		verbDelete:        r.cbDelete,
		verbAdmins:        r.cbAdmins,
		verbAddAdmin:      r.cbAddAdmin,
		verbRemoveAdmin:   r.cbRemoveAdmin,
		verbListAdmins:    r.cbListAdmins,
		verbChannels:      r.cbChannels,
		verbAddChannel:    r.cbAddChannel,
		verbRemoveChannel: r.cbRemoveChannel,
		verbRemoveCh:      r.cbRemoveCh,
		verbListChannels:  r.cbListChannels,
		verbAnnouncement:  r.cbAnnouncement,
	}
	return r
}

// Register wires the router into the bot's update handlers.
func (r *Router) Register(b *tele.Bot) {
	b.Handle("/start", r.handleStart)
	b.Handle("/cancel", r.handleCancel)
	b.Handle(tele.OnText, r.handleText)
	b.Handle(tele.OnPhoto, r.handlePhoto)
	b.Handle(tele.OnCallback, r.handleCallback)
}

func (r *Router) handleStart(c tele.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID
	r.directory.Register(ctx, userID)

	if !r.access.IsSubscribed(ctx, userID) {
		return c.Send("To use the bot, join the channel(s) below first:",
			joinChannelsKeyboard(r.channels.List(ctx)))
	}

	// Deep link: /start vote_<pollID> jumps straight to that poll.
	if act := parseAction(c.Message().Payload); act.Verb == verbVote && len(act.Args) == 1 {
		return r.sendPollPrompt(ctx, c, act.Args[0], userID)
	}

	if r.access.IsAdmin(ctx, userID) {
		return c.Send("Welcome to the admin panel!", adminPanelKeyboard())
	}

	polls, err := r.polls.Active(ctx)
	if err != nil {
		return err
	}
	if len(polls) == 0 {
		return c.Send("There are no active polls right now.")
	}
	return c.Send("Active polls:", activePollsKeyboard(polls))
}

func (r *Router) handleCancel(c tele.Context) error {
	ctx := context.Background()
	if r.convo.State(ctx, c.Sender().ID) != domain.StateAwaitingAnnouncement {
		return nil
	}
	reply, err := r.convo.HandleMessage(ctx, ports.IncomingMessage{
		UserID: c.Sender().ID,
		Text:   "/cancel",
	})
	if err != nil {
		return err
	}
	return c.Send(replyText(reply))
}

func (r *Router) handleText(c tele.Context) error {
	return r.advanceConversation(c, ports.IncomingMessage{
		UserID: c.Sender().ID,
		Text:   c.Text(),
		Ref:    ports.MessageRef{ChatID: c.Chat().ID, MessageID: c.Message().ID},
	})
}

func (r *Router) handlePhoto(c tele.Context) error {
	return r.advanceConversation(c, ports.IncomingMessage{
		UserID:   c.Sender().ID,
		Text:     c.Message().Caption,
		MediaRef: c.Message().Photo.FileID,
		Ref:      ports.MessageRef{ChatID: c.Chat().ID, MessageID: c.Message().ID},
	})
}

func (r *Router) advanceConversation(c tele.Context, msg ports.IncomingMessage) error {
	ctx := context.Background()
	if r.convo.State(ctx, msg.UserID) == domain.StateIdle {
		return nil
	}
	reply, err := r.convo.HandleMessage(ctx, msg)
	if err != nil {
		r.logger.Error("conversation step failed", zap.Int64("user_id", msg.UserID), zap.Error(err))
		return c.Send("Something went wrong, try again.")
	}
	if reply.Kind == ports.ReplyNone {
		return nil
	}
	return c.Send(replyText(reply))
}

func (r *Router) handleCallback(c tele.Context) error {
	data := strings.TrimSpace(strings.TrimPrefix(c.Callback().Data, "\f"))
	act := parseAction(data)

	handler, ok := r.actions[act.Verb]
	if !ok {
		r.logger.Warn("unknown callback action", zap.String("data", data))
		return respondAlert(c, "Unknown action")
	}
	return handler(c, act.Args)
}

func (r *Router) cbNewPoll(c tele.Context, _ []string) error {
	if !r.requireAdmin(c) {
		return nil
	}
	reply := r.convo.Begin(context.Background(), c.Sender().ID, domain.StateAwaitingPollTitle)
	if err := c.Send(replyText(reply)); err != nil {
		return err
	}
	return c.Respond()
}

func (r *Router) cbMyPolls(c tele.Context, _ []string) error {
	if !r.requireAdmin(c) {
		return nil
	}
	ctx := context.Background()
	polls, err := r.polls.ByCreator(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	if len(polls) == 0 {
		return respondAlert(c, "You have not created any polls yet!")
	}
	if err := c.Send("Your polls:", myPollsKeyboard(polls)); err != nil {
		return err
	}
	return c.Respond()
}

func (r *Router) cbVote(c tele.Context, args []string) error {
	if len(args) != 1 {
		return respondAlert(c, "Unknown action")
	}
	ctx := context.Background()
	userID := c.Sender().ID

	if !r.access.IsSubscribed(ctx, userID) {
		return respondAlert(c, "Join the required channel(s) first!")
	}
	return r.sendPollPrompt(ctx, c, args[0], userID)
}

// sendPollPrompt shows the option keyboard for one poll, refusing early when
// the voter is already in the ledger or the poll is gone or closed.
func (r *Router) sendPollPrompt(ctx context.Context, c tele.Context, pollID string, userID int64) error {
	voted, err := r.polls.HasVoted(ctx, pollID, userID)
	if errors.Is(err, domain.ErrPollNotFound) {
		return respondAlert(c, "Poll not found or closed")
	}
	if err != nil {
		return err
	}
	if voted {
		return respondAlert(c, "You have already voted!")
	}

	poll, err := r.polls.Get(ctx, pollID)
	if err != nil || !poll.Active {
		return respondAlert(c, "Poll not found or closed")
	}

	if poll.MediaRef != "" {
		photo := pollPhoto(poll)
		if err := c.Send(photo, optionsKeyboard(poll)); err != nil {
			return err
		}
	} else {
		if err := c.Send(poll.Title, optionsKeyboard(poll)); err != nil {
			return err
		}
	}
	return c.Respond()
}

func (r *Router) cbSelect(c tele.Context, args []string) error {
	if len(args) != 2 {
		return respondAlert(c, "Unknown action")
	}
	ctx := context.Background()
	userID := c.Sender().ID

	if !r.access.IsSubscribed(ctx, userID) {
		return respondAlert(c, "Join the required channel(s) first!")
	}

	poll, err := r.polls.CastVote(ctx, ports.CastVoteInput{
		PollID: args[0],
		Option: args[1],
		UserID: userID,
	})
	switch {
	case errors.Is(err, domain.ErrAlreadyVoted):
		return respondAlert(c, "You have already voted!")
	case errors.Is(err, domain.ErrPollNotFound), errors.Is(err, domain.ErrPollInactive):
		return respondAlert(c, "Poll not found or closed")
	case errors.Is(err, domain.ErrInvalidOption):
		return respondAlert(c, "This option no longer exists")
	case err != nil:
		return err
	}

	if !r.access.IsAdmin(ctx, userID) {
		r.notifyAdmins(ctx, voteNoticeText(userID, poll.Title, args[1]))
	}
	return respondAlert(c, "You voted for "+args[1]+"!")
}

// notifyAdmins is best effort: a failed notice is logged and skipped.
func (r *Router) notifyAdmins(ctx context.Context, text string) {
	for _, adminID := range r.admins.List(ctx) {
		if err := r.transport.SendText(ctx, adminID, text); err != nil {
			r.logger.Warn("admin notice failed", zap.Int64("admin_id", adminID), zap.Error(err))
		}
	}
}

func (r *Router) cbManage(c tele.Context, args []string) error {
	if len(args) != 1 {
		return respondAlert(c, "Unknown action")
	}
	stats, err := r.polls.Stats(context.Background(), args[0], c.Sender().ID)
	if err != nil {
		return r.respondStatsErr(c, err)
	}
	if err := c.Send(manageText(stats), manageKeyboard(stats)); err != nil {
		return err
	}
	return c.Respond()
}

func (r *Router) cbStats(c tele.Context, args []string) error {
	ctx := context.Background()

	// Bare "stats" is the service-wide overview; "stats_<id>" is one poll.
	if len(args) == 0 {
		if !r.requireAdmin(c) {
			return nil
		}
		overview, err := r.polls.Overview(ctx)
		if err != nil {
			return err
		}
		if err := c.Send(overviewText(overview)); err != nil {
			return err
		}
		return c.Respond()
	}

	stats, err := r.polls.Stats(ctx, args[0], c.Sender().ID)
	if err != nil {
		return r.respondStatsErr(c, err)
	}
	if stats.MediaRef != "" {
		if err := c.Send(statsPhoto(stats)); err != nil {
			return err
		}
	} else {
		if err := c.Send(statsText(stats)); err != nil {
			return err
		}
	}
	return c.Respond()
}

func (r *Router) cbDeactivate(c tele.Context, args []string) error {
	return r.togglePoll(c, args, false, "Poll closed!")
}

func (r *Router) cbActivate(c tele.Context, args []string) error {
	return r.togglePoll(c, args, true, "Poll reopened!")
}

func (r *Router) togglePoll(c tele.Context, args []string, active bool, notice string) error {
	if len(args) != 1 {
		return respondAlert(c, "Unknown action")
	}
	err := r.polls.SetActive(context.Background(), args[0], active, c.Sender().ID)
	if err != nil {
		return r.respondStatsErr(c, err)
	}
	if err := respondAlert(c, notice); err != nil {
		return err
	}
	return c.Delete()
}

func (r *Router) cbDelete(c tele.Context, args []string) error {
	if len(args) != 1 {
		return respondAlert(c, "Unknown action")
	}
	err := r.polls.Delete(context.Background(), args[0], c.Sender().ID)
	if err != nil {
		return r.respondStatsErr(c, err)
	}
	if err := respondAlert(c, "Poll deleted!"); err != nil {
		return err
	}
	return c.Delete()
}

func (r *Router) cbAdmins(c tele.Context, _ []string) error {
	if !r.requireAdmin(c) {
		return nil
	}
	if err := c.Send("Manage admins:", adminMenuKeyboard()); err != nil {
		return err
	}
	return c.Respond()
}

func (r *Router) cbAddAdmin(c tele.Context, _ []string) error {
	return r.beginAdminFlow(c, domain.StateAwaitingNewAdminID)
}

func (r *Router) cbRemoveAdmin(c tele.Context, _ []string) error {
	return r.beginAdminFlow(c, domain.StateAwaitingAdminRemovalID)
}

func (r *Router) cbAddChannel(c tele.Context, _ []string) error {
	return r.beginAdminFlow(c, domain.StateAwaitingNewChannel)
}

func (r *Router) cbAnnouncement(c tele.Context, _ []string) error {
	return r.beginAdminFlow(c, domain.StateAwaitingAnnouncement)
}

func (r *Router) beginAdminFlow(c tele.Context, state domain.ConversationState) error {
	if !r.requireAdmin(c) {
		return nil
	}
	reply := r.convo.Begin(context.Background(), c.Sender().ID, state)
	if err := c.Send(replyText(reply)); err != nil {
		return err
	}
	return c.Respond()
}

func (r *Router) cbListAdmins(c tele.Context, _ []string) error {
	if !r.requireAdmin(c) {
		return nil
	}
	ids := r.admins.List(context.Background())
	lines := make([]string, 0, len(ids)+1)
	lines = append(lines, "Admins:")
	for _, id := range ids {
		lines = append(lines, formatID(id))
	}
	if err := c.Send(strings.Join(lines, "\n")); err != nil {
		return err
	}
	return c.Respond()
}

func (r *Router) cbChannels(c tele.Context, _ []string) error {
	if !r.requireAdmin(c) {
		return nil
	}
	if err := c.Send("Manage channels:", channelMenuKeyboard()); err != nil {
		return err
	}
	return c.Respond()
}

func (r *Router) cbRemoveChannel(c tele.Context, _ []string) error {
	if !r.requireAdmin(c) {
		return nil
	}
	channels := r.channels.List(context.Background())
	if len(channels) == 0 {
		return respondAlert(c, "The channel list is empty")
	}
	if err := c.Send("Pick the channel to remove:", removeChannelKeyboard(channels)); err != nil {
		return err
	}
	return c.Respond()
}

func (r *Router) cbRemoveCh(c tele.Context, args []string) error {
	if !r.requireAdmin(c) {
		return nil
	}
	if len(args) != 1 {
		return respondAlert(c, "Unknown action")
	}
	err := r.channels.Remove(context.Background(), args[0])
	if errors.Is(err, domain.ErrChannelNotFound) {
		return respondAlert(c, "This channel is not in the list!")
	}
	if err != nil {
		return err
	}
	if err := respondAlert(c, args[0]+" removed from the list!"); err != nil {
		return err
	}
	return c.Delete()
}

func (r *Router) cbListChannels(c tele.Context, _ []string) error {
	if !r.requireAdmin(c) {
		return nil
	}
	channels := r.channels.List(context.Background())
	if err := c.Send("Required channels:\n" + strings.Join(channels, "\n")); err != nil {
		return err
	}
	return c.Respond()
}

func (r *Router) respondStatsErr(c tele.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrPollNotFound):
		return respondAlert(c, "Poll not found")
	case errors.Is(err, domain.ErrUnauthorized):
		return respondAlert(c, "This is not your poll!")
	}
	return err
}

func (r *Router) requireAdmin(c tele.Context) bool {
	if r.access.IsAdmin(context.Background(), c.Sender().ID) {
		return true
	}
	if err := respondAlert(c, "Admins only!"); err != nil {
		r.logger.Warn("callback answer failed", zap.Error(err))
	}
	return false
}

func respondAlert(c tele.Context, text string) error {
	return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
}
