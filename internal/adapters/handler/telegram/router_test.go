package telegram

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"ovozbot/internal/adapters/repository/memory"
	"ovozbot/internal/core/domain"
	"ovozbot/internal/core/ports"
	"ovozbot/internal/core/services"
)

const (
	routerAdminID int64 = 1
	routerVoterID int64 = 100
)

type stubTransport struct {
	mu         sync.Mutex
	membership ports.MembershipStatus
	texts      map[int64][]string
}

func newStubTransport(status ports.MembershipStatus) *stubTransport {
	return &stubTransport{membership: status, texts: map[int64][]string{}}
}

func (t *stubTransport) SendText(_ context.Context, userID int64, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.texts[userID] = append(t.texts[userID], text)
	return nil
}

func (t *stubTransport) SendMedia(context.Context, int64, string, string) error { return nil }

func (t *stubTransport) GetMembership(context.Context, string, int64) (ports.MembershipStatus, error) {
	return t.membership, nil
}

func (t *stubTransport) CopyMessageToUser(context.Context, int64, ports.MessageRef) error {
	return nil
}

func (t *stubTransport) textsFor(userID int64) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.texts[userID]...)
}

// spyPollService counts the calls that must not happen before the
// subscription gate passes.
type spyPollService struct {
	ports.PollService
	castVotes int
	hasVoteds int
	gets      int
}

func (s *spyPollService) CastVote(ctx context.Context, input ports.CastVoteInput) (*domain.Poll, error) {
	s.castVotes++
	return s.PollService.CastVote(ctx, input)
}

func (s *spyPollService) HasVoted(ctx context.Context, pollID string, userID int64) (bool, error) {
	s.hasVoteds++
	return s.PollService.HasVoted(ctx, pollID, userID)
}

func (s *spyPollService) Get(ctx context.Context, id string) (*domain.Poll, error) {
	s.gets++
	return s.PollService.Get(ctx, id)
}

// fakeContext satisfies tele.Context for the handlers under test; the
// embedded interface panics on anything they should never touch.
type fakeContext struct {
	tele.Context

	user    *tele.User
	payload string
	data    string

	sent    []interface{}
	markups []*tele.ReplyMarkup
	alerts  []*tele.CallbackResponse
	deleted bool
}

func commandFrom(userID int64, payload string) *fakeContext {
	return &fakeContext{user: &tele.User{ID: userID}, payload: payload}
}

func callbackFrom(userID int64, data string) *fakeContext {
	return &fakeContext{user: &tele.User{ID: userID}, data: "\f" + data}
}

func (c *fakeContext) Sender() *tele.User { return c.user }

func (c *fakeContext) Message() *tele.Message {
	return &tele.Message{Payload: c.payload, Chat: &tele.Chat{ID: c.user.ID}}
}

func (c *fakeContext) Callback() *tele.Callback { return &tele.Callback{Data: c.data} }

func (c *fakeContext) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, what)
	for _, opt := range opts {
		if markup, ok := opt.(*tele.ReplyMarkup); ok {
			c.markups = append(c.markups, markup)
		}
	}
	return nil
}

func (c *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		resp = []*tele.CallbackResponse{{}}
	}
	c.alerts = append(c.alerts, resp...)
	return nil
}

func (c *fakeContext) Delete() error {
	c.deleted = true
	return nil
}

func (c *fakeContext) lastAlert(t *testing.T) *tele.CallbackResponse {
	t.Helper()
	require.NotEmpty(t, c.alerts)
	return c.alerts[len(c.alerts)-1]
}

type routerEnv struct {
	router    *Router
	transport *stubTransport
	polls     *spyPollService
	directory ports.UserDirectory
}

func newRouterEnv(t *testing.T, status ports.MembershipStatus) *routerEnv {
	t.Helper()
	transport := newStubTransport(status)
	admins := memory.NewAdminRegistry([]int64{routerAdminID})
	channels := memory.NewChannelRegistry([]string{"@updates"})
	directory := memory.NewUserDirectory()
	polls := &spyPollService{
		PollService: services.NewPollService(memory.NewPollRepository(), admins, directory, zap.NewNop()),
	}
	access := services.NewAccessService(transport, admins, channels, zap.NewNop())
	convo := services.NewConversationService(memory.NewConversationRepository(), polls, admins, channels, nil, zap.NewNop())
	return &routerEnv{
		router:    NewRouter(transport, access, polls, convo, admins, channels, directory, zap.NewNop()),
		transport: transport,
		polls:     polls,
		directory: directory,
	}
}

func (e *routerEnv) createPoll(t *testing.T, title string, options ...string) *domain.Poll {
	t.Helper()
	poll, err := e.polls.Create(context.Background(), ports.CreatePollInput{
		Title:     title,
		Options:   options,
		CreatorID: routerAdminID,
	})
	require.NoError(t, err)
	return poll
}

func TestStartGateDeniesNonSubscriber(t *testing.T) {
	env := newRouterEnv(t, ports.StatusLeft)

	c := commandFrom(routerVoterID, "")
	require.NoError(t, env.router.handleStart(c))

	require.Len(t, c.sent, 1)
	assert.Equal(t, "To use the bot, join the channel(s) below first:", c.sent[0])
	require.Len(t, c.markups, 1)
	require.Len(t, c.markups[0].InlineKeyboard, 1)
	assert.Equal(t, "https://t.me/updates", c.markups[0].InlineKeyboard[0][0].URL)

	// Denied users are still registered so they are reachable once they join.
	assert.Contains(t, env.directory.Snapshot(context.Background()), routerVoterID)
}

func TestStartDeepLinkShowsOptionKeyboard(t *testing.T) {
	env := newRouterEnv(t, ports.StatusMember)
	poll := env.createPoll(t, "Color?", "Red", "Green")

	c := commandFrom(routerVoterID, "vote_"+poll.ID)
	require.NoError(t, env.router.handleStart(c))

	require.Len(t, c.sent, 1)
	assert.Equal(t, "Color?", c.sent[0])
	require.Len(t, c.markups, 1)
	rows := c.markups[0].InlineKeyboard
	require.Len(t, rows, 2)
	assert.Equal(t, selectAction(poll.ID, "Red"), rows[0][0].Data)
	assert.Equal(t, selectAction(poll.ID, "Green"), rows[1][0].Data)
}

func TestStartDeepLinkRefusesRepeatVoter(t *testing.T) {
	env := newRouterEnv(t, ports.StatusMember)
	poll := env.createPoll(t, "Color?", "Red", "Green")
	_, err := env.polls.CastVote(context.Background(), ports.CastVoteInput{
		PollID: poll.ID, Option: "Red", UserID: routerVoterID,
	})
	require.NoError(t, err)

	c := commandFrom(routerVoterID, "vote_"+poll.ID)
	require.NoError(t, env.router.handleStart(c))

	assert.Empty(t, c.markups)
	assert.Equal(t, "You have already voted!", c.lastAlert(t).Text)
}

func TestStartAdminGetsPanel(t *testing.T) {
	env := newRouterEnv(t, ports.StatusMember)

	c := commandFrom(routerAdminID, "")
	require.NoError(t, env.router.handleStart(c))

	require.Len(t, c.sent, 1)
	assert.Equal(t, "Welcome to the admin panel!", c.sent[0])
}

func TestStartListsActivePolls(t *testing.T) {
	env := newRouterEnv(t, ports.StatusMember)
	poll := env.createPoll(t, "Color?", "Red", "Green")

	c := commandFrom(routerVoterID, "")
	require.NoError(t, env.router.handleStart(c))

	require.Len(t, c.sent, 1)
	assert.Equal(t, "Active polls:", c.sent[0])
	require.Len(t, c.markups, 1)
	assert.Equal(t, voteAction(poll.ID), c.markups[0].InlineKeyboard[0][0].Data)
}

func TestStartNoActivePolls(t *testing.T) {
	env := newRouterEnv(t, ports.StatusMember)

	c := commandFrom(routerVoterID, "")
	require.NoError(t, env.router.handleStart(c))

	require.Len(t, c.sent, 1)
	assert.Equal(t, "There are no active polls right now.", c.sent[0])
}

func TestCallbackVoteGateDeniesBeforePollLookup(t *testing.T) {
	env := newRouterEnv(t, ports.StatusLeft)
	poll := env.createPoll(t, "Color?", "Red", "Green")

	c := callbackFrom(routerVoterID, voteAction(poll.ID))
	require.NoError(t, env.router.handleCallback(c))

	alert := c.lastAlert(t)
	assert.True(t, alert.ShowAlert)
	assert.Equal(t, "Join the required channel(s) first!", alert.Text)
	assert.Empty(t, c.sent)
	assert.Zero(t, env.polls.hasVoteds)
	assert.Zero(t, env.polls.gets)
}

func TestCallbackSelectGateDeniesBeforeCastVote(t *testing.T) {
	env := newRouterEnv(t, ports.StatusLeft)
	poll := env.createPoll(t, "Color?", "Red", "Green")

	c := callbackFrom(routerVoterID, selectAction(poll.ID, "Red"))
	require.NoError(t, env.router.handleCallback(c))

	assert.Equal(t, "Join the required channel(s) first!", c.lastAlert(t).Text)
	assert.Zero(t, env.polls.castVotes)

	fresh, err := env.polls.Get(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Zero(t, fresh.Tally["Red"])
}

func TestCallbackSelectRecordsVoteAndNotifiesAdmins(t *testing.T) {
	env := newRouterEnv(t, ports.StatusMember)
	poll := env.createPoll(t, "Color?", "Red", "Green")

	c := callbackFrom(routerVoterID, selectAction(poll.ID, "Red"))
	require.NoError(t, env.router.handleCallback(c))

	assert.Equal(t, "You voted for Red!", c.lastAlert(t).Text)
	assert.Equal(t, 1, env.polls.castVotes)

	notices := env.transport.textsFor(routerAdminID)
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "Color?")
	assert.Contains(t, notices[0], "Red")

	// A second tap hits the ledger, not the tally.
	repeat := callbackFrom(routerVoterID, selectAction(poll.ID, "Red"))
	require.NoError(t, env.router.handleCallback(repeat))
	assert.Equal(t, "You have already voted!", repeat.lastAlert(t).Text)

	fresh, err := env.polls.Get(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Tally["Red"])
}

func TestCallbackSelectAdminVoteSkipsNotice(t *testing.T) {
	env := newRouterEnv(t, ports.StatusMember)
	poll := env.createPoll(t, "Color?", "Red", "Green")

	c := callbackFrom(routerAdminID, selectAction(poll.ID, "Green"))
	require.NoError(t, env.router.handleCallback(c))

	assert.Equal(t, "You voted for Green!", c.lastAlert(t).Text)
	assert.Empty(t, env.transport.textsFor(routerAdminID))
}

func TestCallbackDeactivateClosesPoll(t *testing.T) {
	env := newRouterEnv(t, ports.StatusMember)
	poll := env.createPoll(t, "Color?", "Red", "Green")

	c := callbackFrom(routerAdminID, deactivateAction(poll.ID))
	require.NoError(t, env.router.handleCallback(c))

	assert.Equal(t, "Poll closed!", c.lastAlert(t).Text)
	assert.True(t, c.deleted)

	fresh, err := env.polls.Get(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.False(t, fresh.Active)
}

func TestCallbackUnknownActionAlerts(t *testing.T) {
	env := newRouterEnv(t, ports.StatusMember)

	c := callbackFrom(routerVoterID, "bogus_1")
	require.NoError(t, env.router.handleCallback(c))

	assert.Equal(t, "Unknown action", c.lastAlert(t).Text)
}

func TestCallbackAdminVerbsDenyNonAdmins(t *testing.T) {
	env := newRouterEnv(t, ports.StatusMember)

	for _, data := range []string{verbNewPoll, verbMyPolls, verbStats, verbAnnouncement} {
		c := callbackFrom(routerVoterID, data)
		require.NoError(t, env.router.handleCallback(c))
		assert.Equal(t, "Admins only!", c.lastAlert(t).Text, data)
		assert.Empty(t, c.sent, data)
	}
}
