package telegram

import (
	"strings"

	tele "gopkg.in/telebot.v3"

	"ovozbot/internal/core/domain"
)

func adminPanelKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{{Text: "New poll", Data: verbNewPoll}},
		{{Text: "My polls", Data: verbMyPolls}},
		{
			{Text: "Admins", Data: verbAdmins},
			{Text: "Channels", Data: verbChannels},
		},
		{
			{Text: "Announcement", Data: verbAnnouncement},
			{Text: "Statistics", Data: verbStats},
		},
	}}
}

func activePollsKeyboard(polls []*domain.Poll) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	for _, poll := range polls {
		markup.InlineKeyboard = append(markup.InlineKeyboard,
			[]tele.InlineButton{{Text: poll.Title, Data: voteAction(poll.ID)}})
	}
	return markup
}

func optionsKeyboard(poll *domain.Poll) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	for _, opt := range poll.Options {
		markup.InlineKeyboard = append(markup.InlineKeyboard,
			[]tele.InlineButton{{Text: opt, Data: selectAction(poll.ID, opt)}})
	}
	return markup
}

func myPollsKeyboard(polls []*domain.Poll) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	for _, poll := range polls {
		markup.InlineKeyboard = append(markup.InlineKeyboard,
			[]tele.InlineButton{{Text: poll.Title + " (" + statusLabel(poll.Active) + ")", Data: manageAction(poll.ID)}})
	}
	return markup
}

func manageKeyboard(stats *domain.PollStats) *tele.ReplyMarkup {
	toggle := tele.InlineButton{Text: "Close", Data: deactivateAction(stats.ID)}
	if !stats.Active {
		toggle = tele.InlineButton{Text: "Reopen", Data: activateAction(stats.ID)}
	}
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{{Text: "View results", Data: pollStatsAction(stats.ID)}},
		{toggle},
		{{Text: "Delete poll", Data: deleteAction(stats.ID)}},
	}}
}

func adminMenuKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{{Text: "Add admin", Data: verbAddAdmin}},
		{{Text: "Remove admin", Data: verbRemoveAdmin}},
		{{Text: "List admins", Data: verbListAdmins}},
	}}
}

func channelMenuKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: [][]tele.InlineButton{
		{{Text: "Add channel", Data: verbAddChannel}},
		{{Text: "Remove channel", Data: verbRemoveChannel}},
		{{Text: "List channels", Data: verbListChannels}},
	}}
}

func removeChannelKeyboard(channels []string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	for _, ch := range channels {
		markup.InlineKeyboard = append(markup.InlineKeyboard,
			[]tele.InlineButton{{Text: ch, Data: removeChannelAction(ch)}})
	}
	return markup
}

func joinChannelsKeyboard(channels []string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	for _, ch := range channels {
		markup.InlineKeyboard = append(markup.InlineKeyboard, []tele.InlineButton{{
			Text: "Join " + ch,
			URL:  "https://t.me/" + strings.TrimPrefix(ch, "@"),
		}})
	}
	return markup
}

func statusLabel(active bool) string {
	if active {
		return "active"
	}
	return "closed"
}
