package telegram

import "strings"

// Callback actions travel as "verb" or "verb_arg1[_arg2...]" with "_" as the
// separator. Verbs with a trailing free-form argument (option labels, channel
// names) use a bounded split so the argument itself may contain "_".
const (
	verbNewPoll       = "new_poll"
	verbMyPolls       = "my_polls"
	verbVote          = "vote"
	verbSelect        = "select"
	verbManage        = "manage"
	verbDeactivate    = "deactivate"
	verbActivate      = "activate"
	verbDelete        = "delete"
	verbAdmins        = "admins"
	verbAddAdmin      = "add_admin"
	verbRemoveAdmin   = "remove_admin"
	verbListAdmins    = "list_admins"
	verbChannels      = "channels"
	verbAddChannel    = "add_channel"
	verbRemoveChannel = "remove_channel"
	verbRemoveCh      = "remove_ch"
	verbListChannels  = "list_channels"
	verbAnnouncement  = "announcement"
	verbStats         = "stats"
)

type action struct {
	Verb string
	Args []string
}

// bareVerbs have no arguments and several contain the separator themselves,
// so they are matched before any prefix parsing.
var bareVerbs = map[string]struct{}{
	verbNewPoll:       {},
	verbMyPolls:       {},
	verbAdmins:        {},
	verbAddAdmin:      {},
	verbRemoveAdmin:   {},
	verbListAdmins:    {},
	verbChannels:      {},
	verbAddChannel:    {},
	verbRemoveChannel: {},
	verbListChannels:  {},
	verbAnnouncement:  {},
	verbStats:         {},
}

func parseAction(data string) action {
	if _, ok := bareVerbs[data]; ok {
		return action{Verb: data}
	}

	// select_<pollID>_<option>: the option label may contain "_".
	if rest, ok := strings.CutPrefix(data, verbSelect+"_"); ok {
		parts := strings.SplitN(rest, "_", 2)
		if len(parts) == 2 {
			return action{Verb: verbSelect, Args: parts}
		}
		return action{Verb: data}
	}

	// remove_ch_<channel>: the channel name may contain "_".
	if rest, ok := strings.CutPrefix(data, verbRemoveCh+"_"); ok {
		return action{Verb: verbRemoveCh, Args: []string{rest}}
	}

	for _, verb := range []string{verbVote, verbManage, verbStats, verbDeactivate, verbActivate, verbDelete} {
		if rest, ok := strings.CutPrefix(data, verb+"_"); ok {
			return action{Verb: verb, Args: []string{rest}}
		}
	}

	return action{Verb: data}
}

func voteAction(pollID string) string { return verbVote + "_" + pollID }
func selectAction(pollID, opt string) string { return verbSelect + "_" + pollID + "_" + opt }
func manageAction(pollID string) string { return verbManage + "_" + pollID }
func pollStatsAction(pollID string) string { return verbStats + "_" + pollID }
func deactivateAction(pollID string) string { return verbDeactivate + "_" + pollID }
func activateAction(pollID string) string { return verbActivate + "_" + pollID }
func deleteAction(pollID string) string { return verbDelete + "_" + pollID }
func removeChannelAction(channel string) string { return verbRemoveCh + "_" + channel }
