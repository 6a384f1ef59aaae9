package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	cases := []struct {
		data string
		verb string
		args []string
	}{
		{"new_poll", "new_poll", nil},
		{"my_polls", "my_polls", nil},
		{"admins", "admins", nil},
		{"add_admin", "add_admin", nil},
		{"remove_admin", "remove_admin", nil},
		{"list_admins", "list_admins", nil},
		{"channels", "channels", nil},
		{"add_channel", "add_channel", nil},
		{"remove_channel", "remove_channel", nil},
		{"list_channels", "list_channels", nil},
		{"announcement", "announcement", nil},
		{"stats", "stats", nil},
		{"vote_3", "vote", []string{"3"}},
		{"manage_12", "manage", []string{"12"}},
		{"stats_7", "stats", []string{"7"}},
		{"deactivate_1", "deactivate", []string{"1"}},
		{"activate_1", "activate", []string{"1"}},
		{"delete_9", "delete", []string{"9"}},
		{"select_3_Red", "select", []string{"3", "Red"}},
		// The option label may itself contain the separator.
		{"select_3_Deep_Blue_Sea", "select", []string{"3", "Deep_Blue_Sea"}},
		// So may the channel name.
		{"remove_ch_@my_channel", "remove_ch", []string{"@my_channel"}},
	}

	for _, tc := range cases {
		t.Run(tc.data, func(t *testing.T) {
			act := parseAction(tc.data)
			assert.Equal(t, tc.verb, act.Verb)
			assert.Equal(t, tc.args, act.Args)
		})
	}
}

func TestParseActionUnknown(t *testing.T) {
	for _, data := range []string{"", "bogus", "select_orphan", "frobnicate_1"} {
		act := parseAction(data)
		assert.Equal(t, data, act.Verb, "unknown actions keep their raw form")
		assert.Nil(t, act.Args)
	}
}

func TestActionBuildersRoundTrip(t *testing.T) {
	act := parseAction(voteAction("5"))
	assert.Equal(t, action{Verb: "vote", Args: []string{"5"}}, act)

	act = parseAction(selectAction("5", "Option_With_Underscores"))
	assert.Equal(t, action{Verb: "select", Args: []string{"5", "Option_With_Underscores"}}, act)

	act = parseAction(manageAction("5"))
	assert.Equal(t, action{Verb: "manage", Args: []string{"5"}}, act)

	act = parseAction(pollStatsAction("5"))
	assert.Equal(t, action{Verb: "stats", Args: []string{"5"}}, act)

	act = parseAction(removeChannelAction("@dev_updates"))
	assert.Equal(t, action{Verb: "remove_ch", Args: []string{"@dev_updates"}}, act)
}
