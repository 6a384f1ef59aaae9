package telegram

import (
	"fmt"
	"strings"

	"ovozbot/internal/core/domain"
	"ovozbot/internal/core/ports"
)

const timeLayout = "2006-01-02 15:04"

// replyText renders a conversation-engine outcome into user-visible text.
func replyText(reply ports.Reply) string {
	switch reply.Kind {
	case ports.ReplyPromptTitle:
		return "Enter the poll title:"
	case ports.ReplyTitleTooLong:
		return fmt.Sprintf("The title must be between 1 and %d characters. Try again:", domain.MaxTitleLen)
	case ports.ReplyPromptImage:
		return "Send an image for the poll, or type 'skip' to go without one:"
	case ports.ReplyPromptOptions:
		return "Enter the options separated by commas (e.g. Red, Green, Blue):"
	case ports.ReplyBadOptionCount:
		return fmt.Sprintf("Enter between %d and %d distinct options, separated by commas:", domain.MinOptions, domain.MaxOptions)
	case ports.ReplyPollCreated:
		return "Poll created. ID: " + reply.PollID
	case ports.ReplyPromptNewAdminID:
		return "Enter the user ID of the new admin:"
	case ports.ReplyPromptRemovalAdminID:
		return "Enter the user ID of the admin to remove:"
	case ports.ReplyPromptChannel:
		return "Enter the channel username (with @):"
	case ports.ReplyPromptAnnouncement:
		return "Send the announcement message (text, photo, video...).\nSend /cancel to abort."
	case ports.ReplyBadID:
		return "Invalid format. Enter a numeric ID."
	case ports.ReplyAdminAdded:
		return fmt.Sprintf("Admin %d added.", reply.AdminID)
	case ports.ReplyDuplicateAdmin:
		return "This ID is already an admin."
	case ports.ReplyAdminRemoved:
		return fmt.Sprintf("Admin %d removed.", reply.AdminID)
	case ports.ReplyAdminNotFound:
		return "This ID is not in the admin list."
	case ports.ReplySelfRemoval:
		return "You cannot remove yourself from the admin list."
	case ports.ReplyLastAdmin:
		return "The last admin cannot be removed."
	case ports.ReplyChannelAdded:
		return "Channel " + reply.Channel + " added."
	case ports.ReplyDuplicateChannel:
		return "This channel is already in the list."
	case ports.ReplyAnnouncementStarted:
		return fmt.Sprintf("Sending the announcement to %d users...", reply.Recipients)
	case ports.ReplyAnnouncementCancelled:
		return "Announcement cancelled."
	case ports.ReplyBroadcastBusy:
		return "Another announcement is still being delivered. Try again once it reports back."
	case ports.ReplyNoRecipients:
		return "There are no users to announce to yet."
	}
	return ""
}

func statsText(stats *domain.PollStats) string {
	lines := []string{
		"📊 " + stats.Title + " results:",
		"Status: " + statusLabel(stats.Active),
		"Created: " + stats.CreatedAt.Format(timeLayout),
		"Results:",
	}
	for _, opt := range stats.Options {
		lines = append(lines, fmt.Sprintf("%s: %d votes (%.1f%%)", opt.Option, opt.Count, opt.Percentage))
	}
	lines = append(lines, fmt.Sprintf("Total votes: %d", stats.TotalVotes))
	return strings.Join(lines, "\n")
}

func manageText(stats *domain.PollStats) string {
	return strings.Join([]string{
		"Poll: " + stats.Title,
		"Status: " + statusLabel(stats.Active),
		"Created: " + stats.CreatedAt.Format(timeLayout),
		fmt.Sprintf("Votes: %d", stats.TotalVotes),
	}, "\n")
}

func overviewText(overview *domain.Overview) string {
	lines := []string{
		"📊 Bot statistics:",
		fmt.Sprintf("Total users: %d", overview.TotalUsers),
		fmt.Sprintf("Total polls: %d", overview.TotalPolls),
		fmt.Sprintf("Active polls: %d", overview.ActivePolls),
		fmt.Sprintf("Closed polls: %d", overview.ClosedPolls),
		fmt.Sprintf("Total votes: %d", overview.TotalVotes),
	}
	if len(overview.Polls) > 0 {
		lines = append(lines, "Polls:")
		for _, p := range overview.Polls {
			lines = append(lines, fmt.Sprintf("- %s (%s): %d votes", p.Title, statusLabel(p.Active), p.Votes))
		}
	}
	return strings.Join(lines, "\n")
}

func voteNoticeText(voterID int64, pollTitle, option string) string {
	return fmt.Sprintf("New vote: %d\nPoll: %s\nChoice: %s", voterID, pollTitle, option)
}

func reportText(report domain.BroadcastReport) string {
	lines := []string{
		"Announcement delivered.",
		fmt.Sprintf("Succeeded: %d", report.Success),
		fmt.Sprintf("Failed: %d", report.Failure),
	}
	if report.Cancelled {
		lines[0] = "Announcement stopped before completion."
	}
	return strings.Join(lines, "\n")
}
