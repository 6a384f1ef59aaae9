package telegram

import (
	"context"
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v3"

	"ovozbot/internal/core/ports"
)

// Transport adapts a telebot bot to the ports.ChatTransport capability.
type Transport struct {
	bot *tele.Bot
}

func NewTransport(bot *tele.Bot) *Transport {
	return &Transport{bot: bot}
}

// channelRecipient lets "@username" channel identifiers address chats
// directly, without resolving them to numeric ids first.
type channelRecipient string

func (c channelRecipient) Recipient() string { return string(c) }

// messageRef satisfies telebot's Editable so stored messages can be copied.
type messageRef ports.MessageRef

func (m messageRef) MessageSig() (string, int64) {
	return strconv.Itoa(m.MessageID), m.ChatID
}

func (t *Transport) SendText(ctx context.Context, userID int64, text string) error {
	if _, err := t.bot.Send(tele.ChatID(userID), text); err != nil {
		return fmt.Errorf("send text to %d: %w", userID, err)
	}
	return nil
}

func (t *Transport) SendMedia(ctx context.Context, userID int64, mediaRef, caption string) error {
	photo := &tele.Photo{File: tele.File{FileID: mediaRef}, Caption: caption}
	if _, err := t.bot.Send(tele.ChatID(userID), photo); err != nil {
		return fmt.Errorf("send media to %d: %w", userID, err)
	}
	return nil
}

func (t *Transport) GetMembership(ctx context.Context, channel string, userID int64) (ports.MembershipStatus, error) {
	member, err := t.bot.ChatMemberOf(channelRecipient(channel), tele.ChatID(userID))
	if err != nil {
		return "", fmt.Errorf("chat member of %s: %w", channel, err)
	}
	return ports.MembershipStatus(member.Role), nil
}

func (t *Transport) CopyMessageToUser(ctx context.Context, userID int64, msg ports.MessageRef) error {
	if _, err := t.bot.Copy(tele.ChatID(userID), messageRef(msg)); err != nil {
		return fmt.Errorf("copy message to %d: %w", userID, err)
	}
	return nil
}
