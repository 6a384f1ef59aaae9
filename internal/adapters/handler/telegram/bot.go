package telegram

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"ovozbot/internal/core/domain"
	"ovozbot/internal/core/ports"
)

// NewBot builds a long-polling telebot instance.
func NewBot(token string, pollTimeout time.Duration) (*tele.Bot, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	return bot, nil
}

// NewBroadcastReporter delivers a finished run's totals to the admin who
// started it.
func NewBroadcastReporter(transport ports.ChatTransport, logger *zap.Logger) ports.BroadcastReporter {
	return func(ctx context.Context, initiatorID int64, report domain.BroadcastReport) {
		if err := transport.SendText(ctx, initiatorID, reportText(report)); err != nil {
			logger.Warn("broadcast report not delivered",
				zap.Int64("initiator_id", initiatorID),
				zap.Error(err))
		}
	}
}

func pollPhoto(poll *domain.Poll) *tele.Photo {
	return &tele.Photo{File: tele.File{FileID: poll.MediaRef}, Caption: poll.Title}
}

func statsPhoto(stats *domain.PollStats) *tele.Photo {
	return &tele.Photo{File: tele.File{FileID: stats.MediaRef}, Caption: statsText(stats)}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
