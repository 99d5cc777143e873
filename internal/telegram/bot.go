package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Bot struct {
	bot       *tgbotapi.BotAPI
	commander *Commander
	timeout   int
}

func NewBot(bot *tgbotapi.BotAPI, commander *Commander, timeout int) *Bot {
	return &Bot{
		bot:       bot,
		commander: commander,
		timeout:   timeout,
	}
}

// Consume long-polls updates until ctx is done.
func (b *Bot) Consume(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.timeout
	updates := b.bot.GetUpdatesChan(u)
	defer b.bot.StopReceivingUpdates()

	logrus.Infof("telegram consumer started as %s", b.bot.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			logrus.Infof("telegram consumer stopped: %v", ctx.Err())
			return
		case update, ok := <-updates:
			if !ok {
				logrus.Info("telegram updates channel closed")
				return
			}
			if update.Message == nil {
				continue
			}
			if !update.Message.IsCommand() {
				logrus.Debugf("telegram consumer ignored message from chat %d", update.Message.Chat.ID)
				continue
			}

			owner := Owner(update.Message.Chat.ID)
			reply := b.commander.Handle(owner, update.Message.Command(), update.Message.CommandArguments())
			if err := b.sendMessage(update.Message, reply); err != nil {
				logrus.Errorf("telegram consumer: %v", err)
				continue
			}
			logrus.Debugf("telegram consumer handled /%s for %s", update.Message.Command(), owner)
		}
	}
}

func (b *Bot) sendMessage(message *tgbotapi.Message, text string) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID

	if _, err := b.bot.Send(msg); err != nil {
		return fmt.Errorf("sendMessage, telegram bot couldn't send message: %v", err)
	}
	return nil
}
