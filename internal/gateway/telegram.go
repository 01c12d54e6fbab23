package gateway

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rahul/gurukul/internal/observability"
)

// TelegramGateway fronts the English tutor over Telegram: every incoming
// message gets a tutoring reply.
type TelegramGateway struct {
	Bot    *tgbotapi.BotAPI
	Tutor  Tutor
	logger *observability.Logger
}

func NewTelegramGateway(token string, tutor Tutor, logger *observability.Logger) (*TelegramGateway, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = observability.NewQuietLogger()
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	return &TelegramGateway{Bot: bot, Tutor: tutor, logger: logger}, nil
}

func (tg *TelegramGateway) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := tg.Bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		userID := fmt.Sprintf("%d", update.Message.Chat.ID)
		tg.logger.Log(observability.Event{
			Type: observability.EventTypeGateway,
			Data: map[string]string{"user": update.Message.From.UserName, "chars": fmt.Sprintf("%d", len(update.Message.Text))},
		})

		response, err := tg.Tutor.Reply(context.Background(), userID, update.Message.Text)
		if err != nil {
			log.Printf("tutor reply failed: %v", err)
			response = "I'm having trouble answering right now, please try again in a moment."
		}

		msg := tgbotapi.NewMessage(update.Message.Chat.ID, response)
		if _, err := tg.Bot.Send(msg); err != nil {
			log.Printf("failed to send reply: %v", err)
		}
	}
	return nil
}

func (tg *TelegramGateway) Send(chatID string, text string) error {
	id := 0
	fmt.Sscanf(chatID, "%d", &id)
	if id == 0 {
		return fmt.Errorf("invalid chat ID: %s", chatID)
	}

	msg := tgbotapi.NewMessage(int64(id), text)
	msg.ParseMode = "Markdown"
	_, err := tg.Bot.Send(msg)
	return err
}

func (tg *TelegramGateway) Stop() error {
	tg.Bot.StopReceivingUpdates()
	return nil
}
