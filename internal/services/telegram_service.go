package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramService — уведомления в операторский чат. Безопасен при nil
// и без токена: все отправки тогда просто пропускаются.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramService(botToken string, chatID int64) *TelegramService {
	if botToken == "" || chatID == 0 {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[tg] init failed, уведомления выключены: %v", err)
		return nil
	}
	return &TelegramService{bot: bot, chatID: chatID}
}

func (t *TelegramService) send(text string) error {
	if t == nil || t.bot == nil || t.chatID == 0 {
		log.Printf("[tg][skip] бот не настроен")
		return nil
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// NotifyClosedWon — сделка переведена в closed-won.
func (t *TelegramService) NotifyClosedWon(portalID, dealID int64) error {
	return t.send(fmt.Sprintf("🏆 Deal <b>%d</b> closed won (portal %d)", dealID, portalID))
}

// NotifyInstall — новая установка приложения.
func (t *TelegramService) NotifyInstall(portalID int64) error {
	return t.send(fmt.Sprintf("✅ App installed in portal <b>%d</b>", portalID))
}
