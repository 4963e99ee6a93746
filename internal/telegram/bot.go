package telegram

import (
	"fmt"
	"strings"
	"time"

	"go-jobradar/internal/remoteok"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot mirrors job notifications to a Telegram chat. It is an optional
// secondary sink: delivery truth stays with the Discord webhook, so a
// failure here is only ever logged.
type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

func (b *Bot) escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

func (b *Bot) SendJob(job remoteok.Job) error {
	url := "https://remoteok.com"
	if job.ID != "" {
		url = "https://remoteok.com/remote-jobs/" + job.ID
	}

	msgText := fmt.Sprintf("💼 *%s*\n", b.escapeMarkdown(job.Position))
	msgText += fmt.Sprintf("🏢 %s\n", b.escapeMarkdown(job.Company))

	loc := job.Location
	if loc == "" {
		loc = "Remote"
	}
	msgText += fmt.Sprintf("📍 %s\n", b.escapeMarkdown(loc))

	if job.SalaryRange != "" {
		msgText += fmt.Sprintf("💰 %s\n", b.escapeMarkdown(job.SalaryRange))
	} else if job.SalaryMin > 0 {
		msgText += fmt.Sprintf("💰 %s\n", b.escapeMarkdown(fmt.Sprintf("$%d", job.SalaryMin)))
	}

	if len(job.Tags) > 0 {
		msgText += fmt.Sprintf("🏷 %s\n", b.escapeMarkdown(strings.Join(job.Tags, ", ")))
	}

	if job.Epoch > 0 {
		posted := time.Unix(job.Epoch, 0).Format("2006-01-02 15:04")
		msgText += fmt.Sprintf("📅 %s\n", b.escapeMarkdown(posted))
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔗 View Job", url),
		),
	)

	msg := tgbotapi.NewMessage(b.chatID, msgText)
	msg.ParseMode = "MarkdownV2"
	msg.ReplyMarkup = keyboard

	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
