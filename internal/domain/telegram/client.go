package telegram

// Client sends plain text messages to a Telegram chat.
// It keeps application services independent of the bot library.
type Client interface {
	SendMessage(chatID int64, text string) error
}
