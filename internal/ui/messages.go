package ui

import (
	"fmt"

	"github.com/luizzsec/infogram/internal/config"
)

// CardHeader prefixes every lookup reply.
const CardHeader = "📋 *User Information*"

// ForwardDiagnostic is the fixed reply for forwards with no extractable
// sender identity.
const ForwardDiagnostic = "Could not determine forwarded user."

// ErrorPrefix marks lookup failures; the remote error message follows
// verbatim.
const ErrorPrefix = "❌ Error: "

func StartMessage(firstName, cardText string, cfg config.Config) string {
	if firstName == "" {
		firstName = "User"
	}
	return fmt.Sprintf(
		"👋 Hello %s!\n\n"+
			"Welcome to *%s* 🕵️‍♂️\n\n"+
			"📋 *Your Profile Info:*\n%s\n\n"+
			"🧠 *How to use:*\n"+
			"• Send a username like `@example` or `t.me/example`\n"+
			"• Or forward a user's message to this bot\n\n"+
			"💻 Developer: %s",
		firstName, cfg.BotName, cardText, cfg.Developer,
	)
}

func HelpMessage(cfg config.Config) string {
	return fmt.Sprintf(
		"📖 *Help Menu*\n\n"+
			"Usage:\n"+
			"• Send `@username` or `t.me/username`\n"+
			"• Or forward a user's message\n\n"+
			"I will show all *public* information available for that account.\n\n"+
			"Developer: %s",
		cfg.Developer,
	)
}

func AboutMessage(cfg config.Config) string {
	return fmt.Sprintf(
		"ℹ️ *About This Bot*\n\n"+
			"Name: %s\n"+
			"Developer: %s\n"+
			"Language: %s\n"+
			"Timezone: %s\n\n"+
			"Description: %s\n\n"+
			"⚠️ This bot only shows *public* information from Telegram.",
		cfg.BotName, cfg.Developer, cfg.Language, cfg.TimezoneName, cfg.Description,
	)
}

func LookupReply(cardText string) string {
	return CardHeader + "\n\n" + cardText
}
