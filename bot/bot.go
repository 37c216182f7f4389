/* bot.go
 * Contains the Bot struct and helpers used for creating the bot. Requires a discord bot
 * token and APIPtr, both of which are passed in from main.go. Runtime-only discord
 * session code lives in bot_runtime.go and the command handlers in handlers.go
 * Authors: Roman Divkovic
 */

package bot

import (
	"fmt"
	"strings"

	"betbuddy-bot/api/api"
)

type Bot struct {
	BotToken string
	APIPtr   *api.API
}

func NewBot(botToken string, apiPtr *api.API) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("api is required but none was provided")
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
	}, nil
}

// Helper function to check if a string starts with a given substring
// Preconditions: Receives an input string and a substring
// Postconditions: Returns true if the substring is at the start of the string, else returns false
func startsWith(inputString string, substring string) bool {
	return strings.HasPrefix(inputString, substring)
}
