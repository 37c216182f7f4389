//go:build !test

/* bot_runtime.go
 * Contains the runtime discord session wiring for the bot. Kept separate from the
 * handlers so that the handlers can be tested without a live discord connection
 * Authors: Roman Divkovic
 */

package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
)

// Run opens the discord session and blocks until an interrupt is received.
// Preconditions: Bot has a valid BotToken and APIPtr
// Postconditions: Starts the bot and listens for messages until shutdown
func (b *Bot) Run() error {
	discord, err := discordgo.New("Bot " + b.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create discord session: %w", err)
	}

	discord.AddHandler(b.newMessage)

	if err := discord.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	defer discord.Close()

	log.Println("Bot running...")
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	return nil
}

// newMessage adapts the discordgo handler signature onto the testable handler
func (b *Bot) newMessage(discord *discordgo.Session, message *discordgo.MessageCreate) {
	b.newMessageHandler(discord, message, discord.State.User.ID)
}
