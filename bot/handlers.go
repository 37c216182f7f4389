/* handlers.go
 * Contains testable handler methods that accept the DiscordSession interface
 * Authors: Roman Divkovic
 */

package bot

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"betbuddy-bot/api/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
	"go.mongodb.org/mongo-driver/mongo"
)

// splitArgs splits a command message into arguments, keeping quoted fighter names
// such as "Jon Jones" together as one argument
func splitArgs(content string) []string {
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	args, _ := spaceSplitter.Split(content)
	var cleaned []string
	for _, arg := range args {
		arg = strings.Trim(strings.TrimSpace(arg), "\"")
		arg = strings.Trim(arg, "“”")
		if arg != "" {
			cleaned = append(cleaned, arg)
		}
	}
	return cleaned
}

// helpMessageHandler handles the $help command
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("BetBuddy Bot v1.0\n")
	res.WriteString("`$events`: lists this group's events with their id and status\n")
	res.WriteString("`$card <eventId>`: shows the match card for an event, with results where decided\n")
	res.WriteString("`$predict <eventId> <fighter> <method>`: picks a fighter to win their match. Method is one of Decision, KO/TKO or Submission. ")
	res.WriteString("There is fuzzy matching on fighter names, but names containing spaces need to be encased in \" (e.g. \"Jon Jones\")\n")
	res.WriteString("`$check <eventId>`: shows the current status of your picks for an event\n")
	res.WriteString("`$leaderboard <eventId>`: shows the ranked points for everyone who predicted on an event. Ties break on correct pick count, then earliest pick\n")
	res.WriteString("`$addevent <slug> <date>`: (admins) creates an event from the fights api, e.g. `$addevent ufc-300 2024-04-13`\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// eventsHandler handles the $events command
func (b *Bot) eventsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	events, err := b.APIPtr.GetEvents()
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occurred getting the events list")
		return
	}
	if len(events) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No events yet. Use $addevent to create one")
		return
	}

	var res strings.Builder
	res.WriteString("Events in this group:\n")
	for _, event := range events {
		res.WriteString(fmt.Sprintf("%s\n", event))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// cardHandler handles the $card command
func (b *Bot) cardHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) < 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $card <eventId>")
		return
	}

	lines, err := b.APIPtr.GetEventCard(args[1])
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			session.ChannelMessageSend(message.ChannelID, "No event with that id in this group. Use $events to list them")
			return
		}
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occurred getting the event card")
		return
	}
	if len(lines) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No matches available for this event yet")
		return
	}

	var res strings.Builder
	res.WriteString("Match card:\n")
	for _, line := range lines {
		res.WriteString(fmt.Sprintf("%s\n", line))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// predictHandler handles the $predict command
func (b *Bot) predictHandler(session DiscordSession, message *discordgo.MessageCreate) {
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}

	args := splitArgs(message.Content)
	if len(args) < 4 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $predict <eventId> <fighter> <method>")
		return
	}
	eventID, fighter, method := args[1], args[2], args[3]

	res := fmt.Sprintf("%s's pick has been saved\n", user.Username)
	err := b.APIPtr.SetUserPrediction(user, eventID, fighter, method)
	if err != nil {
		log.Println(err)
		res = fmt.Sprintf("An error occurred setting %s's pick: %s", user.Username, err)
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// checkPredictionsHandler handles the $check command
func (b *Bot) checkPredictionsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}

	args := splitArgs(message.Content)
	if len(args) < 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $check <eventId>")
		return
	}

	res, err := b.APIPtr.CheckPredictions(user, args[1])
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			res = fmt.Sprintf("%s does not have any picks stored for this event. Use $predict to set your picks\n", user.Username)
		} else {
			log.Println(err)
			res = fmt.Sprintf("An error occurred checking %s's picks", user.Username)
		}
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// leaderboardHandler handles the $leaderboard command
func (b *Bot) leaderboardHandler(session DiscordSession, message *discordgo.MessageCreate) {
	args := splitArgs(message.Content)
	if len(args) < 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $leaderboard <eventId>")
		return
	}

	res, err := b.APIPtr.GetLeaderboard(args[1])
	if err != nil {
		log.Println(err)
		res = "An error occurred getting the leaderboard"
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// addEventHandler handles the $addevent command
func (b *Bot) addEventHandler(session DiscordSession, message *discordgo.MessageCreate) {
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}

	args := splitArgs(message.Content)
	if len(args) < 3 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $addevent <slug> <date> (e.g. $addevent ufc-300 2024-04-13)")
		return
	}

	event, err := b.APIPtr.CreateEvent(user, args[1], args[2])
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("An error occurred creating the event: %s", err))
		return
	}
	session.ChannelMessageSend(message.ChannelID,
		fmt.Sprintf("Event '%s' created with %d matches. Id: %s", event.Title, len(event.Matches), event.ID))
}

// newMessageHandler routes messages to appropriate handlers.
// botUserID is the bot's user ID to prevent self-responses.
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author.ID == botUserID {
		return
	}

	// Route to appropriate handler
	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "$events"):
		b.eventsHandler(session, message)

	case startsWith(message.Content, "$card"):
		b.cardHandler(session, message)

	case startsWith(message.Content, "$predict"):
		b.predictHandler(session, message)

	case startsWith(message.Content, "$check"):
		b.checkPredictionsHandler(session, message)

	case startsWith(message.Content, "$leaderboard"):
		b.leaderboardHandler(session, message)

	case startsWith(message.Content, "$addevent"):
		b.addEventHandler(session, message)
	}
}
