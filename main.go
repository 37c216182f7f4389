/* main.go
 * The "main" method for running the bot. For details about the bot see `readme.md`
 * Usage: go run main.go -group="<groupId>" -db="<dbName>"
 * Authors: Roman Divkovic
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"betbuddy-bot/api/api"
	"betbuddy-bot/bot"
	"betbuddy-bot/web"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	// Flags
	groupPtr := flag.String("group", "", "Group id this bot instance is scoped to, e.g. a discord guild id")
	dbPtr := flag.String("db", "betbuddy", "Name of the mongo database to use")
	addrPtr := flag.String("addr", ":8080", "Listen address for the webhook server")
	testPtr := flag.String("test", "false", "Use main or test bot: takes true or false as argument")

	flag.Parse()

	useTestBot, err := convertStrToBool(*testPtr)
	if err != nil {
		log.Fatal("Invalid \"test\" flag. Should be true or false")
	}

	var discordToken string
	if useTestBot {
		discordToken = os.Getenv("DISCORD_BETA_TOKEN")
	} else {
		discordToken = os.Getenv("DISCORD_PROD_TOKEN")
	}

	apiPtr, err := api.NewAPI(*dbPtr, os.Getenv("MONGO_PROD_URI"), *groupPtr, os.Getenv("FIGHTS_API_KEY"))
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}
	defer func() {
		if err = apiPtr.Store.GetClient().Disconnect(context.TODO()); err != nil {
			panic(err)
		}
	}()

	// Webhook server runs alongside the bot so result updates can be pushed to us
	go func() {
		if err := web.Start(web.Config{Addr: *addrPtr, API: apiPtr}); err != nil {
			log.Fatalf("web server failed: %v", err)
		}
	}()

	b, err := bot.NewBot(discordToken, apiPtr)
	if err != nil {
		log.Fatalf("failed to initialize bot: %v", err)
	}
	if err := b.Run(); err != nil {
		log.Fatalf("bot exited: %v", err)
	}
}
