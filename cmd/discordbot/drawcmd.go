/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/FlippedOut/pb-draw/roster"
	"github.com/FlippedOut/pb-draw/tournament"
)

type DrawSubCommand string

const (
	DrawAboutCmd    DrawSubCommand = "about"
	DrawHelpCmd     DrawSubCommand = "help"
	DrawGenerateCmd DrawSubCommand = "generate"
)

var drawSubCmdHdlrs = map[DrawSubCommand]CmdHandler{
	DrawAboutCmd:    drawAboutCmdHandler,
	DrawHelpCmd:     drawHelpCmdHandler,
	DrawGenerateCmd: drawGenerateCmdHandler,
}

const (
	maxCourts = 32
	maxRounds = 12
)

func drawCommand() *discordgo.ApplicationCommand {
	broadcastOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}

	return &discordgo.ApplicationCommand{
		Name:        string(DrawCmd),
		Description: "Generate a pickleball doubles draw",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(DrawHelpCmd),
				Description: "Show usage for draw",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(DrawAboutCmd),
				Description: "Show information about pb-draw",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(DrawGenerateCmd),
				Description: "Generate rounds for a list of players or a registration export",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "players",
						Description: "Comma separated player names",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "url",
						Description: "Registration export (CSV, JSON or HTML) to read players from",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "courts",
						Description: "Number of courts (default is one per four players)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "rounds",
						Description: "Number of rounds (default depends on roster size)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "toscore",
						Description: "Points per game (default is 11)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "seed",
						Description: "Shuffle seed to reproduce an earlier draw",
						Required:    false,
					},
					broadcastOpt,
				},
			},
		},
	}
}

func drawCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := drawHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := drawSubCmdHdlrs[DrawSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

func newEphemeralResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

//go:embed about.txt
var aboutText string

func drawAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(aboutText)

	return resp
}

//go:embed help.md
var helpText string

func drawHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(helpText)

	return resp
}

// drawGenerateCmdHandler handles /draw generate. Every roster is drawn as a
// single group; suggested partnerships from an export are confirmed.
func drawGenerateCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	data := inter.ApplicationCommandData()
	broadcast := false // default
	var players, url string
	var courts, rounds, toScore, seed int64
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			switch opt.Name {
			case "players":
				players = opt.StringValue()
			case "url":
				url = opt.StringValue()
			case "courts":
				courts = opt.IntValue()
			case "rounds":
				rounds = opt.IntValue()
			case "toscore":
				toScore = opt.IntValue()
			case "seed":
				seed = opt.IntValue()
			case "broadcast":
				broadcast = opt.BoolValue()
			}
		}
	}

	var r roster.Roster
	if url != "" {
		if err := roster.CheckRemoteURL(ctx, url); err != nil {
			resp.Data.Content = fmt.Sprintf("Cannot use roster url: %v", err)
			log.Printf("discordbot.generate: %v", resp.Data.Content)
			return resp
		}
		var err error
		r, err = roster.Fetch(ctx, roster.NewPublicClient(ctx), url)
		if err != nil {
			resp.Data.Content = fmt.Sprintf("Error fetching roster %v: %v", url, err)
			log.Printf("discordbot.generate: %v", resp.Data.Content)
			return resp
		}
		r = r.ConfirmAll()
	} else if players != "" {
		r = roster.ParseNames(players)
	} else {
		resp.Data.Content = "Please provide players or a roster url."
		log.Printf("discordbot.generate: %v", resp.Data.Content)
		return resp
	}

	// enforce bounds
	if courts <= 0 {
		courts = int64(len(r.Players) / 4)
	}
	courts = min(max(courts, 1), maxCourts)
	rounds = min(max(rounds, 0), maxRounds)

	settings := tournament.DefaultSettings()
	settings.Courts = int(courts)
	settings.Rounds = int(rounds)
	settings.Seed = seed
	settings.CombineDivisions = true
	if toScore > 0 {
		settings.ToScore = int(toScore)
	}

	result, err := tournament.Run(ctx, r, settings)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error generating draw: %v", err)
		log.Printf("discordbot.generate: %v", resp.Data.Content)
		return resp
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(tournament.BuildDrawOutput(result)))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
