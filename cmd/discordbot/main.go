/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
)

type TopLevelCommand string

const (
	DrawCmd TopLevelCommand = "draw"
)

type CmdHandler func(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	DrawCmd: drawCmdHandler,
}

// botConfig comes from the environment so no secrets live in the binary.
type botConfig struct {
	token      string
	pubKey     ed25519.PublicKey
	appID      string
	cmdID      string
	cmdHash    string
	listenAddr string
}

func loadConfig() (botConfig, error) {
	cfg := botConfig{
		token:      os.Getenv("PBDRAW_DISCORD_TOKEN"),
		appID:      os.Getenv("PBDRAW_DISCORD_APP_ID"),
		cmdID:      os.Getenv("PBDRAW_DISCORD_CMD_ID"),
		cmdHash:    os.Getenv("PBDRAW_DISCORD_CMD_HASH"),
		listenAddr: os.Getenv("PBDRAW_LISTEN_ADDR"),
	}
	if cfg.listenAddr == "" {
		cfg.listenAddr = ":8080"
	}
	if cfg.token == "" || cfg.appID == "" {
		return cfg, fmt.Errorf("PBDRAW_DISCORD_TOKEN and PBDRAW_DISCORD_APP_ID must be set")
	}

	pubKeyBytes, err := hex.DecodeString(os.Getenv("PBDRAW_DISCORD_PUBKEY"))
	if err != nil {
		return cfg, fmt.Errorf("PBDRAW_DISCORD_PUBKEY is not hex: %w", err)
	}
	if len(pubKeyBytes) != ed25519.PublicKeySize {
		return cfg, fmt.Errorf("PBDRAW_DISCORD_PUBKEY has %v bytes; want %v",
			len(pubKeyBytes), ed25519.PublicKeySize)
	}
	cfg.pubKey = ed25519.PublicKey(pubKeyBytes)

	return cfg, nil
}

type bot struct {
	pubKey ed25519.PublicKey
}

func (b *bot) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, b.pubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, string(body))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		name := inter.ApplicationCommandData().Name
		hdlr, ok := topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'", name),
				Flags:   discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interaction type %v", inter.Type)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

func cmdRegistrationHash(cmd *discordgo.ApplicationCommand) (string, error) {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cmd: %w", err)
	}
	hash := sha256.Sum256(cmdJson)

	return hex.EncodeToString(hash[:]), nil
}

func registerSlashCommands(client *discordgo.Session, cfg botConfig) {
	cmd := drawCommand()

	if cfg.cmdID == "" {
		created, err := client.ApplicationCommandCreate(cfg.appID, "", cmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", cmd.Name, err)
			return
		}
		log.Printf("discordbot.reg: registered %v(cmdID:%v); set PBDRAW_DISCORD_CMD_ID",
			created.Name, created.ID)
		return
	}

	hash, err := cmdRegistrationHash(cmd)
	if err != nil {
		log.Printf("discordbot.reg: %v", err)
		return
	}
	if hash == cfg.cmdHash {
		return
	}
	updated, err := client.ApplicationCommandEdit(cfg.appID, "", cfg.cmdID, cmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to update %v: %v", cmd.Name, err)
		return
	}
	log.Printf("discordbot.reg: updated %v(cmdID:%v); please update PBDRAW_DISCORD_CMD_HASH to %v",
		updated.Name, updated.ID, hash)
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}
	client, err := discordgo.New("Bot " + cfg.token)
	if err != nil {
		log.Fatalf("discordbot.main: failed to initialize discord client: %v", err)
	}
	go registerSlashCommands(client, cfg)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v%v", hostname, cfg.listenAddr)

	b := &bot{pubKey: cfg.pubKey}
	http.HandleFunc("/DiscordBot/Interaction", b.interactionHandler)
	if err := http.ListenAndServe(cfg.listenAddr, nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
