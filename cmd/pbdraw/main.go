/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/FlippedOut/pb-draw/internal"
	"github.com/FlippedOut/pb-draw/roster"
	"github.com/FlippedOut/pb-draw/tournament"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":      handleHelp,
	"roster":    handleRoster,
	"divisions": handleDivisions,
	"draw":      handleDraw,
}

const (
	maxCourts = 64
	maxRounds = 20
)

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// rosterFlags are shared by every command that reads a roster.
type rosterFlags struct {
	src     *string
	confirm *bool
	noPair  *bool
	cutoff  *string
}

func addRosterFlags(fs *flag.FlagSet) rosterFlags {
	return rosterFlags{
		src: fs.String("roster", "",
			"Registration export: a .csv/.tsv/.json/.html file or an http(s) url"),
		confirm: fs.Bool("confirm", false,
			"Lock every suggested partnership from the partner column"),
		noPair: fs.Bool("nopair", false,
			"Ignore all partnerships; everyone enters as a single"),
		cutoff: fs.String("cutoff", "",
			"Drop players who registered at or after this time"),
	}
}

func (rf rosterFlags) load(ctx context.Context, fs *flag.FlagSet) roster.Roster {
	if *rf.src == "" {
		fmt.Fprintln(os.Stderr, "Please provide a --roster file or url.")
		fs.Usage()
		os.Exit(1)
	}

	r, err := roster.Load(ctx, roster.NewClient(ctx), *rf.src)
	if err != nil {
		log.Fatalf("Error loading roster %v: %v", *rf.src, err)
	}
	if *rf.noPair {
		r = r.WithoutPartners()
	} else if *rf.confirm {
		r = r.ConfirmAll()
	}
	if *rf.cutoff != "" {
		cutoff, err := internal.ParseDateOrZero(*rf.cutoff)
		if err != nil {
			log.Fatalf("Error parsing --cutoff %q: %v", *rf.cutoff, err)
		}
		r = r.RegisteredBefore(cutoff)
	}

	return r
}

func handleRoster(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("roster", flag.ExitOnError)
	rf := addRosterFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	r := rf.load(ctx, fs)
	fmt.Print(roster.BuildRosterOutput(r))
}

func handleDivisions(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("divisions", flag.ExitOnError)
	rf := addRosterFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	r := rf.load(ctx, fs)
	fmt.Print(tournament.BuildDivisionsOutput(tournament.GroupByDivision(r)))
}

func handleDraw(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	rf := addRosterFlags(fs)
	settingsPath := fs.String("settings", "", "YAML event settings file")
	courts := fs.Int("courts", 0, "Courts per division (1-64)")
	start := fs.Int("start", 0, "First court number")
	rounds := fs.Int("rounds", 0,
		"Rounds to generate (0 derives it from the roster, max 20)")
	toScore := fs.Int("toscore", 0, "Points per game")
	seed := fs.Int64("seed", 0, "Random seed (0 picks one)")
	combine := fs.Bool("combine", false, "Draw all divisions together")
	regen := fs.Int("regen", 0, "Regenerate this round after drawing")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	settings := tournament.DefaultSettings()
	if *settingsPath != "" {
		var err error
		settings, err = tournament.LoadSettings(*settingsPath)
		if err != nil {
			log.Fatalf("Error loading settings: %v", err)
		}
	}

	// command line flags win over the settings file when given
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "courts":
			settings.Courts = *courts
		case "start":
			settings.StartCourt = *start
		case "rounds":
			settings.Rounds = *rounds
		case "toscore":
			settings.ToScore = *toScore
		case "seed":
			settings.Seed = *seed
		case "combine":
			settings.CombineDivisions = *combine
		case "cutoff":
			settings.RegistrationCutoff = *rf.cutoff
		}
	})
	// enforce bounds
	if settings.Courts < 1 {
		settings.Courts = 1
	} else if settings.Courts > maxCourts {
		settings.Courts = maxCourts
	}
	if settings.Rounds < 0 {
		settings.Rounds = 0
	} else if settings.Rounds > maxRounds {
		settings.Rounds = maxRounds
	}
	if settings.Seed == 0 {
		settings.Seed = time.Now().UnixNano()
	}

	r := rf.load(ctx, fs)
	result, err := tournament.Run(ctx, r, settings)
	if err != nil {
		log.Fatalf("Error generating draw: %v", err)
	}
	if *regen > 0 {
		if err := result.Regenerate(*regen); err != nil {
			log.Fatalf("Error regenerating round %v: %v", *regen, err)
		}
	}

	fmt.Print(tournament.BuildDrawOutput(result))
	fmt.Printf("Seed: %v (rerun with '%s draw --seed %v ...' to reproduce)\n",
		settings.Seed, os.Args[0], settings.Seed)
}
