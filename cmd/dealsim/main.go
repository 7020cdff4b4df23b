package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"lebdeal/internal/bot"
	"lebdeal/internal/config"
	"lebdeal/internal/sim"
)

func main() {
	log.SetFlags(0)

	var (
		human  = flag.Int("human", -1, "seat to play yourself (0-3), -1 for bots only")
		levels = flag.String("levels", "standard,standard,standard,standard", "comma-separated bot difficulties (easy|standard|hard)")
		seed   = flag.Int64("seed", 0, "deal seed, 0 for random")
		cfg    = flag.String("config", "", "path to a game config JSON")
	)
	flag.Parse()

	if *cfg != "" {
		if err := config.LoadGameConfig(*cfg); err != nil {
			log.Fatalf("game config: %v", err)
		}
	}

	var parsed []bot.BotLevel
	for _, tok := range strings.Split(*levels, ",") {
		parsed = append(parsed, bot.ParseLevel(strings.TrimSpace(tok)))
	}

	runner, err := sim.New(sim.Options{
		HumanSeat: *human,
		Levels:    parsed,
		Rules:     config.Rules(),
		Seed:      *seed,
		In:        os.Stdin,
		Out:       os.Stdout,
	})
	if err != nil {
		log.Fatal(err)
	}

	final, err := runner.Run()
	if err != nil {
		if errors.Is(err, sim.ErrInputClosed) {
			fmt.Println("\nbye")
			return
		}
		log.Fatal(err)
	}

	fmt.Printf("final totals: %v\n", final.Scores.Totals)
}
