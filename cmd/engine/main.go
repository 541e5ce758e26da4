// Command engine runs one triple-board heads-up match to completion: it
// loads configuration from the environment, builds and connects both
// player subprocesses, plays NUM_ROUNDS rounds, and writes the game log.
// Grounded on the teacher's apps/server/main.go wiring style (env-loaded
// services, [Tag] log prefixes, fatal on init failure).
package main

import (
	"log"
	"math/rand"

	"github.com/moonhole/triboard-engine/config"
	"github.com/moonhole/triboard-engine/evaluator"
	"github.com/moonhole/triboard-engine/match"
	"github.com/moonhole/triboard-engine/matchlog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Engine] failed to load configuration: %v", err)
	}

	log.Printf("[Engine] starting match: %s vs %s, %d rounds, %d boards",
		cfg.Player1Name, cfg.Player2Name, cfg.NumRounds, cfg.NumBoards)

	store, err := matchlog.OpenFromEnv()
	if err != nil {
		log.Printf("[Engine] matchlog persistence disabled: %v", err)
	} else {
		defer store.Close()
	}

	rng := rand.New(rand.NewSource(randSeed()))
	m := match.New(cfg, rng, evaluator.New())
	m.AttachStore(store)
	gameLog := m.Run()

	log.Printf("[Engine] match complete: %d game log lines written to %s.txt", len(gameLog), cfg.GameLogFilename)
}
