// Command samplebot is a minimal reference player: it assigns its dealt
// hole cards to each board as soon as it is legal, then check-calls for
// the rest of the hand. It exists to give the protocol a concrete,
// runnable counterparty — not a scored strategy (spec.md explicitly
// scopes the sample bot's strategy out). Grounded on
// original_source/python_skeleton/player.py's Player.get_actions.
package main

import (
	"log"
	"os"

	"github.com/moonhole/triboard-engine/config"
	"github.com/moonhole/triboard-engine/holdem"
	"github.com/moonhole/triboard-engine/playerkit"
)

type bot struct{}

func (bot) HandleNewRound(gs playerkit.GameState, round *holdem.RoundState, active int) {}

func (bot) HandleRoundOver(gs playerkit.GameState, round *holdem.RoundTerminal, active int) {}

func (bot) GetActions(gs playerkit.GameState, round *holdem.RoundState, active int) []holdem.Action {
	legal := round.LegalActions()
	hand := round.Hands[active]

	actions := make([]holdem.Action, len(legal))
	for i, l := range legal {
		switch {
		case l.Has(holdem.ActionAssign):
			actions[i] = holdem.Assign(hand[2*i : 2*i+2])
		case l.Has(holdem.ActionCheck):
			actions[i] = holdem.Check()
		default:
			actions[i] = holdem.Call()
		}
	}
	return actions
}

func main() {
	args, err := playerkit.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("[SampleBot] %v", err)
	}

	cfg := config.Default()
	roundCfg := holdem.RoundConfig{
		NumBoards:     cfg.NumBoards,
		StartingStack: cfg.StartingStack,
		SmallBlind:    cfg.SmallBlind,
		BigBlind:      cfg.BigBlind,
	}

	if err := playerkit.Run(bot{}, roundCfg, args); err != nil {
		log.Fatalf("[SampleBot] %v", err)
	}
}
