// Package playerkit is the reference reconstructor and socket runner a
// player process links against: it mirrors the engine's RoundState from
// the incremental wire transcript and calls the bot's hooks at the right
// moments — spec.md §4.6. Grounded on
// original_source/python_skeleton/skeleton/runner.py's Runner.run() and
// parse_multi_code(); only the single consistent clause-parsing
// interpretation spec.md §9 codifies is implemented (prefix at
// clause[0], payload at clause[1:]) — the buggy/dead-code variants in the
// original are not ported.
package playerkit

import "time"

// GameState is the player's running view of the match: its own and the
// opponent's bankroll, its remaining game clock, and the current round
// number.
type GameState struct {
	Bankroll    int
	OppBankroll int
	GameClock   time.Duration
	RoundNum    int
}
