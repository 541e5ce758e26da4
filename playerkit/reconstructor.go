package playerkit

import (
	"strconv"
	"strings"
	"time"

	"github.com/moonhole/triboard-engine/card"
	"github.com/moonhole/triboard-engine/holdem"
	"github.com/moonhole/triboard-engine/protocol"
)

// Bot is what a reference player implements against the reconstructed game
// tree — the three hooks original_source calls handle_new_round,
// get_actions, and handle_round_over.
type Bot interface {
	HandleNewRound(gs GameState, round *holdem.RoundState, active int)
	GetActions(gs GameState, round *holdem.RoundState, active int) []holdem.Action
	HandleRoundOver(gs GameState, round *holdem.RoundTerminal, active int)
}

// zeroEvaluator stands in for the real hand ranker on the player side: by
// the time a local showdown completes, the authoritative deltas are about
// to arrive on the wire via the D clause, so the exact local split is
// cosmetic only and never drives GameState.Bankroll.
func zeroEvaluator(_ []card.Card) int { return 0 }

// Reconstructor mirrors the engine's RoundState for one player process
// from its own incremental transcript.
type Reconstructor struct {
	bot Bot
	cfg holdem.RoundConfig

	game      GameState
	round     holdem.RoundNode
	active    int
	roundFlag bool // true until handle_new_round has fired for the round in progress
}

// NewReconstructor starts a fresh mirror with round_num 1, matching the
// reference's GameState(0, 0, 0., 1) initial value.
func NewReconstructor(bot Bot, cfg holdem.RoundConfig) *Reconstructor {
	return &Reconstructor{bot: bot, cfg: cfg, roundFlag: true, game: GameState{RoundNum: 1}}
}

// ProcessLine interprets one received line's clauses in order and returns
// the encoded response to send back, or quit=true on a Q clause (no
// response is sent in that case).
func (r *Reconstructor) ProcessLine(line string) (response string, quit bool) {
	for _, clause := range strings.Fields(line) {
		if clause == "" {
			continue
		}
		if clause == "Q" {
			return "", true
		}
		switch clause[0] {
		case 'T':
			r.handleClock(clause)
		case 'P':
			r.handleSeat(clause)
		case 'H':
			r.handleHand(clause)
		case 'D':
			r.handleDelta(clause)
		default:
			if clause[0] >= '0' && clause[0] <= '9' {
				r.handleMultiClause(clause)
			}
		}
	}

	if r.roundFlag {
		checks := make([]holdem.Action, r.cfg.NumBoards)
		for i := range checks {
			checks[i] = holdem.Check()
		}
		return protocol.EncodeActions(checks), false
	}

	live, ok := r.round.(*holdem.RoundState)
	if !ok {
		return "", false
	}
	actions := r.bot.GetActions(r.game, live, r.active)
	return protocol.EncodeActions(actions), false
}

func (r *Reconstructor) handleClock(clause string) {
	secs, err := strconv.ParseFloat(clause[1:], 64)
	if err != nil {
		return
	}
	r.game.GameClock = time.Duration(secs * float64(time.Second))
}

func (r *Reconstructor) handleSeat(clause string) {
	seat, err := strconv.Atoi(clause[1:])
	if err != nil {
		return
	}
	r.active = seat
}

// handleHand builds a fresh RoundState from this player's private round
// hand (NewBoardState per board, blinds pre-posted as pips) and, on the
// first H of a round, fires handle_new_round.
func (r *Reconstructor) handleHand(clause string) {
	hand, err := protocol.ParseCards(clause[1:])
	if err != nil {
		return
	}

	hands := [2][]card.Card{}
	hands[r.active] = hand

	boards := make([]holdem.BoardNode, r.cfg.NumBoards)
	for i := 0; i < r.cfg.NumBoards; i++ {
		boards[i] = holdem.NewBoardState((i+1)*r.cfg.BigBlind, r.cfg.SmallBlind, r.cfg.BigBlind, card.Deck{})
	}

	state := &holdem.RoundState{
		Button: -2,
		Street: holdem.StreetPreflop,
		Stacks: [2]int{
			r.cfg.StartingStack - r.cfg.NumBoards*r.cfg.SmallBlind,
			r.cfg.StartingStack - r.cfg.NumBoards*r.cfg.BigBlind,
		},
		Hands:       hands,
		BoardStates: boards,
	}
	r.round = state

	if r.roundFlag {
		r.bot.HandleNewRound(r.game, state, r.active)
		r.roundFlag = false
	}
}

// handleDelta applies the round's net chip deltas, fires handle_round_over,
// and arms roundFlag + bumps round_num for the next round.
func (r *Reconstructor) handleDelta(clause string) {
	subclauses := strings.Split(clause, ";")
	if len(subclauses) != 2 {
		return
	}
	mine, err1 := strconv.Atoi(subclauses[0][1:])
	theirs, err2 := strconv.Atoi(subclauses[1][1:])
	if err1 != nil || err2 != nil {
		return
	}

	final, ok := r.round.(*holdem.RoundTerminal)
	if !ok {
		if live, isLive := r.round.(*holdem.RoundState); isLive {
			final = &holdem.RoundTerminal{Deltas: [2]int{mine, theirs}, Previous: live}
		} else {
			return
		}
	} else {
		final = &holdem.RoundTerminal{Deltas: [2]int{mine, theirs}, Previous: final.Previous}
	}
	r.round = final

	r.game.Bankroll += mine
	r.game.OppBankroll += theirs
	r.bot.HandleRoundOver(r.game, final, r.active)

	r.game.RoundNum++
	r.roundFlag = true
}

// handleMultiClause dispatches a ';'-joined per-board clause to reveal,
// showdown-show, or action handling, mirroring parse_multi_code's
// 'B'/'O'/else discrimination (card codes never contain the letters B or
// O, so a substring check is unambiguous).
func (r *Reconstructor) handleMultiClause(clause string) {
	subclauses := strings.Split(clause, ";")
	if len(subclauses) != r.cfg.NumBoards {
		return
	}

	switch {
	case strings.Contains(clause, "B"):
		r.applyReveal(subclauses)
	case strings.Contains(clause, "O"):
		r.applyShow(subclauses)
	default:
		r.applyActions(subclauses)
	}
}

// boardsOf returns the RoundState carrying the current per-board slice,
// whichever of RoundState/RoundTerminal r.round currently is.
func (r *Reconstructor) boardsOf() *holdem.RoundState {
	switch n := r.round.(type) {
	case *holdem.RoundState:
		return n
	case *holdem.RoundTerminal:
		return n.Previous
	}
	return nil
}

func (r *Reconstructor) applyReveal(subclauses []string) {
	base := r.boardsOf()
	if base == nil {
		return
	}
	newBoards := make([]holdem.BoardNode, len(base.BoardStates))
	for i, sub := range subclauses {
		community, err := protocol.ParseCards(sub[digits(sub)+1:])
		if err != nil {
			newBoards[i] = base.BoardStates[i]
			continue
		}
		deck := card.FromCards(community)
		switch b := base.BoardStates[i].(type) {
		case *holdem.BoardState:
			newBoards[i] = &holdem.BoardState{
				Pot: b.Pot, Pips: b.Pips, Hands: b.Hands, Deck: deck,
				Previous: b, Settled: b.Settled, Reveal: b.Reveal,
			}
		case *holdem.BoardTerminal:
			revised := &holdem.BoardState{
				Pot: b.Previous.Pot, Pips: b.Previous.Pips, Hands: b.Previous.Hands,
				Deck: deck, Previous: b.Previous, Settled: b.Previous.Settled, Reveal: b.Previous.Reveal,
			}
			newBoards[i] = &holdem.BoardTerminal{Deltas: b.Deltas, Previous: revised}
		default:
			newBoards[i] = base.BoardStates[i]
		}
	}
	r.replaceBoards(base, newBoards)
}

func (r *Reconstructor) applyShow(subclauses []string) {
	base := r.boardsOf()
	if base == nil {
		return
	}
	newBoards := make([]holdem.BoardNode, len(base.BoardStates))
	for i, sub := range subclauses {
		payload := sub[digits(sub)+1:]
		bt, ok := base.BoardStates[i].(*holdem.BoardTerminal)
		if !ok || payload == "" {
			newBoards[i] = base.BoardStates[i]
			continue
		}
		cards, err := protocol.ParseCards(payload)
		if err != nil {
			newBoards[i] = base.BoardStates[i]
			continue
		}
		hands := bt.Previous.Hands
		hands[1-r.active] = cards
		revised := &holdem.BoardState{
			Pot: bt.Previous.Pot, Pips: bt.Previous.Pips, Hands: hands, Deck: bt.Previous.Deck,
			Previous: bt.Previous.Previous, Settled: bt.Previous.Settled, Reveal: bt.Previous.Reveal,
		}
		newBoards[i] = &holdem.BoardTerminal{Deltas: bt.Deltas, Previous: revised}
	}
	r.replaceBoards(base, newBoards)
}

func (r *Reconstructor) applyActions(subclauses []string) {
	live, ok := r.round.(*holdem.RoundState)
	if !ok {
		return
	}
	actions := make([]holdem.Action, len(subclauses))
	for i, sub := range subclauses {
		_, act, err := protocol.DecodeBoardAction(sub)
		if err != nil {
			return
		}
		actions[i] = act
	}
	next, err := live.Proceed(actions, r.cfg, zeroEvaluator)
	if err != nil {
		return
	}
	r.round = next
}

// replaceBoards rewraps newBoards into the same node shape (RoundState or
// RoundTerminal) r.round currently has, preserving everything else.
func (r *Reconstructor) replaceBoards(base *holdem.RoundState, newBoards []holdem.BoardNode) {
	revised := &holdem.RoundState{
		Button: base.Button, Street: base.Street, Stacks: base.Stacks,
		Hands: base.Hands, BoardStates: newBoards, Previous: base,
	}
	if t, ok := r.round.(*holdem.RoundTerminal); ok {
		r.round = &holdem.RoundTerminal{Deltas: t.Deltas, Previous: revised}
		return
	}
	r.round = revised
}

// digits returns the length of the leading decimal-digit run in s (the
// board-number prefix all sub-clauses share).
func digits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
