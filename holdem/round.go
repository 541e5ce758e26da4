package holdem

import (
	"math/rand"

	"github.com/moonhole/triboard-engine/card"
)

// RoundNode is the tagged union of a live RoundState and a terminal
// RoundTerminal.
type RoundNode interface {
	isRoundNode()
}

// RoundState aggregates NUM_BOARDS board states plus the shared stacks,
// button counter, and street index for one round of the match.
type RoundState struct {
	Button      int
	Street      Street
	Stacks      [2]int
	Hands       [2][]card.Card // full round hand (2*NumBoards), until assigned away
	BoardStates []BoardNode
	Previous    *RoundState
}

func (*RoundState) isRoundNode() {}

// RoundTerminal carries net round deltas (vs. STARTING_STACK, summing to
// zero) and the final RoundState they were computed from.
type RoundTerminal struct {
	Deltas   [2]int
	Previous *RoundState
}

func (*RoundTerminal) isRoundNode() {}

// RoundConfig is the subset of match configuration the round state machine
// needs; kept narrow so holdem does not import the config package.
type RoundConfig struct {
	NumBoards     int
	StartingStack int
	SmallBlind    int
	BigBlind      int
}

// NewRound shuffles a master deck, deals each seat its full round hand,
// gives each board an independent private residual deck, and posts blinds
// on every board.
func NewRound(cfg RoundConfig, rng *rand.Rand) *RoundState {
	master := card.NewFullDeck()
	master.Shuffle(rng)

	hands := [2][]card.Card{
		master.Deal(cfg.NumBoards * 2),
		master.Deal(cfg.NumBoards * 2),
	}

	boards := make([]BoardNode, cfg.NumBoards)
	for i := 0; i < cfg.NumBoards; i++ {
		residual := master.Residual()
		residual.Shuffle(rng)
		boards[i] = NewBoardState((i+1)*cfg.BigBlind, cfg.SmallBlind, cfg.BigBlind, residual)
	}

	return &RoundState{
		Button: -2,
		Street: StreetPreflop,
		Stacks: [2]int{
			cfg.StartingStack - cfg.NumBoards*cfg.SmallBlind,
			cfg.StartingStack - cfg.NumBoards*cfg.BigBlind,
		},
		Hands:       hands,
		BoardStates: boards,
	}
}

// LegalActions maps each non-terminal board to its legal_actions; terminal
// boards report {Check} (the end-of-round acknowledgement).
func (r *RoundState) LegalActions() []ActionSet {
	out := make([]ActionSet, len(r.BoardStates))
	for i, node := range r.BoardStates {
		if b, ok := node.(*BoardState); ok {
			out[i] = b.LegalActions(r.Button, r.Stacks)
		} else {
			out[i] = newActionSet(ActionCheck)
		}
	}
	return out
}

// RaiseBounds aggregates across unsettled non-terminal boards. The lower
// bound is always zero — a player may call/check on some boards and raise
// on others — callers must still enforce each board's own minimum via its
// RaiseBounds when validating a per-board Raise (§9).
func (r *RoundState) RaiseBounds(bigBlind int) (int, int) {
	active := Seat(r.Button)
	netContinueCost := 0
	netPipsUnsettled := 0
	for _, node := range r.BoardStates {
		b, ok := node.(*BoardState)
		if !ok || b.Settled {
			continue
		}
		netContinueCost += b.Pips[1-active] - b.Pips[active]
		netPipsUnsettled += b.Pips[active]
	}
	max := netPipsUnsettled + minInt(r.Stacks[active], r.Stacks[1-active]+netContinueCost)
	return 0, max
}

// Proceed advances every board independently, debits the active seat's
// stack by its aggregate pip increase, and rolls the street forward once
// every board is settled or terminal.
func (r *RoundState) Proceed(actions []Action, cfg RoundConfig, evaluate Evaluator) (RoundNode, error) {
	if len(actions) != len(r.BoardStates) {
		return nil, ErrBoardCountMismatch
	}

	active := Seat(r.Button)
	newBoards := make([]BoardNode, len(r.BoardStates))
	contribution := 0
	allSettled := true

	for i, node := range r.BoardStates {
		b, ok := node.(*BoardState)
		if !ok {
			newBoards[i] = node
			continue
		}
		next := b.Proceed(actions[i], r.Button, r.Street, cfg.BigBlind)
		newBoards[i] = next
		if nb, ok := next.(*BoardState); ok {
			contribution += nb.Pips[active] - b.Pips[active]
			if !nb.Settled {
				allSettled = false
			}
		}
	}

	newStacks := r.Stacks
	newStacks[active] -= contribution
	if newStacks[active] < 0 {
		return nil, ErrInvalidState("stack underflow")
	}

	state := &RoundState{
		Button: r.Button + 1, Street: r.Street, Stacks: newStacks,
		Hands: r.Hands, BoardStates: newBoards, Previous: r,
	}
	if allSettled {
		return state.proceedStreet(cfg, evaluate), nil
	}
	return state, nil
}

// proceedStreet folds each non-terminal board's pips into its pot and
// either advances to the next street or runs the round's showdown.
func (r *RoundState) proceedStreet(cfg RoundConfig, evaluate Evaluator) RoundNode {
	newBoards := make([]BoardNode, len(r.BoardStates))
	allTerminal := true
	for i, node := range r.BoardStates {
		if b, ok := node.(*BoardState); ok {
			newBoards[i] = &BoardState{
				Pot: b.Pot + b.Pips[0] + b.Pips[1], Pips: [2]int{0, 0},
				Hands: b.Hands, Deck: b.Deck, Previous: b, Reveal: b.Reveal,
			}
			allTerminal = false
		} else {
			newBoards[i] = node
		}
	}

	if r.Street == StreetRiver || allTerminal {
		atRiver := &RoundState{
			Button: r.Button, Street: StreetRiver, Stacks: r.Stacks,
			Hands: r.Hands, BoardStates: newBoards, Previous: r,
		}
		return atRiver.Showdown(cfg, evaluate)
	}

	next := StreetFlop
	if r.Street != StreetPreflop {
		next = r.Street + 1
	}
	return &RoundState{
		Button: 1, Street: next, Stacks: r.Stacks,
		Hands: r.Hands, BoardStates: newBoards, Previous: r,
	}
}

// Showdown runs Showdown on every non-terminal board, sums per-seat
// deltas, and subtracts STARTING_STACK to produce net round deltas.
func (r *RoundState) Showdown(cfg RoundConfig, evaluate Evaluator) *RoundTerminal {
	terminalBoards := make([]BoardNode, len(r.BoardStates))
	var net [2]int
	for i, node := range r.BoardStates {
		var t *BoardTerminal
		if b, ok := node.(*BoardState); ok {
			t = b.Showdown(evaluate)
		} else {
			t = node.(*BoardTerminal)
		}
		terminalBoards[i] = t
		net[0] += t.Deltas[0]
		net[1] += t.Deltas[1]
	}
	endStacks := [2]int{r.Stacks[0] + net[0], r.Stacks[1] + net[1]}
	deltas := [2]int{endStacks[0] - cfg.StartingStack, endStacks[1] - cfg.StartingStack}
	final := &RoundState{
		Button: r.Button, Street: r.Street, Stacks: r.Stacks,
		Hands: r.Hands, BoardStates: terminalBoards, Previous: r,
	}
	return &RoundTerminal{Deltas: deltas, Previous: final}
}
