package holdem

import "github.com/moonhole/triboard-engine/card"

// Evaluator scores a hand of cards (typically 5 board cards + 2 hole
// cards); higher beats lower, ties possible. Hand evaluation itself is an
// external collaborator — the engine never implements the ranking
// algorithm (see the evaluator package, which adapts a third-party
// library into this function type).
type Evaluator func(cards []card.Card) int

// BoardNode is the tagged union of a live BoardState and a terminal
// BoardTerminal, mirroring the reference implementation's runtime type
// check on namedtuples with a Go interface.
type BoardNode interface {
	isBoardNode()
}

// BoardState is an immutable snapshot of one board's sub-game: pot, this
// street's per-seat pips, per-seat hole cards (nil until assigned), the
// board's own private deck, and a back-link to the predecessor snapshot.
type BoardState struct {
	Pot      int
	Pips     [2]int
	Hands    [2][]card.Card
	Deck     card.Deck
	Previous *BoardState
	Settled  bool
	Reveal   bool
}

func (*BoardState) isBoardNode() {}

// BoardTerminal wraps the per-seat chip payout for one board (sums to
// Previous.Pot + sum(Previous.Pips) unless split) and the final snapshot.
type BoardTerminal struct {
	Deltas   [2]int
	Previous *BoardState
}

func (*BoardTerminal) isBoardNode() {}

// NewBoardState starts a board at the given blind-funded pot with blinds
// already posted as pips, and an independent private deck.
func NewBoardState(pot int, smallBlind, bigBlind int, deck card.Deck) *BoardState {
	return &BoardState{
		Pot:    pot,
		Pips:   [2]int{smallBlind, bigBlind},
		Hands:  [2][]card.Card{nil, nil},
		Deck:   deck,
		Reveal: true,
	}
}

// LegalActions returns the admissible action tags for the active seat
// (Seat(button)) given the shared stacks.
func (b *BoardState) LegalActions(button int, stacks [2]int) ActionSet {
	active := Seat(button)
	if len(b.Hands[active]) == 0 {
		return newActionSet(ActionAssign)
	}
	if b.Settled {
		return newActionSet(ActionCheck)
	}
	cc := b.Pips[1-active] - b.Pips[active]
	if cc == 0 {
		if stacks[0] == 0 || stacks[1] == 0 {
			return newActionSet(ActionCheck)
		}
		return newActionSet(ActionCheck, ActionRaise)
	}
	if cc == stacks[active] || stacks[1-active] == 0 {
		return newActionSet(ActionFold, ActionCall)
	}
	return newActionSet(ActionFold, ActionCall, ActionRaise)
}

// RaiseBounds returns (min_total, max_total) absolute pips for the active
// seat, given the configured big blind (the table minimum raise size).
func (b *BoardState) RaiseBounds(button int, stacks [2]int, bigBlind int) (int, int) {
	active := Seat(button)
	cc := b.Pips[1-active] - b.Pips[active]
	maxContribution := minInt(stacks[active], stacks[1-active]+cc)
	minContribution := minInt(maxContribution, cc+maxInt(cc, bigBlind))
	return b.Pips[active] + minContribution, b.Pips[active] + maxContribution
}

// Proceed advances this board by one action performed by the active seat.
func (b *BoardState) Proceed(act Action, button int, street Street, bigBlind int) BoardNode {
	active := Seat(button)
	switch act.Type {
	case ActionAssign:
		hands := b.Hands
		hands[active] = act.Cards
		return &BoardState{
			Pot: b.Pot, Pips: b.Pips, Hands: hands, Deck: b.Deck,
			Previous: b, Settled: b.Settled, Reveal: b.Reveal,
		}
	case ActionFold:
		newPot := b.Pot + b.Pips[0] + b.Pips[1]
		var deltas [2]int
		if active == 0 {
			deltas = [2]int{0, newPot}
		} else {
			deltas = [2]int{newPot, 0}
		}
		final := &BoardState{
			Pot: newPot, Pips: [2]int{0, 0}, Hands: b.Hands, Deck: b.Deck,
			Previous: b, Settled: true, Reveal: false,
		}
		return &BoardTerminal{Deltas: deltas, Previous: final}
	case ActionCall:
		if button == 0 {
			// Small blind calling the big blind on the first betting turn of
			// street 0 (button 0, right after both seats' Assign turns).
			return &BoardState{
				Pot: b.Pot, Pips: [2]int{bigBlind, bigBlind}, Hands: b.Hands,
				Deck: b.Deck, Previous: b, Settled: false, Reveal: b.Reveal,
			}
		}
		pips := b.Pips
		pips[active] += pips[1-active] - pips[active]
		return &BoardState{
			Pot: b.Pot, Pips: pips, Hands: b.Hands, Deck: b.Deck,
			Previous: b, Settled: true, Reveal: b.Reveal,
		}
	case ActionCheck:
		settled := b.Settled
		if (street == StreetPreflop && button > 0) || button > 1 {
			settled = true
		}
		return &BoardState{
			Pot: b.Pot, Pips: b.Pips, Hands: b.Hands, Deck: b.Deck,
			Previous: b, Settled: settled, Reveal: b.Reveal,
		}
	default: // ActionRaise
		pips := b.Pips
		pips[active] = act.Amount
		return &BoardState{
			Pot: b.Pot, Pips: pips, Hands: b.Hands, Deck: b.Deck,
			Previous: b, Settled: false, Reveal: b.Reveal,
		}
	}
}

// Showdown compares both hands against the board's revealed 5-card board
// and awards the pot; a tie splits by integer division, discarding the odd
// chip (§9: preserved as specified behavior, not a bug).
func (b *BoardState) Showdown(evaluate Evaluator) *BoardTerminal {
	community := b.Deck.Peek(5)
	score0 := evaluate(append(append([]card.Card{}, community...), b.Hands[0]...))
	score1 := evaluate(append(append([]card.Card{}, community...), b.Hands[1]...))

	var deltas [2]int
	switch {
	case score0 > score1:
		deltas = [2]int{b.Pot, 0}
	case score1 > score0:
		deltas = [2]int{0, b.Pot}
	default:
		half := b.Pot / 2
		deltas = [2]int{half, half}
	}
	return &BoardTerminal{Deltas: deltas, Previous: b}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
