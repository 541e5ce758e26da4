// Package evaluator adapts the third-party github.com/chehsunliu/poker hand
// ranker into the holdem.Evaluator function type. Hand evaluation is an
// external collaborator per the spec: the engine never implements the
// ranking algorithm itself (the teacher's own Cactus Kev implementation in
// holdem/evaluator.go is deleted in favor of this adapter — see DESIGN.md).
package evaluator

import (
	"github.com/chehsunliu/poker"

	"github.com/moonhole/triboard-engine/card"
	"github.com/moonhole/triboard-engine/holdem"
)

// Evaluate scores a hand (5 community + 2 hole cards, or any ≥5 cards) by
// wrapping poker.Evaluate, whose raw rank is lower-is-better; it is
// inverted here so holdem.Evaluator's "higher beats lower" contract holds.
func Evaluate(cards []card.Card) int {
	hand := make([]poker.Card, len(cards))
	for i, c := range cards {
		hand[i] = poker.NewCard(c.String())
	}
	rank := poker.Evaluate(hand)
	return -int(rank)
}

// New returns the holdem.Evaluator bound to Evaluate, for callers that want
// the function-typed value rather than the package-level func directly.
func New() holdem.Evaluator {
	return Evaluate
}
