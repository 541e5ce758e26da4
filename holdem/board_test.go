package holdem

import (
	"testing"

	"github.com/moonhole/triboard-engine/card"
)

func TestLegalActionsRequiresAssignBeforeHandsDealt(t *testing.T) {
	b := NewBoardState(6, 1, 2, card.Deck{})
	legal := b.LegalActions(0, [2]int{198, 196})
	if !legal.Has(ActionAssign) || len(legal) != 1 {
		t.Fatalf("LegalActions before assignment = %v, want {Assign}", legal)
	}
}

func assignedBoard(t *testing.T) *BoardState {
	t.Helper()
	b := NewBoardState(6, 1, 2, card.Deck{})
	ah, _ := card.ParseCard("Ah")
	kh, _ := card.ParseCard("Kh")
	b.Hands[0] = []card.Card{ah, kh}
	qs, _ := card.ParseCard("Qs")
	js, _ := card.ParseCard("Js")
	b.Hands[1] = []card.Card{qs, js}
	return b
}

func TestLegalActionsFacingABetOffersFoldCallRaise(t *testing.T) {
	b := assignedBoard(t) // pips [1,2]: small blind faces a bet
	legal := b.LegalActions(0, [2]int{198, 196})
	if !legal.Has(ActionFold) || !legal.Has(ActionCall) || !legal.Has(ActionRaise) {
		t.Fatalf("LegalActions facing a live bet = %v, want {Fold,Call,Raise}", legal)
	}
}

func TestLegalActionsAllInRemovesRaise(t *testing.T) {
	b := assignedBoard(t)
	legal := b.LegalActions(0, [2]int{1, 196}) // active seat is covered
	if !legal.Has(ActionFold) || !legal.Has(ActionCall) || legal.Has(ActionRaise) {
		t.Fatalf("LegalActions when covered = %v, want {Fold,Call} only", legal)
	}
}

func TestLegalActionsSettledBoardOffersCheckOnly(t *testing.T) {
	b := assignedBoard(t)
	b.Settled = true
	legal := b.LegalActions(1, [2]int{198, 196})
	if !legal.Has(ActionCheck) || len(legal) != 1 {
		t.Fatalf("LegalActions on settled board = %v, want {Check}", legal)
	}
}

func TestRaiseBoundsRespectBigBlindMinimum(t *testing.T) {
	b := assignedBoard(t) // Pips [1,2]
	min, max := b.RaiseBounds(0, [2]int{198, 196}, 2)
	if min != 4 { // call to 2, plus a full BB raise on top
		t.Errorf("min raise = %d, want 4", min)
	}
	if max != 198 { // own pips already in (1) + min(own remaining stack, opponent's remaining stack + cc)
		t.Errorf("max raise = %d, want 198", max)
	}
}

func TestProceedFoldAwardsEntirePotToOpponent(t *testing.T) {
	b := assignedBoard(t) // pot 6, pips [1,2]
	node := b.Proceed(Fold(), 0, StreetPreflop, 2)
	term, ok := node.(*BoardTerminal)
	if !ok {
		t.Fatalf("Proceed(Fold) did not terminate the board")
	}
	if term.Deltas != [2]int{0, 9} {
		t.Fatalf("Deltas = %v, want {0,9}", term.Deltas)
	}
}

func TestProceedCallSettlesAndEqualizesPips(t *testing.T) {
	b := assignedBoard(t) // pips [1,2], button 1 faces the call
	node := b.Proceed(Call(), 1, StreetPreflop, 2)
	next, ok := node.(*BoardState)
	if !ok {
		t.Fatalf("Proceed(Call) returned %T, want *BoardState", node)
	}
	if !next.Settled {
		t.Fatalf("board not settled after a call")
	}
	if next.Pips[0] != next.Pips[1] {
		t.Fatalf("Pips = %v, want equal", next.Pips)
	}
}

func TestProceedCheckCheckSettlesPostflop(t *testing.T) {
	b := assignedBoard(t)
	b.Pips = [2]int{0, 0}
	afterFirstCheck := b.Proceed(Check(), 1, StreetFlop, 2).(*BoardState)
	if afterFirstCheck.Settled {
		t.Fatalf("board settled after only one check")
	}
	afterSecondCheck := afterFirstCheck.Proceed(Check(), 2, StreetFlop, 2).(*BoardState)
	if !afterSecondCheck.Settled {
		t.Fatalf("board not settled after both seats checked")
	}
}

func TestProceedRaiseSetsAbsolutePips(t *testing.T) {
	b := assignedBoard(t) // Pips [1,2]
	node := b.Proceed(Raise(10), 0, StreetPreflop, 2)
	next := node.(*BoardState)
	if next.Pips[0] != 10 {
		t.Fatalf("Pips[0] after Raise(10) = %d, want 10 (absolute target)", next.Pips[0])
	}
	if next.Settled {
		t.Fatalf("board marked settled immediately after a raise")
	}
}

func TestShowdownSplitsPotOnTieDiscardingOddChip(t *testing.T) {
	b := assignedBoard(t)
	b.Pot = 7
	tie := func(_ []card.Card) int { return 1 }
	term := b.Showdown(tie)
	if term.Deltas[0] != 3 || term.Deltas[1] != 3 {
		t.Fatalf("tied showdown Deltas = %v, want {3,3} (odd chip discarded)", term.Deltas)
	}
}

func TestShowdownAwardsHigherScore(t *testing.T) {
	b := assignedBoard(t)
	b.Pot = 10
	seat0Wins := func(cards []card.Card) int {
		for _, c := range cards {
			if c == b.Hands[0][0] {
				return 100
			}
		}
		return 1
	}
	term := b.Showdown(seat0Wins)
	if term.Deltas != [2]int{10, 0} {
		t.Fatalf("Deltas = %v, want {10,0}", term.Deltas)
	}
}
