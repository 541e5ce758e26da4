package evaluator

import (
	"testing"

	"github.com/moonhole/triboard-engine/card"
)

func mustCards(t *testing.T, codes ...string) []card.Card {
	t.Helper()
	out := make([]card.Card, len(codes))
	for i, c := range codes {
		cc, err := card.ParseCard(c)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", c, err)
		}
		out[i] = cc
	}
	return out
}

func TestEvaluateRanksPairAboveHighCard(t *testing.T) {
	community := mustCards(t, "2c", "5d", "9h", "Jc", "Ks")
	pair := mustCards(t, "Kh", "Qs") // pairs the king on the board
	highCard := mustCards(t, "3s", "7d")

	pairScore := Evaluate(append(append([]card.Card{}, community...), pair...))
	highCardScore := Evaluate(append(append([]card.Card{}, community...), highCard...))

	if pairScore <= highCardScore {
		t.Fatalf("pair score (%d) did not beat high-card score (%d); higher must beat lower", pairScore, highCardScore)
	}
}

func TestEvaluateIsSymmetricForIdenticalHands(t *testing.T) {
	community := mustCards(t, "2c", "5d", "9h", "Jc", "Ks")
	handA := mustCards(t, "Ah", "Td")
	handB := mustCards(t, "Ac", "Ts")

	scoreA := Evaluate(append(append([]card.Card{}, community...), handA...))
	scoreB := Evaluate(append(append([]card.Card{}, community...), handB...))

	if scoreA != scoreB {
		t.Fatalf("equivalent-rank hands scored differently: %d vs %d", scoreA, scoreB)
	}
}

func TestNewReturnsAUsableEvaluator(t *testing.T) {
	eval := New()
	community := mustCards(t, "2c", "5d", "9h", "Jc", "Ks")
	hand := mustCards(t, "Ah", "Td")
	if eval(append(append([]card.Card{}, community...), hand...)) == 0 {
		t.Fatalf("New()-bound evaluator returned zero for a valid hand")
	}
}
