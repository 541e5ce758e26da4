package card

import "math/rand"

// Deck is a shuffled residue of the 52-card deck. Deal consumes cards from
// the front; Peek reads without consuming — community cards are always a
// Peek, never a Deal, so repeated calls at the same street see the same
// cards (card/card_list.go's PopCards always consumes, which is why boards
// need this separate non-consuming accessor).
type Deck struct {
	cards CardList
}

// NewFullDeck returns the 52 cards in a fixed, unshuffled order.
func NewFullDeck() Deck {
	cards := make(CardList, 0, 52)
	for _, suitBase := range []Card{0x00, 0x10, 0x20, 0x30} {
		for rank := Card(1); rank <= 13; rank++ {
			cards.Add(suitBase + rank)
		}
	}
	return Deck{cards: cards}
}

func (d Deck) Len() int {
	return d.cards.Count()
}

// Shuffle randomizes the deck in place using the supplied source, so a
// match can be replayed deterministically by fixing the seed.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the first n cards.
func (d *Deck) Deal(n int) []Card {
	dealt, ok := d.cards.PopCards(n)
	if !ok {
		return nil
	}
	return dealt
}

// FromCards builds a Deck directly from an already-known card sequence —
// used by the player-side reconstructor, which receives community cards
// piecemeal over the wire rather than dealing them from a shuffled deck.
func FromCards(cards []Card) Deck {
	cp := make(CardList, len(cards))
	copy(cp, cards)
	return Deck{cards: cp}
}

// Residual returns an independent copy of the remaining cards, suitable
// for handing to a board as its own private deck after the round's hole
// cards have been dealt from the master deck.
func (d Deck) Residual() Deck {
	cp := make(CardList, len(d.cards))
	copy(cp, d.cards)
	return Deck{cards: cp}
}

// Peek returns the first k cards without removing them. If fewer than k
// remain, it returns all that remain (callers truncate trailing-empty
// community card displays themselves).
func (d Deck) Peek(k int) []Card {
	if k > len(d.cards) {
		k = len(d.cards)
	}
	out := make([]Card, k)
	copy(out, d.cards[:k])
	return out
}
