// Package protocol implements the bespoke text wire codec described in
// spec.md §6: messages end with '\n', clauses are space-separated, and
// board sub-clauses within one clause are ';'-separated. This package only
// encodes/decodes; legality arbitration against a RoundState (the
// "contract" spec.md describes) lives in the connector package, which has
// the game-state context the codec deliberately does not.
package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/moonhole/triboard-engine/card"
	"github.com/moonhole/triboard-engine/holdem"
)

// EncodeCards renders a comma-joined card list, e.g. "Ah,Td".
func EncodeCards(cards []card.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// ParseCards splits and decodes a comma-joined card list. An empty string
// decodes to an empty (not nil-vs-empty-ambiguous) slice, matching the
// wire's representation of "no cards" (e.g. opponent's cards after a fold).
func ParseCards(s string) ([]card.Card, error) {
	if s == "" {
		return []card.Card{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]card.Card, len(parts))
	for i, p := range parts {
		c, err := card.ParseCard(p)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// EncodeBoardAction renders one board's action clause, e.g. "1F", "2C",
// "3R100", "1A2c,3d"; boardNum is 1-based per the wire grammar.
func EncodeBoardAction(boardNum int, act holdem.Action) string {
	prefix := strconv.Itoa(boardNum)
	switch act.Type {
	case holdem.ActionFold:
		return prefix + "F"
	case holdem.ActionCall:
		return prefix + "C"
	case holdem.ActionCheck:
		return prefix + "K"
	case holdem.ActionRaise:
		return prefix + "R" + strconv.Itoa(act.Amount)
	case holdem.ActionAssign:
		return prefix + "A" + EncodeCards(act.Cards)
	default:
		return prefix + "K"
	}
}

// EncodeBoardReveal renders a board's revealed community-card clause, e.g.
// "1BAh,Td,2c,3d,9s"; trailing not-yet-revealed cards are simply omitted
// (EncodeCards on a shorter slice), matching the "trailing empties
// truncated" wire note.
func EncodeBoardReveal(boardNum int, community []card.Card) string {
	return strconv.Itoa(boardNum) + "B" + EncodeCards(community)
}

// EncodeBoardShow renders a board's showdown-reveal clause for one seat's
// hole cards, e.g. "1O2c,3d" or "1O" (empty, after a fold).
func EncodeBoardShow(boardNum int, cards []card.Card) string {
	return strconv.Itoa(boardNum) + "O" + EncodeCards(cards)
}

// EncodeActions joins per-board action clauses with ';', in board order.
func EncodeActions(actions []holdem.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = EncodeBoardAction(i+1, a)
	}
	return strings.Join(parts, ";")
}

// SplitResponseLine splits a player's reply into exactly numBoards
// board-clauses. Per §6 step 5: if the reply contains ';' it must split
// into exactly numBoards parts; a bare single clause (typically an
// end-of-round ack) is replicated for every board.
func SplitResponseLine(line string, numBoards int) ([]string, error) {
	if strings.Contains(line, ";") {
		parts := strings.Split(line, ";")
		if len(parts) != numBoards {
			return nil, holdem.ErrBoardCountMismatch
		}
		return parts, nil
	}
	parts := make([]string, numBoards)
	for i := range parts {
		parts[i] = line
	}
	return parts, nil
}

// DecodeBoardAction parses one board sub-clause ("1F", "2R100", "3A2c,3d")
// into its 1-based board number and the encoded action. It does not check
// legality; that is the connector's job once it has the active BoardState.
func DecodeBoardAction(clause string) (boardNum int, act holdem.Action, err error) {
	digits := 0
	for digits < len(clause) && clause[digits] >= '0' && clause[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits >= len(clause) {
		return 0, holdem.Action{}, fmt.Errorf("malformed board clause: %q", clause)
	}
	boardNum, err = strconv.Atoi(clause[:digits])
	if err != nil {
		return 0, holdem.Action{}, err
	}

	letter := clause[digits]
	rest := clause[digits+1:]
	switch letter {
	case 'F':
		return boardNum, holdem.Fold(), nil
	case 'C':
		return boardNum, holdem.Call(), nil
	case 'K':
		return boardNum, holdem.Check(), nil
	case 'R':
		amount, err := strconv.Atoi(rest)
		if err != nil {
			return 0, holdem.Action{}, fmt.Errorf("malformed raise amount: %q", rest)
		}
		return boardNum, holdem.Raise(amount), nil
	case 'A':
		cards, err := ParseCards(rest)
		if err != nil {
			return 0, holdem.Action{}, err
		}
		return boardNum, holdem.Assign(cards), nil
	default:
		return 0, holdem.Action{}, fmt.Errorf("unknown action letter: %q", string(letter))
	}
}
