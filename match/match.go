// Package match drives one fixed-length match between two connected
// players: NUM_ROUNDS rounds, seat alternation every round, an append-only
// game log, and final bankroll standings — spec.md §4.5. Grounded on
// original_source/engine.py's Game class (run/run_round/log_* methods);
// phrasing and structure are reproduced in Go idiom, not translated
// line-for-line.
package match

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/moonhole/triboard-engine/config"
	"github.com/moonhole/triboard-engine/connector"
	"github.com/moonhole/triboard-engine/holdem"
	"github.com/moonhole/triboard-engine/matchlog"
	"github.com/moonhole/triboard-engine/protocol"
)

// Match owns the two connectors, the running game log, and the RNG for
// one match run.
type Match struct {
	ID     string
	cfg    config.Config
	rng    *rand.Rand
	evalFn holdem.Evaluator
	store  *matchlog.Store

	players [2]*connector.Player
	pending [2][]string // unsent protocol clauses accumulated since each player's last query

	gameLog []string
}

// New wires a fresh match from configuration; players[0] starts on the
// button in round 1. evaluate is the external hand-ranking collaborator
// (see the evaluator package) — Match never ranks hands itself.
func New(cfg config.Config, rng *rand.Rand, evaluate holdem.Evaluator) *Match {
	p1 := connector.New(cfg.Player1Name, cfg.Player1Path, cfg)
	p2 := connector.New(cfg.Player2Name, cfg.Player2Path, cfg)
	return &Match{
		ID:      uuid.NewString(),
		cfg:     cfg,
		rng:     rng,
		evalFn:  evaluate,
		players: [2]*connector.Player{p1, p2},
	}
}

// AttachStore wires a matchlog.Store that Run persists each round's and
// the final match's outcome to; persistence is optional, and nil is a
// valid no-op value.
func (m *Match) AttachStore(store *matchlog.Store) { m.store = store }

// Run builds and starts both players, plays NUM_ROUNDS rounds with seat
// alternation, stops both players, and returns the completed game log.
func (m *Match) Run() []string {
	m.log(fmt.Sprintf("Match %s: %s vs %s", m.ID, m.players[0].Name, m.players[1].Name))

	for _, p := range m.players {
		p.Build()
	}
	for _, p := range m.players {
		p.Run()
	}

	for round := 1; round <= m.cfg.NumRounds; round++ {
		m.runRound(round)
		// Seat alternation: swap which physical player sits in seat 0.
		m.players[0], m.players[1] = m.players[1], m.players[0]
		m.pending[0], m.pending[1] = m.pending[1], m.pending[0]
	}

	m.log(fmt.Sprintf("Final, %s (%d), %s (%d)",
		m.players[0].Name, m.players[0].Bankroll(),
		m.players[1].Name, m.players[1].Bankroll()))

	for _, p := range m.players {
		p.Stop()
	}

	filename := m.cfg.GameLogFilename + ".txt"
	if err := os.WriteFile(filename, []byte(strings.Join(m.gameLog, "\n")+"\n"), 0o644); err != nil {
		log.Printf("[Match] failed to write %s: %v", filename, err)
	}

	if m.store != nil {
		err := m.store.RecordMatch(context.Background(), m.ID,
			m.players[0].Name, m.players[1].Name,
			m.players[0].Bankroll(), m.players[1].Bankroll(),
			strings.Join(m.gameLog, "\n"))
		if err != nil {
			log.Printf("[Match] failed to persist match record: %v", err)
		}
	}
	return m.gameLog
}

func (m *Match) log(line string) {
	m.gameLog = append(m.gameLog, line)
}

// runRound plays one round to a terminal RoundTerminal, applies its
// deltas, and logs the banner, per-street actions, and showdown.
func (m *Match) runRound(roundNum int) {
	m.log(fmt.Sprintf("Round #%d, %s (%d), %s (%d)",
		roundNum, m.players[0].Name, m.players[0].Bankroll(),
		m.players[1].Name, m.players[1].Bankroll()))

	cfg := holdem.RoundConfig{
		NumBoards:     m.cfg.NumBoards,
		StartingStack: m.cfg.StartingStack,
		SmallBlind:    m.cfg.SmallBlind,
		BigBlind:      m.cfg.BigBlind,
	}
	state := holdem.NewRound(cfg, m.rng)
	m.logRoundState(state)

	var node holdem.RoundNode = state
	for {
		cur, ok := node.(*holdem.RoundState)
		if !ok {
			break
		}
		active := holdem.Seat(cur.Button)
		actions, faults := m.players[active].Query(cur, m.pending[active], active)
		for _, f := range faults {
			m.log(f)
		}
		m.pending[active] = nil

		m.broadcastActions(cur, active, actions)
		m.logActions(cur, active, actions)

		next, err := cur.Proceed(actions, cfg, m.evaluator())
		if err != nil {
			log.Printf("[Match] round %d aborted: %v", roundNum, err)
			m.log(fmt.Sprintf("Round #%d aborted: %v", roundNum, err))
			return
		}
		if nr, ok := next.(*holdem.RoundState); ok && nr.Street != cur.Street {
			m.logStreet(nr)
		}
		node = next
	}

	terminal := node.(*holdem.RoundTerminal)
	m.broadcastReveal(terminal)
	m.logTerminalState(terminal)
	m.players[0].AddDelta(terminal.Deltas[0])
	m.players[1].AddDelta(terminal.Deltas[1])
	m.broadcastDeltas(terminal)

	if m.store != nil {
		err := m.store.RecordRound(context.Background(), m.ID, matchlog.RoundResult{
			RoundNum:    roundNum,
			Player1Name: m.players[0].Name,
			Player2Name: m.players[1].Name,
			Delta1:      terminal.Deltas[0],
			Delta2:      terminal.Deltas[1],
		})
		if err != nil {
			log.Printf("[Match] failed to persist round %d: %v", roundNum, err)
		}
	}

	// End-of-round acknowledgement: both players are queried once more so
	// the game clock ticks for the round's closing message and a
	// disconnect here is still caught; the expected reply is NUM_BOARDS
	// Checks, per §4.5/§6.
	for seat, p := range m.players {
		_, faults := p.Query(terminal, m.pending[seat], seat)
		for _, f := range faults {
			m.log(f)
		}
		m.pending[seat] = nil
	}
}

// broadcastReveal appends each board's community-card reveal and the
// opponent's hole cards (from each receiver's point of view) to both
// players' pending messages; folded boards (reveal=false) send an empty
// show clause instead.
func (m *Match) broadcastReveal(t *holdem.RoundTerminal) {
	for i, node := range t.Previous.BoardStates {
		bt, ok := node.(*holdem.BoardTerminal)
		if !ok {
			continue
		}
		if !bt.Previous.Reveal {
			empty := protocol.EncodeBoardShow(i+1, nil)
			m.pending[0] = append(m.pending[0], empty)
			m.pending[1] = append(m.pending[1], empty)
			continue
		}

		community := bt.Previous.Deck.Peek(5)
		reveal := protocol.EncodeBoardReveal(i+1, community)
		m.pending[0] = append(m.pending[0], reveal)
		m.pending[1] = append(m.pending[1], reveal)

		hand0, hand1 := bt.Previous.Hands[0], bt.Previous.Hands[1]
		m.pending[0] = append(m.pending[0], protocol.EncodeBoardShow(i+1, hand1))
		m.pending[1] = append(m.pending[1], protocol.EncodeBoardShow(i+1, hand0))

		m.log(fmt.Sprintf("%s shows %s on board %d", m.players[0].Name, protocol.EncodeCards(hand0), i+1))
		m.log(fmt.Sprintf("%s shows %s on board %d", m.players[1].Name, protocol.EncodeCards(hand1), i+1))
	}
}

func (m *Match) evaluator() holdem.Evaluator {
	return m.evalFn
}

// logRoundState records blind postings and queues each player's seat index
// and private hand for delivery on its next query.
func (m *Match) logRoundState(r *holdem.RoundState) {
	m.log(fmt.Sprintf("%s posts the blind of %d on each board", m.players[0].Name, m.cfg.SmallBlind))
	m.log(fmt.Sprintf("%s posts the blind of %d on each board", m.players[1].Name, m.cfg.BigBlind))

	for seat := 0; seat < 2; seat++ {
		m.pending[seat] = append(m.pending[seat],
			fmt.Sprintf("P%d", seat),
			"H"+protocol.EncodeCards(r.Hands[seat]))
	}
}

func (m *Match) logStreet(r *holdem.RoundState) {
	m.log(r.Street.String())
}

// logActions renders one human-readable line per board action, using
// "bets" for a first voluntary contribution into empty pips and "raises
// to" otherwise (the bet_overrides distinction from the original engine).
func (m *Match) logActions(r *holdem.RoundState, active int, actions []holdem.Action) {
	name := m.players[active].Name
	for i, a := range actions {
		b, ok := r.BoardStates[i].(*holdem.BoardState)
		if !ok {
			continue
		}
		switch a.Type {
		case holdem.ActionFold:
			m.log(fmt.Sprintf("%s folds on board %d", name, i+1))
		case holdem.ActionCall:
			m.log(fmt.Sprintf("%s calls on board %d", name, i+1))
		case holdem.ActionCheck:
			m.log(fmt.Sprintf("%s checks on board %d", name, i+1))
		case holdem.ActionRaise:
			betOverrides := b.Pips == [2]int{0, 0}
			if betOverrides {
				m.log(fmt.Sprintf("%s bets %d on board %d", name, a.Amount, i+1))
			} else {
				m.log(fmt.Sprintf("%s raises to %d on board %d", name, a.Amount, i+1))
			}
		case holdem.ActionAssign:
			m.log(fmt.Sprintf("%s assigns cards to board %d", name, i+1))
		}
	}
}

// logTerminalState reports each board's winner(s) and payout.
func (m *Match) logTerminalState(t *holdem.RoundTerminal) {
	for i, node := range t.Previous.BoardStates {
		bt, ok := node.(*holdem.BoardTerminal)
		if !ok {
			continue
		}
		for seat, delta := range bt.Deltas {
			if delta > 0 {
				m.log(fmt.Sprintf("%s awarded %d on board %d", m.players[seat].Name, delta, i+1))
			}
		}
	}
}

// broadcastActions appends this action's wire clause to both players'
// pending messages. An Assign batch reveals real hole cards, so the acting
// player gets the real clause while the opponent gets a card-stripped
// board-number+letter-only clause instead, matching the reference's
// 'A' in code branch in Game.log_actions.
func (m *Match) broadcastActions(r *holdem.RoundState, active int, actions []holdem.Action) {
	clause := protocol.EncodeActions(actions)
	opponent := 1 - active

	hasAssign := false
	for _, a := range actions {
		if a.Type == holdem.ActionAssign {
			hasAssign = true
			break
		}
	}

	m.pending[active] = append(m.pending[active], clause)
	if hasAssign {
		blanked := make([]string, len(actions))
		for i := range actions {
			blanked[i] = strconv.Itoa(i+1) + "A"
		}
		m.pending[opponent] = append(m.pending[opponent], strings.Join(blanked, ";"))
	} else {
		m.pending[opponent] = append(m.pending[opponent], clause)
	}
}

// broadcastDeltas appends the round's net delta clause to each player's
// pending message, own delta first (the clause is always from the
// receiving player's own point of view).
func (m *Match) broadcastDeltas(t *holdem.RoundTerminal) {
	m.pending[0] = append(m.pending[0], fmt.Sprintf("D%d;D%d", t.Deltas[0], t.Deltas[1]))
	m.pending[1] = append(m.pending[1], fmt.Sprintf("D%d;D%d", t.Deltas[1], t.Deltas[0]))
}
