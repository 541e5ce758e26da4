package connector

import (
	"bufio"
	"math/rand"
	"net"
	"testing"

	"github.com/moonhole/triboard-engine/config"
	"github.com/moonhole/triboard-engine/holdem"
	"github.com/moonhole/triboard-engine/protocol"
)

// newTestPlayer builds a Player wired directly to one end of an in-memory
// pipe standing in for the subprocess's socket, bypassing Build/Run (which
// need a real commands.json and a real child process).
func newTestPlayer(t *testing.T, cfg config.Config) (*Player, net.Conn) {
	t.Helper()
	serverConn, playerConn := net.Pipe()
	t.Cleanup(func() { serverConn.Close(); playerConn.Close() })

	p := New("bot", t.TempDir(), cfg)
	p.conn = playerConn
	p.rw = bufio.NewReadWriter(bufio.NewReader(playerConn), bufio.NewWriter(playerConn))
	return p, serverConn
}

func testCfg() config.Config {
	cfg := config.Default()
	cfg.NumBoards = 2
	cfg.EnforceGameClock = false
	return cfg
}

func TestBankrollAndDelta(t *testing.T) {
	p := New("bot", "/tmp", config.Default())
	if p.Bankroll() != 0 {
		t.Fatalf("initial Bankroll() = %d, want 0", p.Bankroll())
	}
	p.AddDelta(42)
	p.AddDelta(-10)
	if p.Bankroll() != 32 {
		t.Fatalf("Bankroll() after deltas = %d, want 32", p.Bankroll())
	}
}

func TestGameClockExhausted(t *testing.T) {
	cfg := config.Default()
	cfg.StartingGameClock = 0
	p := New("bot", "/tmp", cfg)
	if !p.GameClockExhausted() {
		t.Fatalf("GameClockExhausted() = false with a zero starting clock")
	}
}

func TestQueryReturnsDefaultsWhenSocketUnusable(t *testing.T) {
	cfg := testCfg()
	p := New("bot", "/tmp", cfg) // never Run(), so p.conn is nil

	actions, faults := p.Query(&holdem.RoundTerminal{}, nil, 0)
	if len(faults) != 0 {
		t.Fatalf("unexpected faults on a never-connected player: %v", faults)
	}
	if len(actions) != cfg.NumBoards {
		t.Fatalf("len(actions) = %d, want %d", len(actions), cfg.NumBoards)
	}
	for i, a := range actions {
		if a.Type != holdem.ActionCheck {
			t.Errorf("actions[%d].Type = %v, want Check (the terminal-node default)", i, a.Type)
		}
	}
}

func TestQuerySendsGameClockPrefixAndParsesLegalReply(t *testing.T) {
	cfg := testCfg()
	p, server := newTestPlayer(t, cfg)

	rcfg := holdem.RoundConfig{NumBoards: cfg.NumBoards, StartingStack: cfg.StartingStack, SmallBlind: cfg.SmallBlind, BigBlind: cfg.BigBlind}
	round := holdem.NewRound(rcfg, rand.New(rand.NewSource(1)))

	done := make(chan struct{})
	var gotMessage string
	go func() {
		defer close(done)
		reader := bufio.NewReader(server)
		line, _ := reader.ReadString('\n')
		gotMessage = line
		reply := "1A" + protocol.EncodeCards(round.Hands[0][0:2]) + ";2A" + protocol.EncodeCards(round.Hands[0][2:4])
		_, _ = server.Write([]byte(reply + "\n"))
	}()

	actions, faults := p.Query(round, []string{"P0", "H" + protocol.EncodeCards(round.Hands[0])}, 0)
	<-done

	if len(gotMessage) == 0 || gotMessage[0] != 'T' {
		t.Fatalf("engine message did not start with a game-clock clause: %q", gotMessage)
	}
	if len(faults) != 0 {
		t.Fatalf("unexpected faults for a legal assignment reply: %v", faults)
	}
	if len(actions) != 2 || actions[0].Type != holdem.ActionAssign || actions[1].Type != holdem.ActionAssign {
		t.Fatalf("actions = %+v, want two Assign actions", actions)
	}
}

func TestQueryFallsBackOnIllegalAction(t *testing.T) {
	cfg := testCfg()
	p, server := newTestPlayer(t, cfg)

	rcfg := holdem.RoundConfig{NumBoards: cfg.NumBoards, StartingStack: cfg.StartingStack, SmallBlind: cfg.SmallBlind, BigBlind: cfg.BigBlind}
	round := holdem.NewRound(rcfg, rand.New(rand.NewSource(1)))

	done := make(chan struct{})
	go func() {
		defer close(done)
		reader := bufio.NewReader(server)
		_, _ = reader.ReadString('\n')
		// Boards still require Assign; replying with Check is illegal.
		_, _ = server.Write([]byte("1K;2K\n"))
	}()

	actions, faults := p.Query(round, nil, 0)
	<-done

	if len(faults) == 0 {
		t.Fatalf("expected a fault log line for an illegal action, got none")
	}
	for i, a := range actions {
		if a.Type != holdem.ActionFold {
			t.Errorf("actions[%d].Type = %v, want Fold (Check is not legal, so the Check-else-Fold default is Fold)", i, a.Type)
		}
	}
}

func TestQueryDisconnectFallsBackToDefaults(t *testing.T) {
	cfg := testCfg()
	p, server := newTestPlayer(t, cfg)
	server.Close() // simulate the player vanishing before it replies

	actions, faults := p.Query(&holdem.RoundTerminal{}, nil, 0)
	if len(faults) == 0 {
		t.Fatalf("expected a disconnect fault line")
	}
	if len(actions) != cfg.NumBoards {
		t.Fatalf("len(actions) = %d, want %d", len(actions), cfg.NumBoards)
	}
}

