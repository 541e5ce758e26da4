package playerkit

import (
	"bufio"
	"flag"
	"fmt"
	"net"

	"github.com/moonhole/triboard-engine/holdem"
)

// Args is the reference player's connection target: a required port and
// an optional host, matching python_skeleton/skeleton/runner.py's
// parse_args(). Strategy flags are explicitly out of scope (spec.md's
// Non-goals) — this is only the protocol-facing dial target.
type Args struct {
	Host string
	Port int
}

// ParseArgs parses os.Args[1:] (via the standard flag package) into Args.
// Port is positional and required; --host defaults to "localhost".
func ParseArgs(argv []string) (Args, error) {
	fs := flag.NewFlagSet("player", flag.ContinueOnError)
	host := fs.String("host", "localhost", "host to connect to")
	if err := fs.Parse(argv); err != nil {
		return Args{}, err
	}
	if fs.NArg() != 1 {
		return Args{}, fmt.Errorf("expected exactly one positional port argument, got %d", fs.NArg())
	}
	var port int
	if _, err := fmt.Sscanf(fs.Arg(0), "%d", &port); err != nil {
		return Args{}, fmt.Errorf("invalid port %q: %w", fs.Arg(0), err)
	}
	return Args{Host: *host, Port: port}, nil
}

// Run dials the engine and drives the reconstructor until Q or disconnect.
func Run(bot Bot, cfg holdem.RoundConfig, args Args) error {
	conn, err := net.Dial("tcp", fmt.Sprintf("%s:%d", args.Host, args.Port))
	if err != nil {
		return fmt.Errorf("could not connect to %s:%d: %w", args.Host, args.Port, err)
	}
	defer conn.Close()

	r := NewReconstructor(bot, cfg)
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	writer := bufio.NewWriter(conn)

	for scanner.Scan() {
		response, quit := r.ProcessLine(scanner.Text())
		if quit {
			return nil
		}
		if _, err := writer.WriteString(response + "\n"); err != nil {
			return err
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}
	return scanner.Err()
}
