// Package uci contains a thin driver for running an *engine.Engine under
// the UCI text protocol: a line in, a line out. No search, evaluation or
// move generation logic lives here -- only protocol parsing and formatting.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/atomic"

	"github.com/seekerror/logw"

	"github.com/ravensworth/cinder/pkg/board"
	"github.com/ravensworth/cinder/pkg/board/fen"
	"github.com/ravensworth/cinder/pkg/engine"
	"github.com/ravensworth/cinder/pkg/eval"
	"github.com/ravensworth/cinder/pkg/search"
)

const ProtocolName = "uci"

// maxMovetime caps the time budget derived from wtime/btime, per the
// protocol's "min(remaining_time/30, 5000)ms" rule.
const maxMovetime = 5000 * time.Millisecond

// Driver implements a UCI driver for an engine. It is activated by "uci"
// on the input stream and runs until "quit" or the input stream closes.
type Driver struct {
	e *engine.Engine

	out chan<- string

	active       atomic.Bool // a "go" search is in flight
	progress     chan search.Stats
	lastPosition string // last "position ..." line seen, for incremental updates

	quit   chan struct{}
	closed atomic.Bool
}

// NewDriver wires a Driver to engine e, consuming lines from in and
// producing protocol lines on the returned channel.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:        e,
		out:      out,
		progress: make(chan search.Stats, 400),
		quit:     make(chan struct{}),
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "UCI protocol initialized")

	// After "uci", identify ourselves and the options we support, then
	// signal readiness with "uciok".

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())
	d.out <- "option name Hash type spin default 1048576 min 1 max 16777216"
	d.out <- "uciok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}
			if !d.handle(ctx, line) {
				return
			}

		case stats := <-d.progress:
			if d.active.Load() {
				d.out <- formatInfo(stats)
			}

		case <-d.quit:
			d.haltIfActive()
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// handle processes a single input line. It returns false when the driver
// should shut down.
func (d *Driver) handle(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "isready":
		// Synchronizes with the GUI; always answerable immediately since
		// the engine has no slow-to-initialize resources.
		d.out <- "readyok"

	case "setoption":
		// Only "Hash" is exposed; accept and ignore anything else rather
		// than treating an unknown option as a protocol error.
		if name, value := parseSetOption(args); name == "Hash" {
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				d.e.SetHash(uint(n))
			}
		}

	case "ucinewgame":
		d.haltIfActive()
		d.lastPosition = ""

	case "position":
		d.haltIfActive()
		d.handlePosition(ctx, line, args)

	case "go":
		d.haltIfActive()
		d.handleGo(ctx, args)

	case "stop":
		d.haltIfActive()

	case "ponderhit", "debug", "register":
		// Not applicable to a single-threaded, non-pondering engine.

	case "quit":
		return false

	default:
		logw.Warningf(ctx, "Unknown command %q", line)
	}
	return true
}

func (d *Driver) handlePosition(ctx context.Context, line string, args []string) {
	if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
		moves := strings.Fields(strings.TrimPrefix(line, d.lastPosition))
		for _, mv := range moves {
			if mv == "moves" {
				continue
			}
			if err := d.e.ApplyMove(ctx, mv); err != nil {
				logw.Errorf(ctx, "Invalid position move %q: %v", mv, err)
				return
			}
		}
		d.lastPosition = line
		return
	}

	position := fen.Initial
	rest := args
	if len(args) >= 7 && args[0] == "fen" {
		position = strings.Join(args[1:7], " ")
		rest = args[7:]
	} else if len(args) >= 1 && args[0] == "startpos" {
		rest = args[1:]
	}

	if err := d.e.LoadPosition(ctx, position); err != nil {
		logw.Errorf(ctx, "Invalid position %q: %v", position, err)
		return
	}

	move := false
	for _, arg := range rest {
		if arg == "moves" {
			move = true
			continue
		}
		if !move {
			continue
		}
		if err := d.e.ApplyMove(ctx, arg); err != nil {
			logw.Errorf(ctx, "Invalid position move %q: %v", arg, err)
			return
		}
	}
	d.lastPosition = line
}

func (d *Driver) handleGo(ctx context.Context, args []string) {
	var depth int
	var movetime time.Duration
	var wtime, btime time.Duration
	infinite := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth", "movetime", "wtime", "btime", "winc", "binc", "movestogo", "nodes", "mate":
			i++
			if i >= len(args) {
				return
			}
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return
			}
			switch args[i-1] {
			case "depth":
				depth = n
			case "movetime":
				movetime = time.Duration(n) * time.Millisecond
			case "wtime":
				wtime = time.Duration(n) * time.Millisecond
			case "btime":
				btime = time.Duration(n) * time.Millisecond
			}
		case "infinite":
			infinite = true
		}
	}

	if movetime == 0 && !infinite {
		remaining := wtime
		if d.e.Board().SideToMove() == board.Black {
			remaining = btime
		}
		if remaining > 0 {
			movetime = remaining / 30
			if movetime > maxMovetime {
				movetime = maxMovetime
			}
		}
	}

	d.e.SetProgress(func(s search.Stats) {
		select {
		case d.progress <- s:
		default:
		}
	})
	d.active.Store(true)

	go func() {
		move, ok := d.e.BestMove(ctx, movetime, depth)
		if !d.active.CAS(true, false) {
			return // superseded by an intervening stop/go
		}
		if !ok {
			d.out <- "bestmove 0000"
			return
		}
		d.out <- fmt.Sprintf("bestmove %v", move)
	}()
}

func (d *Driver) haltIfActive() {
	if d.active.Load() {
		d.e.Stop()
	}
}

func parseSetOption(args []string) (name, value string) {
	var nameParts, valueParts []string
	mode := 0 // 0=none, 1=name, 2=value
	for _, a := range args {
		switch a {
		case "name":
			mode = 1
		case "value":
			mode = 2
		default:
			switch mode {
			case 1:
				nameParts = append(nameParts, a)
			case 2:
				valueParts = append(valueParts, a)
			}
		}
	}
	return strings.Join(nameParts, " "), strings.Join(valueParts, " ")
}

func formatInfo(s search.Stats) string {
	parts := []string{"info", fmt.Sprintf("depth %v", s.Depth)}
	if s.Score.IsMate() {
		mateIn := (int(eval.MateValue-abs(s.Score)) + 1) / 2
		if s.Score < 0 {
			mateIn = -mateIn
		}
		parts = append(parts, fmt.Sprintf("score mate %v", mateIn))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", int(s.Score)))
	}
	parts = append(parts, fmt.Sprintf("nodes %v", s.Nodes))
	parts = append(parts, fmt.Sprintf("time %v", s.Elapsed.Milliseconds()))
	if s.Elapsed > 0 {
		nps := uint64(float64(s.Nodes) / s.Elapsed.Seconds())
		parts = append(parts, fmt.Sprintf("nps %v", nps))
	}
	if len(s.PV) > 0 {
		var moves []string
		for _, m := range s.PV {
			moves = append(moves, m.String())
		}
		parts = append(parts, "pv "+strings.Join(moves, " "))
	}
	return strings.Join(parts, " ")
}

func abs(s eval.Score) eval.Score {
	if s < 0 {
		return -s
	}
	return s
}
