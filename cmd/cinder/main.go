package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/seekerror/logw"

	"github.com/ravensworth/cinder/pkg/engine"
	"github.com/ravensworth/cinder/pkg/engine/uci"
)

var (
	depth = flag.Uint("depth", 0, "Default search depth limit (zero for no limit, bounded by time instead)")
	hash  = flag.Uint("hash", 1<<20, "Transposition table size, in entries")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: cinder [options]

cinder is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "cinder", "ravensworth", engine.WithOptions(engine.Options{
		Depth: *depth,
		Hash:  *hash,
	}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
