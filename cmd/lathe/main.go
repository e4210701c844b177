// Command lathe fits curves through anchor points and revolves them into
// meshes from the command line.
//
// Usage:
//
//	lathe fit 0,0 10,5 20,0
//	lathe revolve --rings 64 0,0 10,5 20,0
//	lathe run --watch examples/vase.lisp
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
