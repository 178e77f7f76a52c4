// fibd - a concurrent TCP server answering Fibonacci queries over a
// newline-delimited text protocol, with a built-in interactive client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fibd/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fibd: %v\n", err)
		os.Exit(1)
	}
}
