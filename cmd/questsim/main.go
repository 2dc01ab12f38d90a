// Command questsim resolves quests against the generated difficulty tiers.
//
// Usage:
//
//	questsim tiers    [--archetype=<name>] [--level=<n>] [--save]
//	questsim resolve  --party=<file> [--seed=<n>] [--escalated]
//	questsim simulate --party=<file> [--trials=<n>] [--workers=<n>] [--seed=<n>] [--save]
//	questsim runs     [--limit=<n>] [--id=<run>]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
