// The ssppr command estimates single-source personalized pagerank vectors on graphs read
// from edge-list files or from Redis.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "ssppr",
	Short:         "Single-source personalized pagerank",
	Long:          "ssppr estimates the personalized pagerank of a source node with push, Monte-Carlo and hybrid methods.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
