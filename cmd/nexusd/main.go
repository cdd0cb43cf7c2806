package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

// newRootCmd represents the base command when called without any
// subcommands.
func newRootCmd() *cobra.Command {
	var n node
	root := &cobra.Command{
		Use:   "nexusd",
		Short: "Staking reward vault node",
		Long: `nexusd keeps the state of the reward vault in a local database. It replays
scenarios of signed messages block by block and prints the resulting state.`,
		SilenceUsage: true,
	}
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".nexus")
	root.PersistentFlags().StringVar(&n.home, "home", defaultHome, "directory to store files under")
	root.PersistentFlags().BoolVarP(&n.verbose, "verbose", "v", false, "log every delivered message")

	root.AddCommand(
		initCmd(&n),
		replayCmd(&n),
		queryCmd(&n),
		pathsCmd(),
		versionCmd(),
	)
	return root
}
