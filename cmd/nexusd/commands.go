package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/app"
	nexusd "github.com/iov-one/nexus/cmd/nexusd/app"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/store/pebble"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

// node holds the flags shared by all commands.
type node struct {
	home    string
	verbose bool
}

func (n *node) genesisFile() string {
	return filepath.Join(n.home, "genesis.json")
}

func (n *node) logger(w io.Writer) log.Logger {
	logger := log.NewTMLogger(log.NewSyncWriter(w)).With("module", "nexusd")
	if n.verbose {
		return logger
	}
	return log.NewFilter(logger, log.AllowError())
}

// open returns the app stored in the home directory. The caller must close
// the returned store.
func (n *node) open(logger log.Logger) (*app.StoreApp, *pebble.Store, error) {
	db, err := pebble.Open(filepath.Join(n.home, "data"))
	if err != nil {
		return nil, nil, err
	}
	sa, err := app.NewStoreApp("nexusd", db, nexusd.NewHost(prometheus.NewRegistry()))
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return sa.WithLogger(logger), db, nil
}

func initCmd(n *node) *cobra.Command {
	var (
		chainID string
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "init [account...]",
		Short: "Write a genesis file funding the named accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := n.genesisFile()
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Wrapf(errors.ErrDuplicate, "%s exists, use --force to overwrite", path)
			}
			gen, err := nexusd.DefaultGenesis(chainID, args...)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(n.home, 0o755); err != nil {
				return errors.Wrapf(errors.ErrInput, "home: %s", err)
			}
			if err := app.WriteGenesis(path, gen); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "genesis written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&chainID, "chain-id", "nexus-local", "chain id stored at genesis")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing genesis file")
	return cmd
}

func replayCmd(n *node) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <scenario.yaml>",
		Short: "Deliver all blocks of a scenario, initializing the chain first if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := nexusd.LoadScenario(args[0])
			if err != nil {
				return err
			}
			sa, db, err := n.open(n.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer db.Close()

			if sa.GetChainID() == "" {
				gen, err := app.LoadGenesis(n.genesisFile())
				if err != nil {
					return err
				}
				if err := sa.InitChain(gen, nexusd.Initializers()); err != nil {
					return err
				}
				if _, err := sa.Commit(); err != nil {
					return err
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			var encErr error
			err = nexusd.Replay(sa, sc, func(o nexusd.Outcome) {
				if err := enc.Encode(o); err != nil && encErr == nil {
					encErr = err
				}
			})
			if err != nil {
				return err
			}
			return encErr
		},
	}
}

func queryCmd(n *node) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the state of the vault, a pool or a balance as JSON",
	}
	run := func(fn func(db nexus.ReadOnlyKVStore, args []string) (interface{}, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			sa, db, err := n.open(n.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer db.Close()

			res, err := fn(sa.ReadStore(), args)
			if err != nil {
				return err
			}
			raw, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return errors.Wrap(errors.ErrInput, err.Error())
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return err
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "balance <token> <holder>",
			Short: "Balance of an account, for example @alice or @pool:yluna_pool",
			Args:  cobra.ExactArgs(2),
			RunE: run(func(db nexus.ReadOnlyKVStore, args []string) (interface{}, error) {
				holder, err := nexusd.ResolveAddress(args[1])
				if err != nil {
					return nil, err
				}
				return nexusd.QueryBalance(db, args[0], holder)
			}),
		},
		&cobra.Command{
			Use:   "pool <name> [staker]",
			Short: "Pool state and optionally the rewards of a staker",
			Args:  cobra.RangeArgs(1, 2),
			RunE: run(func(db nexus.ReadOnlyKVStore, args []string) (interface{}, error) {
				var staker nexus.Address
				if len(args) == 2 {
					var err error
					if staker, err = nexusd.ResolveAddress(args[1]); err != nil {
						return nil, err
					}
				}
				return nexusd.QueryPool(db, args[0], staker)
			}),
		},
		&cobra.Command{
			Use:   "vault",
			Short: "Reward split and launch pool position of the vault",
			Args:  cobra.NoArgs,
			RunE: run(func(db nexus.ReadOnlyKVStore, args []string) (interface{}, error) {
				return nexusd.QueryVault(db)
			}),
		},
	)
	return cmd
}

func pathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List the message paths a scenario can use",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range nexusd.Paths() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the app version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), nexus.Version())
		},
	}
}
