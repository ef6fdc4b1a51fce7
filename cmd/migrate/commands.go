package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/moura95/account-auth/internal/infra/config"
	"github.com/moura95/account-auth/internal/infra/database/postgres"
)

type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Force(version int) error
	Version() (uint, bool, error)
	Close() error
}

// openMigrator is swapped in tests.
var openMigrator = func(dsn string) (migrator, error) {
	return postgres.NewMigrator(dsn)
}

func newRootCmd() *cobra.Command {
	var dsn string

	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the account-auth database schema",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "database URL (defaults to DB_SOURCE)")

	run := func(fn func(cmd *cobra.Command, m migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			source, err := resolveDSN(dsn)
			if err != nil {
				return err
			}
			m, err := openMigrator(source)
			if err != nil {
				return err
			}
			defer m.Close()
			return fn(cmd, m)
		}
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, m migrator) error {
			return report(cmd, m.Up())
		}),
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Revert all migrations",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, m migrator) error {
			return report(cmd, m.Down())
		}),
	}

	stepsCmd := &cobra.Command{
		Use:   "steps N",
		Short: "Apply N migrations, or revert them when N is negative",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n == 0 {
				return fmt.Errorf("steps must be a non-zero integer, got %q", args[0])
			}
			return run(func(cmd *cobra.Command, m migrator) error {
				return report(cmd, m.Steps(n))
			})(cmd, args)
		},
	}

	forceCmd := &cobra.Command{
		Use:   "force VERSION",
		Short: "Set the schema version without running migrations and clear the dirty flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < -1 {
				return fmt.Errorf("version must be an integer >= -1, got %q", args[0])
			}
			return run(func(cmd *cobra.Command, m migrator) error {
				return report(cmd, m.Force(v))
			})(cmd, args)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, m migrator) error {
			v, dirty, err := m.Version()
			if err != nil {
				return err
			}
			if dirty {
				cmd.Printf("%d (dirty)\n", v)
				return nil
			}
			cmd.Printf("%d\n", v)
			return nil
		}),
	}

	rootCmd.AddCommand(upCmd, downCmd, stepsCmd, forceCmd, versionCmd)
	return rootCmd
}

func resolveDSN(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return "", err
	}
	return cfg.DBSource, nil
}

func report(cmd *cobra.Command, err error) error {
	if errors.Is(err, postgres.ErrNoChange) {
		cmd.Println("no change")
		return nil
	}
	if err != nil {
		return err
	}
	cmd.Println("done")
	return nil
}
