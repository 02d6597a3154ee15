// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/campus-parking/pkg/adapter/config"
	"github.com/momeni/campus-parking/pkg/adapter/db/postgres/schema"
	"github.com/momeni/campus-parking/pkg/core/repo"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For a fresh installation, the init action creates all tables and
indexes. The seed-dev action then fills an initialized database with
development suitable sample rows (one user per role, a registered
vehicle, and a handful of free slots).`,
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database schema",
	RunE: func(_ *cobra.Command, _ []string) error {
		return withTx(schema.Init)
	},
}

var seedPassword string

var dbSeedDevCmd = &cobra.Command{
	Use:   "seed-dev",
	Short: "Fill the database with development sample rows",
	RunE: func(_ *cobra.Command, _ []string) error {
		return withTx(func(ctx context.Context, tx repo.Tx) error {
			return schema.SeedDev(ctx, tx, seedPassword)
		})
	},
}

// withTx loads the configuration file, connects to its database, and
// runs the f handler in one transaction.
func withTx(f func(ctx context.Context, tx repo.Tx) error) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	return p.Conn(ctx, func(ctx context.Context, conn repo.Conn) error {
		return conn.Tx(ctx, f)
	})
}

func init() {
	dbSeedDevCmd.Flags().StringVar(
		&seedPassword, "password", "parking123",
		"password of the seeded sample users",
	)
	dbCmd.AddCommand(dbInitCmd, dbSeedDevCmd)
	rootCmd.AddCommand(dbCmd)
}
