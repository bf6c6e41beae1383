package system

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyenanhtu/realty_backend/config"
	"github.com/nguyenanhtu/realty_backend/pkg/database"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the MongoDB indexes",
		Long: `Create the indexes every collection relies on: newest-first listing
and unique slugs for products and projects. Safe to run on every deploy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout(cfg))
			defer cancel()

			db, err := database.NewFromCentral(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			fmt.Println("Creating indexes...")
			if err := database.EnsureIndexes(ctx, db.Database()); err != nil {
				return fmt.Errorf("failed to create indexes: %w", err)
			}
			for _, spec := range database.Indexes() {
				fmt.Printf("  %-10s %d index(es)\n", spec.Collection, len(spec.Models))
			}
			fmt.Println("Migrations executed successfully.")
			return nil
		},
	}

	return cmd
}

func readConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return cfg, nil
}

func commandTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(cfg.Server.TimeoutSeconds) * time.Second
}
