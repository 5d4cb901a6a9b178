package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/sendgate/internal/config"
	"github.com/example/sendgate/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the sendgate database",
		Long:  `Initialize the sendgate database at ~/.sendgate/sendgate.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing sendgate database at %s\n", dbPath)

			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := config.SaveConfig(cfg); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Println("✓ Config file written to ~/.sendgate/config.json")
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  sendgate creator add creator-001 --page-type paid")
			fmt.Println("  sendgate validate schedule.json --vault vault.json --rankings rankings.json")

			return nil
		},
	}
}
