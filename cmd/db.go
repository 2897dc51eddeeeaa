package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yeremiapane/restaurant-reservations/database"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the reservations and tables schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := setup()
			if err != nil {
				return err
			}
			defer closeDB(db)
			return database.Migrate(db)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace all reservations and tables with the sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := setup()
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			return database.Seed(db)
		},
	}
}
