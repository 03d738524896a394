package commands

import (
	"github.com/spf13/cobra"
)

// NewUtilityCommands creates the maintenance commands (migrate, seed).
func NewUtilityCommands() []*cobra.Command {
	return []*cobra.Command{
		newMigrateCmd(),
		newSeedCmd(),
	}
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect database migrations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return Migrate(cmd.Context(), MigrateUp, cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration of every module",
			RunE: func(cmd *cobra.Command, args []string) error {
				return Migrate(cmd.Context(), MigrateDown, cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the state of every known migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return Migrate(cmd.Context(), MigrateStatus, cmd.OutOrStdout())
			},
		},
	)
	return cmd
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create employees from a YAML or TOML fixture file",
		Long:  `Creates every employee listed in the fixture file through the employee service. Records whose emp_id already exists are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return SeedEmployees(cmd.Context(), file, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Fixture file (.yaml, .yml or .toml) (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
