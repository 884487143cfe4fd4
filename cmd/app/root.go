package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "simpleprefix",
	Short: "Group prefixes, suffixes and tab ordering",
	Long: color.CyanString("simpleprefix") +
		" keeps player name decoration in sync with groups.yml, config.yml and the permission backend.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(cleanupCmd)
}
