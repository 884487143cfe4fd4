package main

import (
	"fmt"
	"path/filepath"

	"github.com/bagdasarian/simpleprefix/internal/service"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [luckprefix-groups.yml]",
	Short: "Import groups and formats from LuckPrefix",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		// по умолчанию LuckPrefix лежит рядом с каталогом данных
		path := filepath.Join(filepath.Dir(filepath.Clean(a.cfg.Data.Dir)), "LuckPrefix", "groups.yml")
		if len(args) == 1 {
			path = args[0]
		}

		report, err := a.migration.MigrateLuckPrefix(cmd.Context(), path)
		if report != nil {
			printReport(report)
		}
		return err
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove groups without prefix and suffix",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		report, err := a.migration.CleanupEmptyGroups(cmd.Context())
		if report != nil {
			printReport(report)
		}
		return err
	},
}

func printReport(report *service.MigrationReport) {
	ok := color.New(color.FgGreen).SprintFunc()
	skip := color.New(color.FgYellow).SprintFunc()
	removed := color.New(color.FgRed).SprintFunc()

	for _, name := range report.Migrated {
		fmt.Printf("%s %s\n", ok("migrated"), name)
	}
	for _, name := range report.Skipped {
		fmt.Printf("%s %s\n", skip("skipped "), name)
	}
	for _, name := range report.Removed {
		fmt.Printf("%s %s\n", removed("removed "), name)
	}
	if report.ChatFormat != "" {
		fmt.Printf("%s chat format: %s\n", ok("migrated"), report.ChatFormat)
	}
	if report.TabFormat != "" {
		fmt.Printf("%s tab format: %s\n", ok("migrated"), report.TabFormat)
	}

	total := len(report.Migrated) + len(report.Removed)
	if total == 0 {
		color.Yellow("nothing to do")
		return
	}
	color.Green("%d group(s) changed", total)
}
