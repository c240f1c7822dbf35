package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codemaster-gdg/codementor/internal/core"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [project-name]",
	Short: "Show the most recent reviews of a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 3, "Number of reviews to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	uid, err := requireUser()
	if err != nil {
		return err
	}

	store, closeStore, err := openStore()
	if err != nil {
		errorColor.Printf("✗ %v\n", err)
		return err
	}
	defer closeStore()

	name := args[0]
	project, err := store.FindProjectByName(cmd.Context(), uid, name)
	if err != nil {
		if errors.Is(err, core.ErrProjectNotFound) {
			errorColor.Printf("✗ No project named %q\n", name)
		} else {
			errorColor.Printf("✗ %v\n", err)
		}
		return err
	}

	reviews := store.RecentReviews(cmd.Context(), uid, project.ID, historyLimit)
	if len(reviews) == 0 {
		dimColor.Println("No reviews saved for this project yet.")
		return nil
	}

	for _, r := range reviews {
		titleColor.Printf("📝 Reviewed on %s", r.ReviewedAt.Local().Format("02 January 2006, 03:04 PM"))
		dimColor.Printf("  [%s]\n", r.SourceType)
		fmt.Println(r.Feedback)
		fmt.Println()
	}
	return nil
}
