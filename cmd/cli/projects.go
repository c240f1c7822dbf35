package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codemaster-gdg/codementor/internal/config"
	"github.com/codemaster-gdg/codementor/internal/db"
	"github.com/codemaster-gdg/codementor/internal/logger"
	"github.com/codemaster-gdg/codementor/internal/storage"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List your projects, most recently reviewed first",
	RunE:  runProjects,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(projectsCmd)
}

// openStore builds just the storage stack; CLI commands that never touch the
// LLM should not require model credentials.
func openStore() (storage.Store, func(), error) {
	cfg, err := config.LoadStoreConfig()
	if err != nil {
		return nil, nil, err
	}
	log := logger.NewLogger(logger.Config{Level: "warn", Format: "text"}, os.Stderr)

	dbConn, err := db.NewDatabase(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewStore(dbConn.DB, log), func() { _ = dbConn.Close() }, nil
}

func requireUser() (string, error) {
	uid := viper.GetString("USER_ID")
	if uid == "" {
		errorColor.Println("✗ --user is required")
		return "", fmt.Errorf("--user is required")
	}
	return uid, nil
}

func runProjects(cmd *cobra.Command, _ []string) error {
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

	projects := store.ListProjects(cmd.Context(), uid)
	if len(projects) == 0 {
		dimColor.Println("No projects yet. Save a review to create one.")
		return nil
	}

	titleColor.Println("📂 Your Projects")
	for _, p := range projects {
		if p.LastReviewedAt != nil {
			fmt.Printf("  %s  %s", p.Name, dimColor.Sprintf("(last reviewed %s)", p.LastReviewedAt.Local().Format("02 Jan 2006 15:04")))
		} else {
			fmt.Printf("  %s  %s", p.Name, dimColor.Sprint("(never reviewed)"))
		}
		fmt.Println()
	}
	return nil
}
