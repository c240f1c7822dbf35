package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codemaster-gdg/codementor/internal/app"
	"github.com/codemaster-gdg/codementor/internal/config"
	"github.com/codemaster-gdg/codementor/internal/core"
	"github.com/codemaster-gdg/codementor/internal/logger"
	"github.com/codemaster-gdg/codementor/internal/session"
)

var (
	manifestPath   string
	uploadPaths    []string
	repoURL        string
	guidelinesPath string
	projectName    string
	saveResult     bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Submit code for an AI review",
	Long: `Submit code for an AI review from exactly one source: a paste
manifest, one or more files, or a GitHub repository URL.

Examples:
  codementor review --manifest blocks.yaml
  codementor review --file main.py --file util.py --guidelines rubric.txt
  codementor review --repo https://github.com/owner/repo --project "Face Detection App" --save -u alice`,
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "YAML paste manifest with filename/content blocks")
	reviewCmd.Flags().StringArrayVarP(&uploadPaths, "file", "f", nil, "File to review (repeatable)")
	reviewCmd.Flags().StringVarP(&repoURL, "repo", "r", "", "GitHub repository URL to review")
	reviewCmd.Flags().StringVarP(&guidelinesPath, "guidelines", "g", "", "File with grading guidelines")
	reviewCmd.Flags().StringVarP(&projectName, "project", "p", "", "Project name to save the review under")
	reviewCmd.Flags().BoolVar(&saveResult, "save", false, "Save the review to the project history")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	sources := 0
	for _, set := range []bool{manifestPath != "", len(uploadPaths) > 0, repoURL != ""} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		errorColor.Println("✗ Provide exactly one of --manifest, --file, or --repo")
		return fmt.Errorf("exactly one code source is required")
	}
	if saveResult && viper.GetString("USER_ID") == "" {
		errorColor.Println("✗ --save requires --user")
		return fmt.Errorf("--save requires --user")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		errorColor.Printf("✗ Configuration error: %v\n", err)
		return err
	}
	log := logger.NewLogger(logger.Config{Level: "warn", Format: "text"}, os.Stderr)

	components, err := app.NewComponents(ctx, cfg, log)
	if err != nil {
		errorColor.Printf("✗ Initialization failed: %v\n", err)
		return err
	}
	defer func() { _ = components.Close() }()

	sess := session.New(components.SessionDeps(log))
	if guidelinesPath != "" {
		data, err := os.ReadFile(guidelinesPath)
		if err != nil {
			errorColor.Printf("✗ Cannot read guidelines: %v\n", err)
			return err
		}
		sess.SetGuidelines(string(data))
	}

	result, err := generate(ctx, sess)
	if err != nil {
		errorColor.Printf("✗ Review failed: %v\n", err)
		return err
	}

	titleColor.Println("\n💬 AI Feedback")
	fmt.Println(result.Feedback)

	if !saveResult {
		dimColor.Println("\nNot saved. Re-run with --save --project <name> to keep this review.")
		return nil
	}

	rec, err := sess.SaveReview(ctx, viper.GetString("USER_ID"), projectName, result)
	if err != nil {
		errorColor.Printf("✗ Save failed: %v\n", err)
		return err
	}
	successColor.Printf("\n✓ Saved review %s\n", rec.ID)
	return nil
}

func generate(ctx context.Context, sess *session.Session) (*core.ReviewResult, error) {
	switch {
	case manifestPath != "":
		blocks, err := session.LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		sess.SetBlocks(blocks)
		fmt.Println("Analyzing pasted code...")
		return sess.ReviewPastedBlocks(ctx)

	case len(uploadPaths) > 0:
		files := make([]core.UploadedFile, 0, len(uploadPaths))
		for _, p := range uploadPaths {
			data, err := os.ReadFile(p)
			if err != nil {
				return nil, fmt.Errorf("cannot read %s: %w", p, err)
			}
			files = append(files, core.UploadedFile{Name: p, Data: data})
		}
		fmt.Println("Analyzing files...")
		return sess.ReviewUploads(ctx, files)

	default:
		fmt.Println("Analyzing GitHub repo...")
		return sess.ReviewRepository(ctx, repoURL)
	}
}
