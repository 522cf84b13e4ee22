package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"career-backend/internal/extract"
	"career-backend/internal/resumes"
)

var analyzeScore bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Analyze a local resume and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeScore, "score", false, "also compute an ATS score and suggestions")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !extract.SupportedExtension(path) {
		return fmt.Errorf("unsupported file %q: use .pdf, .docx or .txt", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	ctx := cmd.Context()
	text, err := extract.ExtractTextFromBytes(ctx, data, "", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("extract resume text: %w", err)
	}

	client, err := newLLM(ctx, loadConfig())
	if err != nil {
		return err
	}
	svc := resumes.NewService(nil, client, nil)
	analysis, err := svc.AnalyzeText(ctx, text, analyzeScore)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), analysis)
}
