package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/career-coach/internal/resume"
	"github.com/spf13/cobra"
)

var scoreResumeIn string

var scoreResumeCmd = &cobra.Command{
	Use:   "score-resume",
	Short: "Review a resume file against ATS criteria",
	Long:  "Extract the text of a .txt, .md, .pdf, .docx or .html resume, ask the oracle for an ATS review and print it as JSON.",
	RunE:  runScoreResume,
}

func init() {
	scoreResumeCmd.Flags().StringVarP(&scoreResumeIn, "in", "i", "", "Path to the resume file (required)")
	_ = scoreResumeCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(scoreResumeCmd)
}

func runScoreResume(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(scoreResumeIn)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %w", err)
		}
		return fmt.Errorf("failed to read file: %w", err)
	}

	mimeType := resume.MIMEFromFilename(scoreResumeIn)
	if mimeType == "" {
		return fmt.Errorf("unsupported file extension %q; use .txt, .md, .pdf, .docx or .html", filepath.Ext(scoreResumeIn))
	}
	text, err := resume.ExtractText(mimeType, data)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	score, err := resume.NewScorer(rt.oracle, rt.logger).ScoreResume(ctx, text)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), struct {
		Rating string `json:"rating"`
		Score  any    `json:"score"`
	}{Rating: string(score.Rating()), Score: score})
}
