package main

import (
	"github.com/jonathan/career-coach/internal/quiz"
	"github.com/spf13/cobra"
)

var (
	quizCount    int
	quizTopics   []string
	quizIndustry string
	quizSkills   []string
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate interview quiz questions",
	Long:  "Generate multiple-choice interview questions on the given topics, or on an industry and skills when no topics are given, and print them as JSON.",
	RunE:  runQuiz,
}

func init() {
	quizCmd.Flags().IntVarP(&quizCount, "count", "n", 10, "Number of questions")
	quizCmd.Flags().StringSliceVarP(&quizTopics, "topics", "t", nil, "Comma-separated quiz topics")
	quizCmd.Flags().StringVar(&quizIndustry, "industry", "", "Industry to focus on when no topics are given")
	quizCmd.Flags().StringSliceVar(&quizSkills, "skills", nil, "Skills to focus on when no topics are given")
	rootCmd.AddCommand(quizCmd)
}

func runQuiz(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	questions, err := quiz.NewGenerator(rt.oracle, rt.logger).Generate(ctx, quiz.Request{
		Count:    quizCount,
		Topics:   quizTopics,
		Industry: quizIndustry,
		Skills:   quizSkills,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), questions)
}
