package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"quiz-client/internal/api"
	"quiz-client/internal/state"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available quizzes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), a.out, a.client)
		},
	}
}

func runList(ctx context.Context, out io.Writer, client *api.Client) error {
	quizzes, err := client.ListQuizzes(ctx)
	if err != nil {
		return err
	}

	if len(quizzes) == 0 {
		fmt.Fprintln(out, "No quizzes yet.")
		return nil
	}

	for idx, item := range quizzes {
		fmt.Fprintf(out, "%d. %s (%d questions, created %s)\n   id: %s\n",
			idx+1,
			item.Title,
			len(item.Questions),
			item.CreatedAt.Format(time.RFC3339),
			item.ID,
		)
	}
	return nil
}

func newResultsCmd(a *app) *cobra.Command {
	var last bool

	cmd := &cobra.Command{
		Use:   "results <quiz-id> [submission-id]",
		Short: "Show the scored breakdown for a submission",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			submissionID := ""
			if len(args) == 2 {
				submissionID = args[1]
			}
			return runResults(cmd.Context(), a.out, a.client, a.store, args[0], submissionID, last)
		},
	}
	cmd.Flags().BoolVar(&last, "last", false, "use the most recent local submission for this quiz")
	return cmd
}

func runResults(ctx context.Context, out io.Writer, client *api.Client, store *state.Store, quizID, submissionID string, last bool) error {
	if last {
		record, err := store.LastSubmission(ctx, quizID)
		if err != nil {
			if errors.Is(err, state.ErrNoSubmissions) {
				fmt.Fprintf(out, "No recorded submissions for quiz %s.\n", quizID)
				return nil
			}
			return err
		}
		submissionID = record.SubmissionID
	}
	if submissionID == "" {
		return errors.New("a submission id or --last is required")
	}

	result, err := client.GetResults(ctx, quizID, submissionID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Fprintf(out, "No results for submission %s.\n", submissionID)
			return nil
		}
		return err
	}

	fmt.Fprintf(out, "Score: %s\n", formatScore(result.Score))
	for _, perQuestion := range result.PerQuestion {
		verdict := "incorrect"
		if perQuestion.CorrectBool {
			verdict = "correct"
		}
		fmt.Fprintf(out, "  Question %d: selected %s, correct %s - %s\n",
			perQuestion.QuestionID,
			formatIndices(perQuestion.Selected),
			formatIndices(perQuestion.Correct),
			verdict,
		)
	}
	return nil
}

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List locally recorded submissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd.Context(), a.out, a.store, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries to show")
	return cmd
}

func runHistory(ctx context.Context, out io.Writer, store *state.Store, limit int) error {
	records, err := store.ListSubmissions(ctx, limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No recorded submissions.")
		return nil
	}

	for _, record := range records {
		fmt.Fprintf(out, "%s  %s (quiz %s) score=%s submission=%s\n",
			record.SubmittedAt.Format(time.RFC3339),
			record.QuizTitle,
			record.QuizID,
			formatScore(record.Score),
			record.SubmissionID,
		)
	}
	return nil
}
