package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"quiz-client/internal/api"
	"quiz-client/internal/quiz"
	"quiz-client/internal/state"
)

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play <quiz-id>",
		Short: "Answer a quiz and submit for scoring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), a.in, a.out, a.client, a.store, a.log, args[0])
		},
	}
}

// runPlay loads the quiz fresh, collects selections question by question
// and submits only after an explicit confirmation. Declining the
// confirmation cancels the session without any network call.
func runPlay(ctx context.Context, reader *bufio.Reader, out io.Writer, client *api.Client, store *state.Store, log logrus.FieldLogger, quizID string) error {
	loaded, err := client.GetQuiz(ctx, quizID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Fprintf(out, "Quiz %s not found.\n", quizID)
			return nil
		}
		return err
	}

	session := quiz.NewPlaySession(loaded)
	fmt.Fprintf(out, "%s\n", loaded.Title)

	for number, question := range loaded.Questions {
		if err := promptSelections(reader, out, session, question, number+1); err != nil {
			return err
		}
	}

	answered := len(session.Answers())
	fmt.Fprintf(out, "\nAnswered %d of %d questions.\n", answered, len(loaded.Questions))

	confirm, err := promptYesNo(reader, out, "Submit answers? (yes/no): ")
	if err != nil {
		return err
	}
	if !confirm {
		session.Cancel()
		fmt.Fprintln(out, "Cancelled. Nothing was submitted.")
		return nil
	}

	result, err := session.Submit(ctx, client)
	if err != nil {
		if errors.Is(err, quiz.ErrNothingToSubmit) {
			fmt.Fprintln(out, "No answers selected; nothing to submit.")
			return nil
		}
		return fmt.Errorf("submit failed: %w", err)
	}

	fmt.Fprintf(out, "\nSubmitted. Score: %s\n", formatScore(result.Score))

	if store != nil {
		record := state.SubmissionRecord{
			QuizID:       loaded.ID,
			QuizTitle:    loaded.Title,
			SubmissionID: result.SubmissionID,
			Score:        result.Score,
		}
		if err := store.RecordSubmission(ctx, record); err != nil {
			log.WithError(err).Warn("could not record submission locally")
		} else {
			fmt.Fprintf(out, "Details: quiz-client results %s %s\n", loaded.ID, result.SubmissionID)
		}
	}
	return nil
}

// promptSelections handles one question. Single-answer questions take one
// letter; multi-answer questions take letters that each toggle, repeated
// until the player enters "done". A blank first entry skips the question.
func promptSelections(reader *bufio.Reader, out io.Writer, session *quiz.PlaySession, question quiz.Question, number int) error {
	fmt.Fprintf(out, "\nQ%d: %s\n", number, question.Text)
	for idx, option := range question.Options {
		fmt.Fprintf(out, "  %s. %s\n", optionLetter(idx), option.Text)
	}

	if !question.Multiple {
		for {
			input, err := promptLine(reader, out, "Your answer (blank to skip): ")
			if err != nil {
				return err
			}
			if input == "" {
				return nil
			}
			indices, err := parseLetters(input, len(question.Options))
			if err != nil || len(indices) != 1 {
				fmt.Fprintln(out, "Enter a single letter.")
				continue
			}
			return session.Toggle(question.ID, indices[0])
		}
	}

	fmt.Fprintln(out, "Multiple answers allowed; letters toggle. Enter \"done\" to finish.")
	for {
		input, err := promptLine(reader, out, "Toggle (done to finish): ")
		if err != nil {
			return err
		}
		if input == "" || input == "done" {
			return nil
		}
		indices, err := parseLetters(input, len(question.Options))
		if err != nil {
			fmt.Fprintf(out, "Invalid input: %v\n", err)
			continue
		}
		for _, index := range indices {
			if err := session.Toggle(question.ID, index); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "Selected: %s\n", formatIndices(session.Selected(question.ID)))
	}
}
