package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"quiz-client/internal/api"
	"quiz-client/internal/quiz"
)

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Author a new quiz interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreate(cmd.Context(), a.in, a.out, a.client)
		},
	}
}

// runCreate drives the authoring form: title, then questions until the
// author stops. The draft lives entirely in memory until submit and is
// cleared once the server accepts it.
func runCreate(ctx context.Context, reader *bufio.Reader, out io.Writer, client *api.Client) error {
	draft := quiz.NewDraft()

	title, err := promptLine(reader, out, "Quiz title: ")
	if err != nil {
		return err
	}
	draft.Title = title

	for {
		if err := promptQuestion(reader, out, draft); err != nil {
			return err
		}

		more, err := promptYesNo(reader, out, "Add another question? (yes/no): ")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	created, err := client.CreateQuiz(ctx, draft)
	if err != nil {
		var validationErr *quiz.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Fprintf(out, "Draft rejected: %s\n", validationErr.Message)
			return nil
		}
		return err
	}

	draft.Reset()
	if created.ID != "" {
		fmt.Fprintf(out, "Created quiz %q (id %s).\n", created.Title, created.ID)
	} else {
		fmt.Fprintf(out, "Created quiz %q.\n", created.Title)
	}
	return nil
}

func promptQuestion(reader *bufio.Reader, out io.Writer, draft *quiz.Draft) error {
	index := draft.AddQuestion()
	question := &draft.Questions[index]

	text, err := promptLine(reader, out, fmt.Sprintf("Question %d: ", index+1))
	if err != nil {
		return err
	}
	question.Text = text

	// Two option slots exist from the start; extra ones are added on demand.
	for i := range question.Options {
		option, err := promptLine(reader, out, fmt.Sprintf("  Option %s: ", optionLetter(i)))
		if err != nil {
			return err
		}
		question.Options[i] = option
	}
	for {
		more, err := promptYesNo(reader, out, "  Add another option? (yes/no): ")
		if err != nil {
			return err
		}
		if !more {
			break
		}
		if err := draft.AddOption(index); err != nil {
			return err
		}
		slot := len(question.Options) - 1
		option, err := promptLine(reader, out, fmt.Sprintf("  Option %s: ", optionLetter(slot)))
		if err != nil {
			return err
		}
		question.Options[slot] = option
	}

	multiple, err := promptYesNo(reader, out, "  Allow multiple answers? (yes/no): ")
	if err != nil {
		return err
	}
	question.Multiple = multiple

	for {
		input, err := promptLine(reader, out, "  Correct answer letters (blank for none): ")
		if err != nil {
			return err
		}
		answers, err := parseLetters(input, len(question.Options))
		if err != nil {
			fmt.Fprintf(out, "  Invalid input: %v\n", err)
			continue
		}
		question.Answers = answers
		return nil
	}
}
