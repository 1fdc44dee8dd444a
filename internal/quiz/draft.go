package quiz

import (
	"fmt"
	"strings"
)

// ValidationError rejects a draft locally, before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DraftQuestion is an in-progress question. Drafts have no ids; every edit
// is keyed by index. Answers holds the author-marked correct option indices.
type DraftQuestion struct {
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Multiple bool     `json:"multiple"`
	Answers  []int    `json:"answers"`
}

// Draft is an unsaved quiz held entirely by the authoring flow until
// submission, then discarded.
type Draft struct {
	Title     string
	Questions []DraftQuestion
}

func NewDraft() *Draft {
	return &Draft{}
}

// AddQuestion appends a question with two empty option slots and single
// answer mode, returning its index.
func (d *Draft) AddQuestion() int {
	d.Questions = append(d.Questions, DraftQuestion{
		Options: []string{"", ""},
	})
	return len(d.Questions) - 1
}

// RemoveQuestion deletes by index, shifting subsequent indices down.
func (d *Draft) RemoveQuestion(index int) error {
	if index < 0 || index >= len(d.Questions) {
		return fmt.Errorf("no question at index %d", index)
	}
	d.Questions = append(d.Questions[:index], d.Questions[index+1:]...)
	return nil
}

// AddOption appends one empty option slot to a single question.
func (d *Draft) AddOption(questionIndex int) error {
	if questionIndex < 0 || questionIndex >= len(d.Questions) {
		return fmt.Errorf("no question at index %d", questionIndex)
	}
	d.Questions[questionIndex].Options = append(d.Questions[questionIndex].Options, "")
	return nil
}

// SetOption replaces an option's text in place.
func (d *Draft) SetOption(questionIndex, optionIndex int, text string) error {
	if questionIndex < 0 || questionIndex >= len(d.Questions) {
		return fmt.Errorf("no question at index %d", questionIndex)
	}
	options := d.Questions[questionIndex].Options
	if optionIndex < 0 || optionIndex >= len(options) {
		return fmt.Errorf("no option at index %d", optionIndex)
	}
	options[optionIndex] = text
	return nil
}

// Validate is the only pre-flight check in the system: a draft needs a
// non-empty title and at least one question.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Message: "quiz title is required"}
	}
	if len(d.Questions) == 0 {
		return &ValidationError{Message: "quiz needs at least one question"}
	}
	return nil
}

// cleanQuestions returns the draft questions with blank options filtered out,
// shaped for the create request. Author-marked answers are remapped so they
// keep pointing at the same option text after filtering.
func (d *Draft) cleanQuestions() []DraftQuestion {
	questions := make([]DraftQuestion, 0, len(d.Questions))
	for _, question := range d.Questions {
		kept := make([]string, 0, len(question.Options))
		indexMap := make(map[int]int, len(question.Options))
		for idx, option := range question.Options {
			if strings.TrimSpace(option) == "" {
				continue
			}
			indexMap[idx] = len(kept)
			kept = append(kept, option)
		}

		answers := make([]int, 0, len(question.Answers))
		for _, answer := range question.Answers {
			if mapped, ok := indexMap[answer]; ok {
				answers = append(answers, mapped)
			}
		}

		questions = append(questions, DraftQuestion{
			Text:     question.Text,
			Options:  kept,
			Multiple: question.Multiple,
			Answers:  answers,
		})
	}
	return questions
}

// Reset returns the draft to the empty state after a successful submit.
func (d *Draft) Reset() {
	d.Title = ""
	d.Questions = nil
}

// CreateRequest is the POST /api/quizzes body.
type CreateRequest struct {
	Title     string          `json:"title"`
	Questions []DraftQuestion `json:"questions"`
}

// Request validates the draft and shapes it for submission.
func (d *Draft) Request() (CreateRequest, error) {
	if err := d.Validate(); err != nil {
		return CreateRequest{}, err
	}
	return CreateRequest{
		Title:     d.Title,
		Questions: d.cleanQuestions(),
	}, nil
}
