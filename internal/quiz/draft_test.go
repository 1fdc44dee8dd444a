package quiz

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDraftAddQuestionSeedsTwoEmptyOptions(t *testing.T) {
	draft := NewDraft()
	idx := draft.AddQuestion()
	if idx != 0 {
		t.Fatalf("first question index = %d, want 0", idx)
	}

	question := draft.Questions[0]
	if len(question.Options) != 2 || question.Options[0] != "" || question.Options[1] != "" {
		t.Fatalf("new question options = %+v, want two empty slots", question.Options)
	}
	if question.Multiple {
		t.Fatalf("new question should default to single answer")
	}
}

func TestDraftRemoveQuestionShiftsIndices(t *testing.T) {
	draft := NewDraft()
	draft.AddQuestion()
	draft.AddQuestion()
	draft.AddQuestion()
	draft.Questions[0].Text = "first"
	draft.Questions[1].Text = "second"
	draft.Questions[2].Text = "third"

	if err := draft.RemoveQuestion(1); err != nil {
		t.Fatalf("RemoveQuestion failed: %v", err)
	}
	if len(draft.Questions) != 2 {
		t.Fatalf("question count = %d, want 2", len(draft.Questions))
	}
	if draft.Questions[1].Text != "third" {
		t.Fatalf("question at index 1 = %q, want %q", draft.Questions[1].Text, "third")
	}

	if err := draft.RemoveQuestion(5); err == nil {
		t.Fatalf("expected error for out-of-range index")
	}
}

func TestDraftAddOptionTargetsOneQuestion(t *testing.T) {
	draft := NewDraft()
	draft.AddQuestion()
	draft.AddQuestion()

	if err := draft.AddOption(0); err != nil {
		t.Fatalf("AddOption failed: %v", err)
	}
	if len(draft.Questions[0].Options) != 3 {
		t.Fatalf("question 0 options = %d, want 3", len(draft.Questions[0].Options))
	}
	if len(draft.Questions[1].Options) != 2 {
		t.Fatalf("question 1 options = %d, want 2", len(draft.Questions[1].Options))
	}
}

func TestDraftValidate(t *testing.T) {
	draft := NewDraft()
	draft.AddQuestion()

	var validationErr *ValidationError
	if err := draft.Validate(); !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for empty title, got %v", err)
	}

	draft.Title = "  "
	if err := draft.Validate(); err == nil {
		t.Fatalf("expected validation error for blank title")
	}

	draft.Title = "My quiz"
	if err := draft.Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}

	draft.Questions = nil
	if err := draft.Validate(); err == nil {
		t.Fatalf("expected validation error for missing questions")
	}
}

func TestDraftRequestFiltersBlankOptions(t *testing.T) {
	draft := NewDraft()
	draft.Title = "Round trip"
	idx := draft.AddQuestion()
	draft.Questions[idx].Text = "Q1"
	draft.Questions[idx].Options = []string{"a", "", "b"}

	request, err := draft.Request()
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	options := request.Questions[0].Options
	if len(options) != 2 || options[0] != "a" || options[1] != "b" {
		t.Fatalf("filtered options = %+v, want [a b]", options)
	}
}

func TestDraftRequestRemapsAnswersAfterFiltering(t *testing.T) {
	draft := NewDraft()
	draft.Title = "Answers"
	idx := draft.AddQuestion()
	draft.Questions[idx].Text = "Q1"
	draft.Questions[idx].Options = []string{"", "right", "wrong"}
	draft.Questions[idx].Answers = []int{1}

	request, err := draft.Request()
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	answers := request.Questions[0].Answers
	if len(answers) != 1 || answers[0] != 0 {
		t.Fatalf("remapped answers = %+v, want [0]", answers)
	}
	if request.Questions[0].Options[answers[0]] != "right" {
		t.Fatalf("answer no longer points at the marked option")
	}
}

func TestCreateRequestWireShape(t *testing.T) {
	request := CreateRequest{
		Title: "Wire",
		Questions: []DraftQuestion{
			{Text: "Q1", Options: []string{"a", "b"}, Answers: []int{}},
		},
	}

	data, err := json.Marshal(request)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"title":"Wire","questions":[{"text":"Q1","options":["a","b"],"multiple":false,"answers":[]}]}`
	if string(data) != want {
		t.Fatalf("request body = %s, want %s", data, want)
	}
}

func TestDraftResetClearsEverything(t *testing.T) {
	draft := NewDraft()
	draft.Title = "Done"
	draft.AddQuestion()
	draft.Reset()

	if draft.Title != "" || len(draft.Questions) != 0 {
		t.Fatalf("reset draft = %+v, want empty", draft)
	}
}
