package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quiz-client/internal/api"
	"quiz-client/internal/quiz"
	"quiz-client/internal/state"
)

func TestRunListPrintsQuizzes(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]quiz.Quiz{
			{ID: "42", Title: "Capitals", CreatedAt: created, Questions: []quiz.Question{{ID: 1}}},
		})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), nil, nil)
	var out bytes.Buffer

	if err := runList(context.Background(), &out, client); err != nil {
		t.Fatalf("runList failed: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "1. Capitals (1 questions, created 2026-03-01T10:00:00Z)") {
		t.Fatalf("unexpected listing: %s", text)
	}
	if !strings.Contains(text, "id: 42") {
		t.Fatalf("expected quiz id in listing: %s", text)
	}
}

func TestRunListEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]quiz.Quiz{})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), nil, nil)
	var out bytes.Buffer

	if err := runList(context.Background(), &out, client); err != nil {
		t.Fatalf("runList failed: %v", err)
	}
	if !strings.Contains(out.String(), "No quizzes yet.") {
		t.Fatalf("expected empty message, got: %s", out.String())
	}
}

func TestRunResultsRendersBreakdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/quizzes/42/results/sub-1" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(quiz.ScoreResult{
			Score: 1,
			PerQuestion: []quiz.QuestionResult{
				{QuestionID: 1, Selected: []int{0}, Correct: []int{0}, CorrectBool: true},
				{QuestionID: 2, Selected: []int{1}, Correct: []int{2}, CorrectBool: false},
			},
		})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), nil, nil)
	var out bytes.Buffer

	if err := runResults(context.Background(), &out, client, nil, "42", "sub-1", false); err != nil {
		t.Fatalf("runResults failed: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Score: 1") {
		t.Fatalf("expected score, got: %s", text)
	}
	if !strings.Contains(text, "Question 1: selected A, correct A - correct") {
		t.Fatalf("expected correct line, got: %s", text)
	}
	if !strings.Contains(text, "Question 2: selected B, correct C - incorrect") {
		t.Fatalf("expected incorrect line, got: %s", text)
	}
}

func TestRunResultsLastUsesLocalHistory(t *testing.T) {
	store, err := state.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	err = store.RecordSubmission(context.Background(), state.SubmissionRecord{
		QuizID: "42", QuizTitle: "Capitals", SubmissionID: "sub-7", Score: 2,
	})
	if err != nil {
		t.Fatalf("RecordSubmission failed: %v", err)
	}

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(quiz.ScoreResult{Score: 2})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), nil, nil)
	var out bytes.Buffer

	if err := runResults(context.Background(), &out, client, store, "42", "", true); err != nil {
		t.Fatalf("runResults failed: %v", err)
	}
	if gotPath != "/api/quizzes/42/results/sub-7" {
		t.Fatalf("fetched path = %q, want the recorded submission", gotPath)
	}
}

func TestRunResultsLastWithoutHistory(t *testing.T) {
	store, err := state.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	var out bytes.Buffer
	if err := runResults(context.Background(), &out, nil, store, "42", "", true); err != nil {
		t.Fatalf("runResults failed: %v", err)
	}
	if !strings.Contains(out.String(), "No recorded submissions for quiz 42.") {
		t.Fatalf("expected no-history message, got: %s", out.String())
	}
}

func TestRunHistory(t *testing.T) {
	store, err := state.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	var out bytes.Buffer
	if err := runHistory(context.Background(), &out, store, 10); err != nil {
		t.Fatalf("runHistory failed: %v", err)
	}
	if !strings.Contains(out.String(), "No recorded submissions.") {
		t.Fatalf("expected empty history message, got: %s", out.String())
	}

	err = store.RecordSubmission(context.Background(), state.SubmissionRecord{
		QuizID: "42", QuizTitle: "Capitals", SubmissionID: "sub-1", Score: 1,
	})
	if err != nil {
		t.Fatalf("RecordSubmission failed: %v", err)
	}

	out.Reset()
	if err := runHistory(context.Background(), &out, store, 10); err != nil {
		t.Fatalf("runHistory failed: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Capitals (quiz 42) score=1 submission=sub-1") {
		t.Fatalf("unexpected history output: %s", text)
	}
}
