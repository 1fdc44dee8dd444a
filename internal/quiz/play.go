package quiz

import (
	"context"
	"errors"
	"fmt"
)

// SessionState tracks where a play session is in its lifecycle. A session is
// created ready (the quiz is already loaded), moves to submitted only after
// the remote call succeeds, and a cancelled session never submits.
type SessionState int

const (
	SessionReady SessionState = iota
	SessionSubmitted
	SessionCancelled
)

var (
	ErrSessionClosed   = errors.New("play session is closed")
	ErrNothingToSubmit = errors.New("no answers selected")
)

// Submitter sends a finished selection set to the server for scoring.
type Submitter interface {
	SubmitAnswers(ctx context.Context, quizID string, answers []Answer) (SubmitResult, error)
}

// PlaySession owns the transient selection map for one run through a quiz.
// Each session owns its map exclusively; it is discarded once submission
// succeeds or the session is cancelled.
type PlaySession struct {
	quiz     Quiz
	selected map[int64][]int
	state    SessionState
}

func NewPlaySession(q Quiz) *PlaySession {
	return &PlaySession{
		quiz:     q,
		selected: make(map[int64][]int),
	}
}

func (s *PlaySession) Quiz() Quiz {
	return s.quiz
}

func (s *PlaySession) State() SessionState {
	return s.state
}

// Toggle applies one selection click to a question. Single-answer questions
// replace any prior selection; multi-answer questions add an absent index
// and remove a present one, so applying the same toggle twice restores the
// prior state.
func (s *PlaySession) Toggle(questionID int64, optionIndex int) error {
	if s.state != SessionReady {
		return ErrSessionClosed
	}

	question, ok := s.question(questionID)
	if !ok {
		return fmt.Errorf("no question with id %d", questionID)
	}
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return fmt.Errorf("question %d has no option %d", questionID, optionIndex)
	}

	if !question.Multiple {
		s.selected[questionID] = []int{optionIndex}
		return nil
	}

	current := s.selected[questionID]
	for i, existing := range current {
		if existing == optionIndex {
			s.selected[questionID] = append(current[:i], current[i+1:]...)
			return nil
		}
	}
	s.selected[questionID] = append(current, optionIndex)
	return nil
}

// Selected reports the chosen option indices for a question.
func (s *PlaySession) Selected(questionID int64) []int {
	return s.selected[questionID]
}

// Answers flattens the selection map into the submission payload. Ordering
// follows the quiz's question order so the payload is deterministic;
// unanswered questions are omitted.
func (s *PlaySession) Answers() []Answer {
	answers := make([]Answer, 0, len(s.selected))
	for _, question := range s.quiz.Questions {
		selected, ok := s.selected[question.ID]
		if !ok || len(selected) == 0 {
			continue
		}
		answers = append(answers, Answer{
			QuestionID: question.ID,
			Selected:   selected,
		})
	}
	return answers
}

// Submit sends the current selections for scoring. The session transitions
// to submitted only when the remote call succeeds; on failure it stays
// ready so the caller can retry or cancel.
func (s *PlaySession) Submit(ctx context.Context, submitter Submitter) (SubmitResult, error) {
	if s.state != SessionReady {
		return SubmitResult{}, ErrSessionClosed
	}

	answers := s.Answers()
	if len(answers) == 0 {
		return SubmitResult{}, ErrNothingToSubmit
	}

	result, err := submitter.SubmitAnswers(ctx, s.quiz.ID, answers)
	if err != nil {
		return SubmitResult{}, err
	}

	s.state = SessionSubmitted
	s.selected = nil
	return result, nil
}

// Cancel discards the selection map and closes the session without any
// network call.
func (s *PlaySession) Cancel() {
	if s.state != SessionReady {
		return
	}
	s.state = SessionCancelled
	s.selected = nil
}

func (s *PlaySession) question(id int64) (Question, bool) {
	for _, question := range s.quiz.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}
