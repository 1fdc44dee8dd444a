package quiz

import (
	"encoding/json"
	"time"
)

// Option is one answer choice within a question. The API serves options
// either as plain strings or as {"text": ...} objects; both decode into
// this one shape so the rest of the client never type-switches on it.
type Option struct {
	Text string
}

func (o *Option) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		o.Text = text
		return nil
	}

	// Object form. Key matching is case-insensitive, so both "text" and
	// the legacy "Text" spelling land here.
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	o.Text = obj.Text
	return nil
}

func (o Option) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Text)
}

// Question is a multiple-choice question as served by the API. Options have
// no stable ids; their identity is the positional index, which answer
// submission and scoring both rely on.
type Question struct {
	ID       int64    `json:"id"`
	Text     string   `json:"text"`
	Options  []Option `json:"options"`
	Multiple bool     `json:"multiple"`
}

// Quiz is owned by the remote API; the client holds read-only copies and
// re-fetches fresh for every play session.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Answer is one entry of the submission payload: a question id plus the
// selected option indices, in selection order.
type Answer struct {
	QuestionID int64 `json:"questionId"`
	Selected   []int `json:"selected"`
}

// SubmitResult is the synchronous response to an answer submission.
type SubmitResult struct {
	SubmissionID string  `json:"submissionId"`
	Score        float64 `json:"score"`
}

// QuestionResult is the server's verdict for a single question. Correctness
// is always computed server-side; the client only displays it.
type QuestionResult struct {
	QuestionID  int64 `json:"questionId"`
	Selected    []int `json:"selected"`
	Correct     []int `json:"correct"`
	CorrectBool bool  `json:"correctBool"`
}

// ScoreResult is the richer result fetched by submission id.
type ScoreResult struct {
	Score       float64          `json:"score"`
	PerQuestion []QuestionResult `json:"perQuestion"`
}

// User identifies an authenticated account. The API returns it from login
// and register; the client treats it as display data.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}
