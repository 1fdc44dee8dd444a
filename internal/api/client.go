// Package api is the client for the remote quiz API. All persistence lives
// on the server; the client issues fire-and-report calls with no retry, no
// backoff and no caching.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"quiz-client/internal/quiz"
)

const defaultBaseURL = "http://localhost:8080"

// TokenSource supplies the current bearer token, or "" when logged out.
// Threading it through the constructor keeps session state out of globals.
type TokenSource interface {
	Token() string
}

// Client talks to the quiz API at a fixed base origin.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        logrus.FieldLogger
}

func NewClient(baseURL string, httpClient *http.Client, tokens TokenSource, log logrus.FieldLogger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		log = logger
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     tokens,
		log:        log,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the /api/login response: the authenticated user plus the
// bearer token for subsequent calls.
type LoginResult struct {
	User  quiz.User `json:"user"`
	Token string    `json:"token"`
}

// Login exchanges credentials for a token. A rejected login surfaces as
// ErrAuthFailed; the caller decides what to do with the token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var result LoginResult
	err := c.doJSON(ctx, http.MethodPost, "/api/login", loginRequest{Email: email, Password: password}, &result)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return LoginResult{}, fmt.Errorf("%w: %s", ErrAuthFailed, apiErr.Message)
		}
		return LoginResult{}, err
	}
	return result, nil
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// Register creates an account and returns the new user.
func (c *Client) Register(ctx context.Context, email, password, displayName string) (quiz.User, error) {
	var user quiz.User
	err := c.doJSON(ctx, http.MethodPost, "/api/register", registerRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	}, &user)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return quiz.User{}, fmt.Errorf("%w: %s", ErrAuthFailed, apiErr.Message)
		}
		return quiz.User{}, err
	}
	return user, nil
}

// ListQuizzes fetches every quiz. No pagination, no filtering.
func (c *Client) ListQuizzes(ctx context.Context) ([]quiz.Quiz, error) {
	var quizzes []quiz.Quiz
	if err := c.doJSON(ctx, http.MethodGet, "/api/quizzes", nil, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// CreateQuiz validates the draft locally and posts it. Validation failures
// never reach the network.
func (c *Client) CreateQuiz(ctx context.Context, draft *quiz.Draft) (quiz.Quiz, error) {
	request, err := draft.Request()
	if err != nil {
		return quiz.Quiz{}, err
	}

	var created quiz.Quiz
	if err := c.doJSON(ctx, http.MethodPost, "/api/quizzes", request, &created); err != nil {
		return quiz.Quiz{}, err
	}
	return created, nil
}

// GetQuiz fetches one quiz by id, fresh every time.
func (c *Client) GetQuiz(ctx context.Context, id string) (quiz.Quiz, error) {
	if strings.TrimSpace(id) == "" {
		return quiz.Quiz{}, errors.New("quiz id is required")
	}

	var result quiz.Quiz
	err := c.doJSON(ctx, http.MethodGet, "/api/quizzes/"+url.PathEscape(id), nil, &result)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return quiz.Quiz{}, fmt.Errorf("quiz %q: %w", id, ErrNotFound)
		}
		return quiz.Quiz{}, err
	}
	return result, nil
}

type submitRequest struct {
	Answers []quiz.Answer `json:"answers"`
}

// SubmitAnswers posts a flattened selection set for scoring and returns the
// server-computed result.
func (c *Client) SubmitAnswers(ctx context.Context, quizID string, answers []quiz.Answer) (quiz.SubmitResult, error) {
	if strings.TrimSpace(quizID) == "" {
		return quiz.SubmitResult{}, errors.New("quiz id is required")
	}

	var result quiz.SubmitResult
	path := "/api/quizzes/" + url.PathEscape(quizID) + "/submit"
	if err := c.doJSON(ctx, http.MethodPost, path, submitRequest{Answers: answers}, &result); err != nil {
		return quiz.SubmitResult{}, err
	}
	return result, nil
}

// GetResults fetches the per-question scoring breakdown for a submission.
func (c *Client) GetResults(ctx context.Context, quizID, submissionID string) (quiz.ScoreResult, error) {
	if strings.TrimSpace(quizID) == "" || strings.TrimSpace(submissionID) == "" {
		return quiz.ScoreResult{}, errors.New("quiz id and submission id are required")
	}

	var result quiz.ScoreResult
	path := "/api/quizzes/" + url.PathEscape(quizID) + "/results/" + url.PathEscape(submissionID)
	err := c.doJSON(ctx, http.MethodGet, path, nil, &result)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return quiz.ScoreResult{}, fmt.Errorf("submission %q: %w", submissionID, ErrNotFound)
		}
		return quiz.ScoreResult{}, err
	}
	return result, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.log.WithFields(logrus.Fields{"method": method, "url": fullURL}).Debug("api request")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer response.Body.Close()

	c.log.WithFields(logrus.Fields{"method": method, "url": fullURL, "status": response.StatusCode}).Debug("api response")

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := Error{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
