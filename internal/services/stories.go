package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"project-tracker/internal/config"
	"project-tracker/internal/models"
	"project-tracker/internal/policy"
)

const storySystemPrompt = "You are a helpful AI that generates Agile user stories in JSON format. " +
	"Respond only with valid JSON having a 'stories' key, containing a list " +
	"of strings in the format 'As a [role], I want to [action], so that [benefit].'"

type StoryService interface {
	GenerateUserStories(ctx context.Context, actor models.User, projectDescription string) (json.RawMessage, error)
}

// StoryServiceImpl calls an OpenAI-compatible chat completions endpoint and
// hands the model's JSON content back verbatim. It performs no writes, so a
// failed call never leaves partial state behind.
type StoryServiceImpl struct {
	cfg        config.AIConfig
	httpClient *http.Client
	breaker    *Breaker
}

func NewStoryService(cfg config.AIConfig) *StoryServiceImpl {
	return &StoryServiceImpl{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    NewBreaker(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *StoryServiceImpl) GenerateUserStories(ctx context.Context, actor models.User, projectDescription string) (json.RawMessage, error) {
	if !policy.CanGenerateStories(actor) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(projectDescription) == "" {
		return nil, fmt.Errorf("%w: project description is required", ErrValidation)
	}
	if s.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing API key in environment", ErrExternalService)
	}

	var content json.RawMessage
	err := s.breaker.Execute(func() error {
		var callErr error
		content, callErr = s.call(ctx, projectDescription)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	return content, nil
}

func (s *StoryServiceImpl) call(ctx context.Context, projectDescription string) (json.RawMessage, error) {
	reqBody := chatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: storySystemPrompt},
			{Role: "user", Content: "Generate user stories for this project: " + projectDescription},
		},
	}
	reqBody.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("completion returned no choices")
	}

	content := completion.Choices[0].Message.Content
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("model returned non-JSON content")
	}

	return json.RawMessage(content), nil
}
