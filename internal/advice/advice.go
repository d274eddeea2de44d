// Package advice generates motivational and nutrition text through a
// chat-completions API. Every call is time-bounded and falls back to a
// static message on any failure; callers never see an error.
package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitkz/fitcoach/internal/domain"
	"github.com/fitkz/fitcoach/internal/metrics"
)

// Static fallbacks, returned whenever the generator is unavailable.
const (
	FallbackWorkout   = "Тамаша жұмыс! Жалғастыра беріңіз! 💪🔥"
	FallbackNutrition = "Қазір кеңес алу мүмкін емес."
	FallbackAnswer    = "Қазір жауап алу мүмкін емес."
)

// Profile is the slice of the user profile the generator sees.
type Profile struct {
	Gender string
	Age    int
	Goal   domain.Goal
	Level  domain.Level
}

// Generator produces coaching text. Implementations must be safe for
// concurrent use.
type Generator interface {
	WorkoutAdvice(ctx context.Context, p Profile, workoutTitle string, feeling domain.Feeling) string
	NutritionAdvice(ctx context.Context, p Profile) string
	Ask(ctx context.Context, question string, p Profile) string
}

// Client talks to a Groq-compatible chat-completions endpoint.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a Generator. Without an API key it returns a disabled
// generator that always answers with the fallbacks.
func New(apiKey, baseURL, model string, timeout time.Duration, log zerolog.Logger) Generator {
	if apiKey == "" {
		log.Warn().Msg("advice generator disabled: no API key")
		return disabled{}
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) chat(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call advice API: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("advice API status %d: %s", resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("advice API returned no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func (c *Client) generate(ctx context.Context, system, user, fallback string) string {
	text, err := c.chat(ctx, system, user)
	if err != nil || text == "" {
		metrics.AdviceFallbacks.Inc()
		c.log.Warn().Err(err).Msg("advice generation failed, using fallback")
		return fallback
	}
	return text
}

// WorkoutAdvice produces a short motivational message after a completion.
func (c *Client) WorkoutAdvice(ctx context.Context, p Profile, workoutTitle string, feeling domain.Feeling) string {
	system := "Сен қазақ тілінде сөйлейтін фитнес жаттықтырушысың. Қысқа жауап бер (2-3 сөйлем)."
	user := fmt.Sprintf("Жаттығу: %s. Сезім: %s. Мотивация бер.", workoutTitle, feeling)
	return c.generate(ctx, system, user, FallbackWorkout)
}

// NutritionAdvice produces a short nutrition tip for the user's goal.
func (c *Client) NutritionAdvice(ctx context.Context, p Profile) string {
	goal := string(p.Goal)
	if goal == "" {
		goal = "белгісіз"
	}
	system := "Сен қазақ тілінде сөйлейтін тамақтану жаттықтырушысың."
	user := fmt.Sprintf("Мақсат: %s. Қысқа тамақтану кеңесі бер (4 пункт).", goal)
	return c.generate(ctx, system, user, FallbackNutrition)
}

// Ask answers a free-form trainer question.
func (c *Client) Ask(ctx context.Context, question string, p Profile) string {
	system := "Сен қазақ тілінде сөйлейтін фитнес жаттықтырушысың. Қысқа жауап бер."
	return c.generate(ctx, system, question, FallbackAnswer)
}

// disabled always answers with the static fallbacks.
type disabled struct{}

func (disabled) WorkoutAdvice(context.Context, Profile, string, domain.Feeling) string {
	return FallbackWorkout
}

func (disabled) NutritionAdvice(context.Context, Profile) string {
	return FallbackNutrition
}

func (disabled) Ask(context.Context, string, Profile) string {
	return FallbackAnswer
}
