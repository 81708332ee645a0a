// Package planning talks to the Gemini API to draft task plans and polish
// task descriptions
package planning

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/riordanpawley/taskflow/internal/config"
	"github.com/riordanpawley/taskflow/internal/domain"
)

const (
	tracerName     = "github.com/riordanpawley/taskflow/internal/services/planning"
	initialBackoff = 500 * time.Millisecond
	maxErrorBody   = 512
)

// HTTPClient abstracts HTTP requests for testing
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Enhancer rewrites task descriptions
type Enhancer interface {
	EnhanceDescription(ctx context.Context, title, description string) (string, error)
}

// Gateway provides AI-powered task planning
type Gateway struct {
	httpClient HTTPClient
	logger     *slog.Logger
	cfg        config.AIConfig
	backoff    time.Duration
}

// Option configures a Gateway
type Option func(*Gateway)

// WithBackoff sets the delay before the first retry; later retries double it
func WithBackoff(d time.Duration) Option {
	return func(g *Gateway) { g.backoff = d }
}

// NewGateway creates a gateway. It fails when no API key is configured.
func NewGateway(httpClient HTTPClient, cfg config.AIConfig, logger *slog.Logger, opts ...Option) (*Gateway, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("%w: set GEMINI_API_KEY or ai.apiKey", domain.ErrAIDisabled)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	g := &Gateway{
		httpClient: httpClient,
		logger:     logger,
		cfg:        config.MergeWithDefaults(&config.Config{AI: cfg}).AI,
		backoff:    initialBackoff,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Model returns the model name requests are sent to
func (g *Gateway) Model() string {
	return g.cfg.Model
}

// GeneratePlan asks the model to break goal into 3-6 tasks.
//
// The reply is validated item by item; any task with a missing or mistyped
// field fails the whole plan. Every returned draft has status TODO.
func (g *Gateway) GeneratePlan(ctx context.Context, goal string) ([]domain.TaskDraft, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "planning.generate_plan",
		trace.WithAttributes(
			attribute.String("ai.model", g.cfg.Model),
			attribute.Int("planning.goal_length", len(goal)),
		))
	defer span.End()

	goal = strings.TrimSpace(goal)
	if goal == "" {
		err := &domain.GenerationError{Message: "goal is empty"}
		failSpan(span, err)
		return nil, err
	}

	g.logger.Info("generating plan", "goal", goal)

	req := generateRequest{
		Contents:          []content{{Role: "user", Parts: []part{{Text: fmt.Sprintf(planPrompt, goal)}}}},
		SystemInstruction: &content{Parts: []part{{Text: planInstruction}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: mimeJSON,
			ResponseSchema:   planSchema(),
		},
	}

	text, err := g.call(ctx, span, req)
	if err != nil {
		genErr := &domain.GenerationError{Message: callFailure(err), Err: err}
		failSpan(span, genErr)
		g.logger.Warn("plan generation failed", "error", err)
		return nil, genErr
	}

	drafts, err := parsePlan(text)
	if err != nil {
		genErr := &domain.GenerationError{Message: "reply does not match the task schema", Err: err}
		failSpan(span, genErr)
		g.logger.Warn("plan rejected", "error", err)
		return nil, genErr
	}
	if len(drafts) == 0 {
		genErr := &domain.GenerationError{Message: "empty plan"}
		failSpan(span, genErr)
		g.logger.Warn("plan rejected", "error", genErr)
		return nil, genErr
	}

	span.SetAttributes(attribute.Int("planning.tasks", len(drafts)))
	span.SetStatus(codes.Ok, "")
	g.logger.Info("plan generated", "tasks", len(drafts))
	return drafts, nil
}

// EnhanceDescription rewrites description as concise Markdown
func (g *Gateway) EnhanceDescription(ctx context.Context, title, description string) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "planning.enhance_description",
		trace.WithAttributes(
			attribute.String("ai.model", g.cfg.Model),
			attribute.Int("planning.description_length", len(description)),
		))
	defer span.End()

	if strings.TrimSpace(description) == "" {
		err := &domain.EnhancementError{Message: "description is empty"}
		failSpan(span, err)
		return "", err
	}

	g.logger.Debug("enhancing description", "title", title)

	req := generateRequest{
		Contents:          []content{{Role: "user", Parts: []part{{Text: fmt.Sprintf(enhancePrompt, title, description)}}}},
		SystemInstruction: &content{Parts: []part{{Text: enhanceInstruction}}},
		GenerationConfig:  &generationConfig{ResponseMimeType: mimeText},
	}

	text, err := g.call(ctx, span, req)
	if err != nil {
		enhErr := &domain.EnhancementError{Message: callFailure(err), Err: err}
		failSpan(span, enhErr)
		g.logger.Warn("enhance failed", "error", err)
		return "", enhErr
	}

	text = strings.TrimSpace(text)
	if text == "" {
		enhErr := &domain.EnhancementError{Message: "empty reply"}
		failSpan(span, enhErr)
		return "", enhErr
	}

	span.SetStatus(codes.Ok, "")
	return text, nil
}

// EnhanceOrKeep enhances description, falling back to the original text when
// enhancement fails. The error is still returned so the caller can notify.
func EnhanceOrKeep(ctx context.Context, enhancer Enhancer, title, description string) (string, error) {
	if enhancer == nil {
		return description, &domain.EnhancementError{Message: "assistant unavailable", Err: domain.ErrAIDisabled}
	}
	enhanced, err := enhancer.EnhanceDescription(ctx, title, description)
	if err != nil {
		return description, err
	}
	return enhanced, nil
}

// call sends req with the configured timeout, retrying on 429 and 5xx
func (g *Gateway) call(ctx context.Context, span trace.Span, req generateRequest) (string, error) {
	body, err := sonic.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout())
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent", g.cfg.BaseURL, g.cfg.Model)

	var lastErr error
	attempts := 0
	for attempt := 0; attempt <= g.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := g.backoff << (attempt - 1)
			g.logger.Debug("retrying AI request", "attempt", attempt, "delay", delay, "error", lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", contextError(ctx.Err())
			}
		}
		attempts++

		text, err := g.send(ctx, url, body)
		if err == nil {
			span.SetAttributes(attribute.Int("planning.attempts", attempts))
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", contextError(ctx.Err())
		}
		var apiErr *apiError
		if errors.As(err, &apiErr) && !apiErr.retryable() {
			break
		}
	}

	span.SetAttributes(attribute.Int("planning.attempts", attempts))
	return "", lastErr
}

func (g *Gateway) send(ctx context.Context, url string, body []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.cfg.APIKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(respBody)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return "", &apiError{StatusCode: resp.StatusCode, Body: msg}
	}

	var apiResp generateResponse
	if err := sonic.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if apiResp.PromptFeedback != nil && apiResp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("prompt blocked: %s", apiResp.PromptFeedback.BlockReason)
	}
	if len(apiResp.Candidates) == 0 {
		return "", errors.New("empty response from Gemini API")
	}

	return apiResp.text(), nil
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	return fmt.Errorf("%w: %w", domain.ErrCanceled, err)
}

func callFailure(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, domain.ErrCanceled):
		return "request canceled"
	default:
		return "failed to call Gemini API"
	}
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
