// Package suggest produces menu-authoring text (dish names and descriptions)
// from a generative model. It is a convenience for operators and has no
// bearing on billing.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrNotConfigured = errors.New("suggestions are not configured")
	ErrRateLimited   = errors.New("too many suggestion requests, try again shortly")
	ErrEmptyPrompt   = errors.New("prompt is empty")
	ErrEmptyResult   = errors.New("model returned no text")
)

// DefaultCuisine is used when the caller names none.
const DefaultCuisine = "Indian"

// Params are the sampling settings for one call.
type Params struct {
	Temperature float32
	TopP        float32
	TopK        float32
}

var (
	nameParams        = Params{Temperature: 0.8, TopP: 0.9, TopK: 40}
	descriptionParams = Params{Temperature: 0.7, TopP: 0.85, TopK: 50}
)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// Recorder receives per-call outcomes.
type Recorder interface {
	SuggestionRequested(kind, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) SuggestionRequested(string, string) {}

// Suggester bounds generator calls by a timeout and a rate limit.
type Suggester struct {
	gen      Generator
	limiter  *rate.Limiter
	timeout  time.Duration
	recorder Recorder
	logger   *slog.Logger
}

// Option configures a Suggester.
type Option func(*Suggester)

// WithTimeout bounds each call.
func WithTimeout(d time.Duration) Option {
	return func(s *Suggester) { s.timeout = d }
}

// WithRatePerMinute allows n calls per minute with a burst of n.
// Zero or less disables limiting.
func WithRatePerMinute(n int) Option {
	return func(s *Suggester) {
		if n <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), n)
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Suggester) { s.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Suggester) { s.logger = logger }
}

// New returns a Suggester. A nil generator yields ErrNotConfigured on every call.
func New(gen Generator, opts ...Option) *Suggester {
	s := &Suggester{
		gen:      gen,
		timeout:  10 * time.Second,
		recorder: nopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enabled reports whether a generator is configured.
func (s *Suggester) Enabled() bool {
	return s.gen != nil
}

// SuggestDishName proposes one dish name from a free-form description.
func (s *Suggester) SuggestDishName(ctx context.Context, basePrompt, cuisine string) (string, error) {
	basePrompt = strings.TrimSpace(basePrompt)
	if basePrompt == "" {
		return "", ErrEmptyPrompt
	}
	cuisine = strings.TrimSpace(cuisine)
	if cuisine == "" {
		cuisine = DefaultCuisine
	}

	prompt := fmt.Sprintf("Suggest one creative and appealing %s dish name based on the following characteristics or ingredients: %q. "+
		"Provide only the dish name itself, without any introductory phrases, explanations, or quotation marks.", cuisine, basePrompt)
	return s.generate(ctx, "name", prompt, nameParams)
}

// GenerateDescription writes a short menu description for a dish.
func (s *Suggester) GenerateDescription(ctx context.Context, dishName, dishType, keyIngredients string) (string, error) {
	dishName = strings.TrimSpace(dishName)
	if dishName == "" {
		return "", ErrEmptyPrompt
	}

	prompt := fmt.Sprintf("Generate a concise and appealing menu description for an Indian dish named %q. It is a %s dish. "+
		"Key ingredients include: %s. The description should be suitable for a restaurant menu, ideally 2-3 sentences long. "+
		"Highlight its taste and texture. Do not use markdown or lists.",
		dishName, strings.TrimSpace(dishType), strings.TrimSpace(keyIngredients))
	return s.generate(ctx, "description", prompt, descriptionParams)
}

func (s *Suggester) generate(ctx context.Context, kind, prompt string, params Params) (string, error) {
	if s.gen == nil {
		s.recorder.SuggestionRequested(kind, "not_configured")
		return "", ErrNotConfigured
	}
	if s.limiter != nil && !s.limiter.Allow() {
		s.recorder.SuggestionRequested(kind, "rate_limited")
		return "", ErrRateLimited
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.gen.Generate(ctx, prompt, params)
	if err != nil {
		outcome := "error"
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			outcome = "timeout"
			err = fmt.Errorf("suggestion timed out after %s: %w", s.timeout, context.DeadlineExceeded)
		} else if errors.Is(err, context.Canceled) {
			outcome = "canceled"
		}
		s.recorder.SuggestionRequested(kind, outcome)
		s.logger.Warn("Suggestion failed", "kind", kind, "error", err)
		return "", fmt.Errorf("failed to generate %s: %w", kind, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		s.recorder.SuggestionRequested(kind, "empty")
		return "", ErrEmptyResult
	}
	s.recorder.SuggestionRequested(kind, "ok")
	return text, nil
}
