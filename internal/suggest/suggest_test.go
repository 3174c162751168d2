package suggest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeGenerator struct {
	text    string
	err     error
	block   bool
	prompts []string
	params  []Params
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	g.prompts = append(g.prompts, prompt)
	g.params = append(g.params, params)
	if g.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return g.text, g.err
}

type countingRecorder map[string]int

func (r countingRecorder) SuggestionRequested(kind, outcome string) {
	r[kind+"/"+outcome]++
}

func TestSuggestDishName(t *testing.T) {
	gen := &fakeGenerator{text: "  Smoky Paneer Tikka \n"}
	rec := countingRecorder{}
	s := New(gen, WithRecorder(rec))

	name, err := s.SuggestDishName(context.Background(), "grilled cottage cheese, smoky", "")
	if err != nil {
		t.Fatalf("SuggestDishName failed: %v", err)
	}
	if name != "Smoky Paneer Tikka" {
		t.Errorf("SuggestDishName() = %q, want trimmed output", name)
	}
	if !strings.Contains(gen.prompts[0], "appealing Indian dish name") {
		t.Errorf("prompt should default to Indian cuisine: %s", gen.prompts[0])
	}
	if !strings.Contains(gen.prompts[0], `"grilled cottage cheese, smoky"`) {
		t.Errorf("prompt should quote the base prompt: %s", gen.prompts[0])
	}
	if gen.params[0] != nameParams {
		t.Errorf("params = %+v, want %+v", gen.params[0], nameParams)
	}
	if rec["name/ok"] != 1 {
		t.Errorf("expected one ok outcome, got %v", rec)
	}
}

func TestGenerateDescription(t *testing.T) {
	gen := &fakeGenerator{text: "Creamy and rich."}
	s := New(gen)

	desc, err := s.GenerateDescription(context.Background(), "Dal Makhani", "main course", "black lentils, butter")
	if err != nil {
		t.Fatalf("GenerateDescription failed: %v", err)
	}
	if desc != "Creamy and rich." {
		t.Errorf("GenerateDescription() = %q", desc)
	}
	for _, want := range []string{`named "Dal Makhani"`, "It is a main course dish.", "black lentils, butter"} {
		if !strings.Contains(gen.prompts[0], want) {
			t.Errorf("prompt missing %q: %s", want, gen.prompts[0])
		}
	}
	if gen.params[0] != descriptionParams {
		t.Errorf("params = %+v, want %+v", gen.params[0], descriptionParams)
	}
}

func TestSuggester_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		s := New(nil)
		if s.Enabled() {
			t.Error("Enabled() should be false without a generator")
		}
		if _, err := s.SuggestDishName(ctx, "spicy", ""); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("error = %v, want ErrNotConfigured", err)
		}
	})

	t.Run("empty prompt", func(t *testing.T) {
		gen := &fakeGenerator{text: "x"}
		s := New(gen)
		if _, err := s.SuggestDishName(ctx, "   ", ""); !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("error = %v, want ErrEmptyPrompt", err)
		}
		if _, err := s.GenerateDescription(ctx, "", "main", "rice"); !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("error = %v, want ErrEmptyPrompt", err)
		}
		if len(gen.prompts) != 0 {
			t.Error("generator must not be called for empty input")
		}
	})

	t.Run("rate limited", func(t *testing.T) {
		s := New(&fakeGenerator{text: "x"}, WithRatePerMinute(2))
		for i := 0; i < 2; i++ {
			if _, err := s.SuggestDishName(ctx, "spicy", ""); err != nil {
				t.Fatalf("call %d failed: %v", i, err)
			}
		}
		if _, err := s.SuggestDishName(ctx, "spicy", ""); !errors.Is(err, ErrRateLimited) {
			t.Errorf("error = %v, want ErrRateLimited", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		rec := countingRecorder{}
		s := New(&fakeGenerator{block: true}, WithTimeout(10*time.Millisecond), WithRecorder(rec))
		_, err := s.SuggestDishName(ctx, "spicy", "")
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("error = %v, want DeadlineExceeded", err)
		}
		if rec["name/timeout"] != 1 {
			t.Errorf("expected timeout outcome, got %v", rec)
		}
	})

	t.Run("caller cancels", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		s := New(&fakeGenerator{block: true})
		if _, err := s.GenerateDescription(cctx, "Dal", "main", "lentils"); !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want Canceled", err)
		}
	})

	t.Run("generator failure", func(t *testing.T) {
		boom := errors.New("quota exceeded")
		s := New(&fakeGenerator{err: boom})
		if _, err := s.SuggestDishName(ctx, "spicy", ""); !errors.Is(err, boom) {
			t.Errorf("error = %v, want wrapped generator error", err)
		}
	})

	t.Run("blank result", func(t *testing.T) {
		s := New(&fakeGenerator{text: " \n"})
		if _, err := s.SuggestDishName(ctx, "spicy", ""); !errors.Is(err, ErrEmptyResult) {
			t.Errorf("error = %v, want ErrEmptyResult", err)
		}
	})
}
