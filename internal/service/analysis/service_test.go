package analysis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"estatedocs/internal/config"
	"estatedocs/internal/domain/models"
	"estatedocs/internal/service/analysis/providers/mock"
)

// failingProvider always errors, standing in for an unreachable primary.
type failingProvider struct {
	name string
}

func (p *failingProvider) Name() string { return p.name }

func (p *failingProvider) Analyze(ctx context.Context, req *Request) (*Result, error) {
	return nil, errors.New("provider unreachable")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnalyzeUsesDefaultProvider(t *testing.T) {
	registry := NewProviderRegistry()
	registry.Register(mock.NewProvider())

	svc := NewService(registry, "mock", "test-model", testLogger())

	result, err := svc.Analyze(context.Background(), "[NAME] is missing.", models.DocumentTypeWill, 7)
	if err != nil {
		t.Fatalf("Analyze error = %v", err)
	}
	if result.Provider != "mock" {
		t.Errorf("provider = %q, want mock", result.Provider)
	}
	if result.Version != 7 {
		t.Errorf("version = %d, want 7", result.Version)
	}
	if len(result.Issues) == 0 {
		t.Error("expected placeholder issues")
	}
}

func TestAnalyzeFallsBackToMock(t *testing.T) {
	registry := NewProviderRegistry()
	registry.Register(&failingProvider{name: "anthropic"})
	registry.Register(mock.NewProvider())

	svc := NewService(registry, "anthropic", "test-model", testLogger())

	result, err := svc.Analyze(context.Background(), "clean text", models.DocumentTypeWill, 1)
	if err != nil {
		t.Fatalf("Analyze error = %v", err)
	}
	if result.Provider != "mock" {
		t.Errorf("provider = %q, want mock fallback", result.Provider)
	}
}

func TestAnalyzeMissingDefaultFallsBackToMock(t *testing.T) {
	registry := NewProviderRegistry()
	registry.Register(mock.NewProvider())

	svc := NewService(registry, "anthropic", "test-model", testLogger())

	result, err := svc.Analyze(context.Background(), "clean text", models.DocumentTypeWill, 1)
	if err != nil {
		t.Fatalf("Analyze error = %v", err)
	}
	if result.Provider != "mock" {
		t.Errorf("provider = %q, want mock", result.Provider)
	}
}

// capturingProvider records the request text it was handed.
type capturingProvider struct {
	got string
}

func (p *capturingProvider) Name() string { return "capture" }

func (p *capturingProvider) Analyze(ctx context.Context, req *Request) (*Result, error) {
	p.got = req.DocumentText
	return &Result{ComplianceScore: 1.0}, nil
}

func TestAnalyzeTruncatesOnRuneBoundary(t *testing.T) {
	registry := NewProviderRegistry()
	capture := &capturingProvider{}
	registry.Register(capture)

	svc := NewService(registry, "capture", "test-model", testLogger())

	// Three-byte runes misalign with the byte limit, so a byte-boundary cut
	// would split one mid-sequence.
	text := strings.Repeat("€", config.MaxAnalysisTextLength/3+10)

	if _, err := svc.Analyze(context.Background(), text, models.DocumentTypeWill, 1); err != nil {
		t.Fatalf("Analyze error = %v", err)
	}

	if len(capture.got) > config.MaxAnalysisTextLength {
		t.Errorf("sent %d bytes, want at most %d", len(capture.got), config.MaxAnalysisTextLength)
	}
	if len(capture.got) < config.MaxAnalysisTextLength-utf8.UTFMax {
		t.Errorf("sent %d bytes, truncated too far", len(capture.got))
	}
	if !utf8.ValidString(capture.got) {
		t.Error("truncated text is not valid UTF-8")
	}
}

func TestAnalyzeNoProvidersErrors(t *testing.T) {
	svc := NewService(NewProviderRegistry(), "anthropic", "test-model", testLogger())

	if _, err := svc.Analyze(context.Background(), "text", models.DocumentTypeWill, 1); err == nil {
		t.Error("Analyze with empty registry succeeded, want error")
	}
}
