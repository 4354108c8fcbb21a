package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"estatedocs/internal/config"
	"estatedocs/internal/domain/models"
)

// Service runs best-effort compliance analysis through the configured
// provider, falling back to the mock provider when the primary fails.
type Service struct {
	registry        *Registry
	defaultProvider string
	defaultModel    string
	logger          *slog.Logger
}

// NewService creates an analysis service over a populated registry.
func NewService(registry *Registry, defaultProvider, defaultModel string, logger *slog.Logger) *Service {
	return &Service{
		registry:        registry,
		defaultProvider: defaultProvider,
		defaultModel:    defaultModel,
		logger:          logger,
	}
}

// Analyze reviews a generated document. The version token is the session
// version the document text was generated from; it is echoed on the result
// so callers can discard responses that no longer match the session.
//
// Failures degrade: the primary provider's error triggers the mock fallback,
// and only a fallback failure surfaces as an error ("suggestions
// unavailable"). Analysis never blocks wizard navigation.
func (s *Service) Analyze(ctx context.Context, text string, docType models.DocumentType, version int64) (*models.Analysis, error) {
	if len(text) > config.MaxAnalysisTextLength {
		// Back up to a rune boundary so the cut never produces invalid UTF-8
		cut := config.MaxAnalysisTextLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	req := &Request{
		DocumentText: text,
		DocumentType: docType,
		Model:        s.defaultModel,
	}

	providerName := s.defaultProvider
	provider, err := s.registry.Get(providerName)
	if err != nil {
		providerName = "mock"
		provider, err = s.registry.Get(providerName)
		if err != nil {
			return nil, fmt.Errorf("no analysis provider available: %w", err)
		}
	}

	result, err := provider.Analyze(ctx, req)
	if err != nil && providerName != "mock" {
		s.logger.Warn("analysis provider failed, falling back to mock",
			"provider", providerName,
			"error", err,
		)
		providerName = "mock"
		if fallback, fbErr := s.registry.Get(providerName); fbErr == nil {
			result, err = fallback.Analyze(ctx, req)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	return &models.Analysis{
		ComplianceScore: result.ComplianceScore,
		Issues:          result.Issues,
		Suggestions:     result.Suggestions,
		Provider:        providerName,
		Version:         version,
	}, nil
}
