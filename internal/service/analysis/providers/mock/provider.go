// Package mock provides a local analysis provider used for development and
// as the fallback when no real provider is reachable. It requires no API key.
package mock

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	loremgen "github.com/bozaro/golorem"

	services "estatedocs/internal/domain/services"
)

var placeholderRegexp = regexp.MustCompile(`\[[A-Z][A-Z ]*\]`)

// Provider is a mock analysis provider. Its issue list comes from a simple
// scan for unfilled placeholder tokens and empty role sections, so the mock
// stays useful during development; the suggestion text is lorem ipsum.
type Provider struct {
	generator *loremgen.Lorem
}

// NewProvider creates a new mock provider.
func NewProvider() *Provider {
	return &Provider{
		generator: loremgen.New(),
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "mock"
}

// Analyze scans the document locally and fabricates a plausible review.
func (p *Provider) Analyze(ctx context.Context, req *services.AnalysisRequest) (*services.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var issues []string

	placeholders := uniqueStrings(placeholderRegexp.FindAllString(req.DocumentText, -1))
	for _, token := range placeholders {
		issues = append(issues, fmt.Sprintf("placeholder %s has not been filled in", token))
	}

	for _, line := range strings.Split(req.DocumentText, "\n") {
		if strings.HasPrefix(line, "No ") && strings.HasSuffix(line, "specified.") {
			issues = append(issues, strings.TrimSuffix(line, "."))
		}
	}

	score := 1.0 - 0.1*float64(len(issues))
	if score < 0.2 {
		score = 0.2
	}

	suggestions := []string{
		p.generator.Sentence(5, 12),
		p.generator.Sentence(5, 12),
	}

	return &services.AnalysisResult{
		ComplianceScore: score,
		Issues:          issues,
		Suggestions:     suggestions,
	}, nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
