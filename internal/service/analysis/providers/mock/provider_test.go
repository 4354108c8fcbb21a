package mock

import (
	"context"
	"strings"
	"testing"

	"estatedocs/internal/domain/models"
	services "estatedocs/internal/domain/services"
)

func TestAnalyzeFlagsPlaceholdersAndEmptySections(t *testing.T) {
	p := NewProvider()

	req := &services.AnalysisRequest{
		DocumentText: "I, [NAME], of [ADDRESS], declare.\n" +
			"[NAME] again.\n" +
			"No executors specified.\n",
		DocumentType: models.DocumentTypeWill,
	}

	result, err := p.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze error = %v", err)
	}

	// Repeated placeholders are reported once each.
	if len(result.Issues) != 3 {
		t.Fatalf("issues = %v, want 3 entries", result.Issues)
	}
	joined := strings.Join(result.Issues, "; ")
	for _, want := range []string{"[NAME]", "[ADDRESS]", "No executors specified"} {
		if !strings.Contains(joined, want) {
			t.Errorf("issues missing %q: %v", want, result.Issues)
		}
	}

	want := 1.0 - 0.3
	if result.ComplianceScore < want-0.001 || result.ComplianceScore > want+0.001 {
		t.Errorf("score = %v, want %v", result.ComplianceScore, want)
	}

	if len(result.Suggestions) != 2 {
		t.Errorf("suggestions = %d, want 2", len(result.Suggestions))
	}
	for _, s := range result.Suggestions {
		if strings.TrimSpace(s) == "" {
			t.Error("empty suggestion text")
		}
	}
}

func TestAnalyzeCleanDocument(t *testing.T) {
	p := NewProvider()

	result, err := p.Analyze(context.Background(), &services.AnalysisRequest{
		DocumentText: "I, Margaret Chen, of 120 Queen Street West, declare.",
		DocumentType: models.DocumentTypeWill,
	})
	if err != nil {
		t.Fatalf("Analyze error = %v", err)
	}

	if len(result.Issues) != 0 {
		t.Errorf("issues = %v, want none", result.Issues)
	}
	if result.ComplianceScore != 1.0 {
		t.Errorf("score = %v, want 1.0", result.ComplianceScore)
	}
}

func TestAnalyzeScoreFloor(t *testing.T) {
	p := NewProvider()

	var b strings.Builder
	for _, token := range []string{"[AAA]", "[BBB]", "[CCC]", "[DDD]", "[EEE]", "[FFF]", "[GGG]", "[HHH]", "[III]", "[JJJ]"} {
		b.WriteString(token)
		b.WriteString("\n")
	}

	result, err := p.Analyze(context.Background(), &services.AnalysisRequest{
		DocumentText: b.String(),
		DocumentType: models.DocumentTypeWill,
	})
	if err != nil {
		t.Fatalf("Analyze error = %v", err)
	}
	if result.ComplianceScore != 0.2 {
		t.Errorf("score = %v, want floor 0.2", result.ComplianceScore)
	}
}

func TestAnalyzeHonorsCancellation(t *testing.T) {
	p := NewProvider()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Analyze(ctx, &services.AnalysisRequest{DocumentText: "x"}); err == nil {
		t.Error("Analyze with cancelled context succeeded, want error")
	}
}
