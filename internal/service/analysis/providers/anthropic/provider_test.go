package anthropic

import (
	"testing"
)

func TestParseResultPlainJSON(t *testing.T) {
	result, err := parseResult(`{"compliance_score": 0.85, "issues": ["no witnesses"], "suggestions": ["add two witnesses"]}`)
	if err != nil {
		t.Fatalf("parseResult error = %v", err)
	}
	if result.ComplianceScore != 0.85 {
		t.Errorf("score = %v, want 0.85", result.ComplianceScore)
	}
	if len(result.Issues) != 1 || result.Issues[0] != "no witnesses" {
		t.Errorf("issues = %v", result.Issues)
	}
	if len(result.Suggestions) != 1 {
		t.Errorf("suggestions = %v", result.Suggestions)
	}
}

func TestParseResultStripsCodeFences(t *testing.T) {
	fenced := "```json\n{\"compliance_score\": 0.5, \"issues\": [], \"suggestions\": []}\n```"

	result, err := parseResult(fenced)
	if err != nil {
		t.Fatalf("parseResult error = %v", err)
	}
	if result.ComplianceScore != 0.5 {
		t.Errorf("score = %v, want 0.5", result.ComplianceScore)
	}
}

func TestParseResultClampsScore(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{`{"compliance_score": -0.4, "issues": [], "suggestions": []}`, 0},
		{`{"compliance_score": 3.2, "issues": [], "suggestions": []}`, 1},
	}

	for _, tt := range tests {
		result, err := parseResult(tt.text)
		if err != nil {
			t.Fatalf("parseResult error = %v", err)
		}
		if result.ComplianceScore != tt.want {
			t.Errorf("score = %v, want %v", result.ComplianceScore, tt.want)
		}
	}
}

func TestParseResultRejectsProse(t *testing.T) {
	if _, err := parseResult("Here is my review of the document."); err == nil {
		t.Error("parseResult accepted prose, want error")
	}
}

func TestNewProviderRequiresKey(t *testing.T) {
	if _, err := NewProvider(""); err == nil {
		t.Error("NewProvider(\"\") succeeded, want error")
	}
}
