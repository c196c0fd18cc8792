package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const triagePrompt = `
You are the email triage assistant of a trading company's business portal.
Classify the email below and draft a polite reply in the sender's language.

### OUTPUT FORMAT
Return a JSON object with exactly this structure:
{
  "category": "발주" | "요청" | "견적요청" | "문의" | "공지" | "미팅" | "클레임" | "기타",
  "priority": "high" | "medium" | "low",
  "summary": "two-sentence summary of the email",
  "draft": "suggested reply body",
  "confidence": 0-100
}

### EMAIL
Subject: %s
From: %s

%s
`

// TriageResult is the parsed classifier output for one email
type TriageResult struct {
	Category   string `json:"category"`
	Priority   string `json:"priority"`
	Summary    string `json:"summary"`
	Draft      string `json:"draft"`
	Confidence int    `json:"confidence"`
	Raw        string `json:"-"`
}

// TriageEmail classifies an inbound email into the portal's eight
// categories and drafts a reply.
func (c *GeminiClient) TriageEmail(ctx context.Context, subject, sender, body string) (*TriageResult, error) {
	// Long bodies blow the context for no triage benefit
	if len(body) > 8000 {
		body = body[:8000]
	}

	raw, err := c.GenerateContent(ctx, fmt.Sprintf(triagePrompt, subject, sender, body))
	if err != nil {
		return nil, err
	}

	var result TriageResult
	if err := json.Unmarshal([]byte(sanitizeModelJSON(raw)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse triage output: %w", err)
	}
	result.Raw = raw
	return &result, nil
}

// sanitizeModelJSON strips the markdown fences Gemini likes to wrap
// structured answers in, leaving the bare JSON object.
func sanitizeModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	return s
}

const marketPrompt = `
You are a commodity market analyst for a Korean chemical trading company.
Write a short market commentary in Korean (3-5 paragraphs) based on the
rates below. Mention notable moves and their likely impact on import
purchasing. Plain prose, no markdown.

### RATES
%s
`

// MarketCommentary writes the prose section of a market report from a
// rate snapshot rendered as "SYMBOL: value" lines.
func (c *GeminiClient) MarketCommentary(ctx context.Context, rateLines string) (string, error) {
	return c.GenerateContent(ctx, fmt.Sprintf(marketPrompt, rateLines))
}
