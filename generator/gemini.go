package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// GenerationClient is the opaque generation capability: submit a facts pack,
// receive structured article content, or fail.
type GenerationClient interface {
	GenerateArticle(ctx context.Context, facts *FactsPack) (*ArticleContent, error)
}

const defaultGeminiBaseUrl = "https://generativelanguage.googleapis.com/v1beta/models"

const systemPrompt = `You are a senior dev/AI editor. Write an ORIGINAL analytical article from official release notes. Do not paraphrase sentences; synthesize and add value.

Return STRICT JSON in this exact format:
{
  "headline": "...",
  "dek": "...",
  "body_sections": {
    "summary_150w": "...",
    "what_changed": ["...","..."],
    "why_it_matters": ["...","...","..."],
    "actions": ["upgrade command ...","check migration ..."],
    "breaking_changes": ["..."]
  },
  "code_snippet": {"lang":"bash","title":"Upgrade","code":"npx @next/codemod ..."},
  "citations": [{"url":"...","title":"..."},{"url":"..."}],
  "tags": ["nextjs","release","react","web"]
}

Rules:
- Add concrete commands and file names when possible.
- Cite ONLY official links. No invented claims.
- If a fact is uncertain, omit it.
- Write in %s.
- Target audience: %s.`

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseUrl string
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{
		client:  resty.New().SetTimeout(90 * time.Second),
		apiKey:  apiKey,
		model:   model,
		baseUrl: defaultGeminiBaseUrl,
	}
}

// NewGeminiClientWithBaseUrl is used by tests with a local server.
func NewGeminiClientWithBaseUrl(apiKey, model, baseUrl string) *GeminiClient {
	c := NewGeminiClient(apiKey, model)
	c.baseUrl = baseUrl
	return c
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateArticle submits the facts pack and parses the structured output.
// Every failure mode maps to a GenerationCapabilityError so the orchestrator
// can treat them uniformly.
func (g *GeminiClient) GenerateArticle(ctx context.Context, facts *FactsPack) (*ArticleContent, error) {
	req := geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{
		{Text: fmt.Sprintf(systemPrompt, languageName(facts.Language), facts.Audience)},
		{Text: buildUserInput(facts)},
	}}}}

	result := &geminiResponse{}
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(result).
		SetError(result).
		Post(g.baseUrl + "/" + g.model + ":generateContent")
	if err != nil {
		return nil, &GenerationCapabilityError{Reason: "request failed", Err: err}
	}
	if resp.IsError() {
		msg := resp.Status()
		if result.Error != nil {
			msg = result.Error.Message
		}
		return nil, &GenerationCapabilityError{Reason: "api error: " + msg}
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, &GenerationCapabilityError{Reason: "empty response"}
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	return ParseArticleContent(text.String())
}

// ParseArticleContent extracts and decodes the article JSON out of raw model
// text, tolerating surrounding prose.
func ParseArticleContent(text string) (*ArticleContent, error) {
	raw, err := ExtractJsonObject(text)
	if err != nil {
		return nil, &GenerationCapabilityError{Reason: "malformed output", Err: err}
	}

	content := &ArticleContent{}
	if err := json.Unmarshal([]byte(raw), content); err != nil {
		return nil, &GenerationCapabilityError{Reason: "malformed output", Err: errors.Wrap(err, "fail to decode article JSON")}
	}
	if content.Headline == "" || content.BodySections.Summary150w == "" {
		return nil, &GenerationCapabilityError{Reason: "incomplete article structure"}
	}
	return content, nil
}

func buildUserInput(facts *FactsPack) string {
	var sources strings.Builder
	for _, source := range facts.Sources {
		sources.WriteString(fmt.Sprintf("- %s: %s\n", source.Title, source.Url))
	}
	keyFacts, _ := json.MarshalIndent(facts.KeyFacts, "", "  ")

	return fmt.Sprintf(`Analyze this release and create an analytical article:

Topic: %s
Date: %s
Version: %s
Highlights: %s
Risks: %s
Ecosystem: %s

Sources:
%s
Key Facts:
%s`,
		facts.Topic,
		facts.KeyFacts.Date,
		facts.KeyFacts.Version,
		strings.Join(facts.KeyFacts.Highlights, ", "),
		strings.Join(facts.KeyFacts.Risk, ", "),
		strings.Join(facts.KeyFacts.Ecosystem, ", "),
		sources.String(),
		string(keyFacts))
}

func languageName(code string) string {
	if code == "" || code == "en" {
		return "English"
	}
	return code
}
