// Package genai wraps the Google Generative Language REST API for the
// career-navigator assistant.
package genai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta"

// systemPrompt primes the model as the platform's career navigator.
const systemPrompt = "You are the Career Navigator AI for EduSkill, a course and " +
	"freelance-hiring platform. When a user tells you what they want to become, " +
	"reply with a structured skill path naming the specific certifications they " +
	"need to pass before clients will hire them. Be direct, motivating, and " +
	"career-focused."

// GeminiClient calls the generateContent endpoint of a Gemini model.
type GeminiClient struct {
	http   *resty.Client
	apiKey string
	model  string
}

// NewGeminiClient builds a client for the given model. The caller is expected
// to have checked that apiKey is non-empty.
func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second),
		apiKey: apiKey,
		model:  model,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  struct {
		MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the user message and returns the model's reply text.
func (c *GeminiClient) Generate(ctx context.Context, message string) (string, error) {
	req := generateRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: message}}},
		},
	}
	req.GenerationConfig.MaxOutputTokens = 2000

	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(req).
		SetResult(&out).
		SetError(&out).
		Post(fmt.Sprintf("/models/%s:generateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp.IsError() {
		msg := resp.Status()
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("generate content: %s", msg)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generate content: empty response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
