package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Bhatter1986/Options-analysis/analysis"
	"github.com/Bhatter1986/Options-analysis/interfaces"
)

// GeminiService handles interactions with Google's Gemini AI API
type GeminiService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	model      string
}

// GeminiRequest represents a request to Gemini API
type GeminiRequest struct {
	Contents []GeminiContent `json:"contents"`
}

// GeminiContent represents content in the request
type GeminiContent struct {
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart represents a part of the content
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiResponse represents the response from Gemini API
type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewGeminiService creates a new Gemini service
func NewGeminiService(apiKey, model string) *GeminiService {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}

	return &GeminiService{
		apiKey:  apiKey,
		baseURL: "https://generativelanguage.googleapis.com",
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		model: model,
	}
}

// AnalyzeChain answers an analyst prompt about an option chain. context is
// the rendered chain the question refers to; it may be empty when the
// analyst asks a general question.
func (gs *GeminiService) AnalyzeChain(prompt, context string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("no prompt provided")
	}

	var sb strings.Builder
	sb.WriteString("You are an options-analysis assistant for Indian index and stock derivatives. Be concise and clear.\n\n")
	if context != "" {
		sb.WriteString("OPTION CHAIN DATA:\n")
		sb.WriteString(context)
		sb.WriteString("\n\n")
	}
	sb.WriteString("QUESTION:\n")
	sb.WriteString(prompt)

	answer, err := gs.generateContent(sb.String())
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return answer, nil
}

// RenderChainContext formats a cached chain payload into compact prompt
// text: summary badges plus one line per strike.
func RenderChainContext(payload *interfaces.ChainPayload) string {
	if payload == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Spot: %s | PCR: %s | Max pain: %s | Call OI: %s | Put OI: %s\n",
		analysis.FormatSpot(payload.Spot),
		analysis.FormatRatio(payload.Summary.PCR),
		analysis.FormatStrike(payload.Summary.MaxPain),
		analysis.FormatOI(payload.Summary.TotalCallOI),
		analysis.FormatOI(payload.Summary.TotalPutOI)))
	sb.WriteString("STRIKE | CALL LTP | CALL OI | CALL dOI | PUT LTP | PUT OI | PUT dOI\n")

	for _, row := range payload.Chain {
		sb.WriteString(fmt.Sprintf("%s | %s | %s | %s | %s | %s | %s\n",
			analysis.FormatStrike(row.Strike),
			analysis.FormatPrice(row.Call.LastPrice),
			analysis.FormatOI(row.Call.OpenInterest),
			analysis.FormatChangeOI(row.Call.ChangeOI),
			analysis.FormatPrice(row.Put.LastPrice),
			analysis.FormatOI(row.Put.OpenInterest),
			analysis.FormatChangeOI(row.Put.ChangeOI)))
	}
	return sb.String()
}

// generateContent calls the Gemini API
func (gs *GeminiService) generateContent(prompt string) (string, error) {
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		gs.baseURL, gs.model, gs.apiKey)

	reqBody := GeminiRequest{
		Contents: []GeminiContent{
			{
				Parts: []GeminiPart{
					{Text: prompt},
				},
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := gs.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
