package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"sort"

	"github.com/chop-dbhi/icf-assist/internal/icf"
	"go.elastic.co/apm"
	"golang.org/x/time/rate"
)

const (
	defaultLLMURL   = "https://api.openai.com/v1/chat/completions"
	defaultLLMModel = "gpt-3.5-turbo"

	// Matches at or below this confidence are discarded
	minMatchConfidence = 0.3
	maxMatches         = 10

	// Substituted for qualifiers outside 0-4
	defaultScore = 2

	matchTemperature        = 0.3
	scoreTemperature        = 0.2
	interventionTemperature = 0.5

	matchMaxTokens        = 3000
	scoreMaxTokens        = 800
	interventionMaxTokens = 1000
)

var (
	openAIKey string = os.Getenv("OPENAI_API_KEY")
	llmURL    string = getEnv("LLM_API_URL", defaultLLMURL)
	llmModel  string = getEnv("LLM_MODEL", defaultLLMModel)
)

var (
	errNoAPIKey        = errors.New("OpenAI API 키가 설정되지 않았습니다.")
	errEmptyResponse   = errors.New("API 응답이 비어있습니다.")
	errInvalidResponse = errors.New("잘못된 API 응답 형식입니다.")
)

// apiError is a non-2xx answer from the completion endpoint
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("OpenAI API 오류: %s", e.Message)
}

type llmClient struct {
	url                     string
	apiKey                  string
	model                   string
	limiter                 *rate.Limiter
	matchTemperature        float64
	scoreTemperature        float64
	interventionTemperature float64
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Returns nil when no API key is configured
func newLLMClient(config LLMConfig) *llmClient {
	if openAIKey == "" {
		zapLogger.Info("No LLM API key configured, keyword matching only")
		return nil
	}

	return &llmClient{
		url:                     llmURL,
		apiKey:                  openAIKey,
		model:                   llmModel,
		limiter:                 newLimiter(config.RequestsPerMinute, config.Burst),
		matchTemperature:        floatOr(config.MatchTemperature, matchTemperature),
		scoreTemperature:        floatOr(config.ScoreTemperature, scoreTemperature),
		interventionTemperature: floatOr(config.InterventionTemperature, interventionTemperature),
	}
}

func newLimiter(requestsPerMinute, burst int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60), burst)
}

func floatOr(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}

func (l *llmClient) complete(ctx context.Context, name, system, user string, temperature float64, maxTokens int) ([]byte, error) {
	// Create span
	span, ctx := apm.StartSpan(ctx, name, "LLM")
	defer span.End()

	// Wait for a slot from the rate limiter
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	// Build request body
	payload, err := json.Marshal(chatRequest{
		Model: l.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    temperature,
		MaxTokens:      maxTokens,
	})
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Authorization":   "Bearer " + l.apiKey,
		"Accept":          "application/json",
		"Accept-Encoding": "gzip",
		"Content-Type":    "application/json",
	}

	// Send completion request
	resp, err := sendRequest(ctx, http.MethodPost, l.url, nil, headers, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	// Read the body
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	// Verify status code
	if resp.StatusCode >= 400 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, fmt.Errorf("error parsing completion: %w", err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, errEmptyResponse
	}

	return []byte(completion.Choices[0].Message.Content), nil
}

func newAPIError(status int, body []byte) *apiError {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	message := http.StatusText(status)
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		message = payload.Error.Message
	}
	return &apiError{StatusCode: status, Message: message}
}

func (l *llmClient) matchCodes(ctx context.Context, text string) ([]icf.CodeMatch, error) {
	system, user := matchPrompts(text)
	content, err := l.complete(ctx, "Match ICF Codes", system, user, l.matchTemperature, matchMaxTokens)
	if err != nil {
		return nil, err
	}

	var reply struct {
		Matches []icf.CodeMatch `json:"matches"`
	}
	if err := json.Unmarshal(content, &reply); err != nil {
		return nil, fmt.Errorf("API 응답 파싱 실패: %w", err)
	}
	if reply.Matches == nil {
		return nil, errInvalidResponse
	}

	matches := []icf.CodeMatch{}
	for _, match := range reply.Matches {
		if match.Code != "" && match.Confidence > minMatchConfidence {
			matches = append(matches, match)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}

	return matches, nil
}

func (l *llmClient) recommendScore(ctx context.Context, text, code, title string) (*ScoreRecommendation, error) {
	system, user := scorePrompts(text, code, title)
	content, err := l.complete(ctx, "Recommend ICF Score", system, user, l.scoreTemperature, scoreMaxTokens)
	if err != nil {
		return nil, err
	}

	var reply struct {
		PerformanceScore any `json:"performanceScore"`
		CapacityScore    any `json:"capacityScore"`
		Rationale        any `json:"rationale"`
	}
	if err := json.Unmarshal(content, &reply); err != nil {
		return nil, fmt.Errorf("API 응답 파싱 실패: %w", err)
	}

	rationale, _ := reply.Rationale.(string)
	return &ScoreRecommendation{
		PerformanceScore: coerceScore(reply.PerformanceScore),
		CapacityScore:    coerceScore(reply.CapacityScore),
		Rationale:        rationale,
	}, nil
}

func (l *llmClient) recommendInterventions(ctx context.Context, text, code, title string, performance, capacity *int) (icf.InterventionSet, error) {
	system, user := interventionPrompts(text, code, title, performance, capacity)
	content, err := l.complete(ctx, "Recommend Interventions", system, user, l.interventionTemperature, interventionMaxTokens)
	if err != nil {
		return icf.InterventionSet{}, err
	}

	var reply struct {
		Environmental any `json:"environmental"`
		Task          any `json:"task"`
		Personal      any `json:"personal"`
	}
	if err := json.Unmarshal(content, &reply); err != nil {
		return icf.InterventionSet{}, fmt.Errorf("API 응답 파싱 실패: %w", err)
	}

	return icf.InterventionSet{
		Environmental: stringList(reply.Environmental),
		Task:          stringList(reply.Task),
		Personal:      stringList(reply.Personal),
	}, nil
}

// Non-integer or out of range qualifiers fall back to the default
func coerceScore(value any) int {
	score, ok := value.(float64)
	if !ok || score < 0 || score > 4 || score != math.Trunc(score) {
		return defaultScore
	}
	return int(score)
}

// Non-array values become an empty list, non-string items are skipped
func stringList(value any) []string {
	list := []string{}
	items, ok := value.([]any)
	if !ok {
		return list
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			list = append(list, s)
		}
	}
	return list
}

func errorStatus(err error) int {
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}
