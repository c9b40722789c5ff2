package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchKeywordWithoutLLM(t *testing.T) {
	useLLM(t, nil)

	rec := doRequest(t, http.MethodPost, "/icf/match", `{"clinicalText": "걷기"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var response MatchResponse
	decodeJSON(t, rec, &response)
	assert.Equal(t, sourceKeyword, response.Source)
	require.Len(t, response.Matches, 1)
	assert.Equal(t, "d450", response.Matches[0].Code)
	assert.InDelta(t, 0.8, response.Matches[0].Confidence, 1e-9)
}

func TestMatchNoFindingIsEmptyList(t *testing.T) {
	useLLM(t, nil)

	rec := doRequest(t, http.MethodPost, "/icf/match", `{"clinicalText": "특이 사항 없음"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"matches": [], "source": "keyword"}`, rec.Body.String())
}

func TestMatchRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{name: "empty text", body: `{"clinicalText": ""}`, msg: msgTextRequired},
		{name: "whitespace text", body: `{"clinicalText": "  \n"}`, msg: msgTextRequired},
		{name: "missing text", body: `{}`, msg: msgTextRequired},
		{name: "wrong type", body: `{"clinicalText": 3}`, msg: msgInvalidBody},
		{name: "malformed", body: `{"clinicalText": `, msg: msgInvalidBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, http.MethodPost, "/icf/match", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var response ErrorResponse
			decodeJSON(t, rec, &response)
			assert.Equal(t, tt.msg, response.Error)
		})
	}
}

func TestMatchUsesLLM(t *testing.T) {
	useLLM(t, fakeLLM(t, func(req chatRequest) (int, string) {
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)
		assert.InDelta(t, matchTemperature, req.Temperature, 1e-9)
		assert.Contains(t, req.Messages[0].Content, "- d450 (걷기)")
		assert.Contains(t, userPrompt(req), `"평지 보행 가능, 피로 호소"`)
		return http.StatusOK, `{"matches": [
			{"code": "d450", "title": "걷기", "confidence": 0.6, "rationale": "보행"},
			{"code": "", "title": "빈 코드", "confidence": 0.9, "rationale": ""},
			{"code": "d455", "title": "이동하기", "confidence": 0.3, "rationale": "낮음"},
			{"code": "b130", "title": "에너지 및 동기", "confidence": 0.9, "rationale": "피로"}
		]}`
	}))

	rec := doRequest(t, http.MethodPost, "/icf/match", `{"clinicalText": "평지 보행 가능, 피로 호소"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var response MatchResponse
	decodeJSON(t, rec, &response)
	assert.Equal(t, sourceAI, response.Source)
	require.Len(t, response.Matches, 2)
	assert.Equal(t, "b130", response.Matches[0].Code)
	assert.Equal(t, "d450", response.Matches[1].Code)
}

func TestMatchFallsBackToKeywords(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "api error", status: http.StatusInternalServerError, body: `{"error": {"message": "upstream failure"}}`},
		{name: "no matches", status: http.StatusOK, body: `{"matches": []}`},
		{name: "matches below threshold", status: http.StatusOK, body: `{"matches": [{"code": "d450", "confidence": 0.2}]}`},
		{name: "missing matches", status: http.StatusOK, body: `{"codes": []}`},
		{name: "not json", status: http.StatusOK, body: `matches: d450`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useLLM(t, fakeLLM(t, func(req chatRequest) (int, string) {
				return tt.status, tt.body
			}))

			rec := doRequest(t, http.MethodPost, "/icf/match", `{"clinicalText": "식사 후 목욕"}`)
			require.Equal(t, http.StatusOK, rec.Code)

			var response MatchResponse
			decodeJSON(t, rec, &response)
			assert.Equal(t, sourceKeyword, response.Source)
			codes := []string{}
			for _, m := range response.Matches {
				codes = append(codes, m.Code)
			}
			assert.Equal(t, "d510,d550", strings.Join(codes, ","))
		})
	}
}
