package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "d450", r.URL.Query().Get("code"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		w.Write(body)
	}))
	defer server.Close()

	resp, err := sendRequest(context.Background(), http.MethodPost, server.URL, url.Values{"code": {"d450"}},
		map[string]string{"Content-Type": "application/json"}, strings.NewReader(`{"ok": true}`), 5)
	require.NoError(t, err)

	body, err := readBody(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, string(body))
}

func TestReadBodyGzip(t *testing.T) {
	var compressed bytes.Buffer
	writer := gzip.NewWriter(&compressed)
	writer.Write([]byte(`{"choices": []}`))
	writer.Close()

	resp := &http.Response{
		Header: http.Header{"Content-Encoding": {"gzip"}},
		Body:   io.NopCloser(&compressed),
	}

	body, err := readBody(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"choices": []}`, string(body))
}

func TestReadBodyInvalidGzip(t *testing.T) {
	resp := &http.Response{
		Header: http.Header{"Content-Encoding": {"gzip"}},
		Body:   io.NopCloser(strings.NewReader("plain text")),
	}

	_, err := readBody(resp)
	assert.Error(t, err)
}

func TestCreateChunks(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, createChunks([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1, 2, 3}}, createChunks([]int{1, 2, 3}, 5))
	assert.Equal(t, [][]int{{1, 2, 3}}, createChunks([]int{1, 2, 3}, 0))
	assert.Len(t, createChunks([]int{}, 3), 1)
}

func TestScoreAllOrdersResults(t *testing.T) {
	client := fakeLLM(t, func(req chatRequest) (int, string) {
		if strings.Contains(userPrompt(req), `"e110`) {
			return http.StatusServiceUnavailable, `{"error": {"message": "overloaded"}}`
		}
		return http.StatusOK, `{"performanceScore": 1, "capacityScore": 0, "rationale": "ok"}`
	})

	codes := []CodeRef{{ICFCode: "d450"}, {ICFCode: "e110"}, {ICFCode: "d455"}}
	results := scoreAll(context.Background(), client, "보행", codes, 2)

	require.Len(t, results, 3)
	assert.Equal(t, "d450", results[0].ICFCode)
	require.NotNil(t, results[0].ScoreRecommendation)
	assert.Equal(t, 1, results[0].PerformanceScore)

	assert.Equal(t, "e110", results[1].ICFCode)
	assert.Nil(t, results[1].ScoreRecommendation)
	assert.Equal(t, "OpenAI API 오류: overloaded", results[1].Error)

	assert.Equal(t, "d455", results[2].ICFCode)
	assert.Empty(t, results[2].Error)
}
