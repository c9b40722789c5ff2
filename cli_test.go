package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMatchCommand(t *testing.T) {
	out, err := runCommand(t, matchCmd(), "", "식사", "후", "목욕")
	require.NoError(t, err)

	var response MatchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, sourceKeyword, response.Source)
	require.Len(t, response.Matches, 2)
	assert.Equal(t, "d510", response.Matches[0].Code)
	assert.Equal(t, "d550", response.Matches[1].Code)
}

func TestMatchCommandStdin(t *testing.T) {
	out, err := runCommand(t, matchCmd(), "환자는 걷기가 가능함\n")
	require.NoError(t, err)
	assert.Contains(t, out, `"code": "d450"`)
}

func TestMatchCommandAIFallsBackWithoutClient(t *testing.T) {
	useLLM(t, nil)

	out, err := runCommand(t, matchCmd(), "", "--ai", "걷기")
	require.NoError(t, err)
	assert.Contains(t, out, `"source": "keyword"`)
}

func TestMatchCommandEmptyInput(t *testing.T) {
	_, err := runCommand(t, matchCmd(), "  \n")
	assert.Error(t, err)
}

func TestAnalyzeCommand(t *testing.T) {
	path := writeFile(t, "scores.json", `[
		{"code": "d450", "title": "걷기", "performanceScore": 3, "capacityScore": 1},
		{"code": "d520", "title": "옷 입기", "performanceScore": 1, "capacityScore": 1}
	]`)

	out, err := runCommand(t, analyzeCmd(), "", path)
	require.NoError(t, err)

	var response AnalysisResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	require.NotNil(t, response.Analysis)
	assert.InDelta(t, 1.0, response.Analysis.AvgDifference, 1e-9)
	assert.Contains(t, response.Analysis.Findings, "1개 항목에서 능력 자체에 문제가 있습니다.")
}

func TestAnalyzeCommandStdin(t *testing.T) {
	out, err := runCommand(t, analyzeCmd(), `[]`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"analysis": null}`, out)
}

func TestAnalyzeCommandInvalidInput(t *testing.T) {
	_, err := runCommand(t, analyzeCmd(), `[{"code": "d450", "performanceScore": 9, "capacityScore": 0}]`)
	assert.Error(t, err)

	_, err = runCommand(t, analyzeCmd(), `not json`)
	assert.Error(t, err)

	_, err = runCommand(t, analyzeCmd(), "", "/nonexistent/scores.json")
	assert.Error(t, err)
}
