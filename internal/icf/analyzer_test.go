package icf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordCodeList(records []DifferenceRecord) []string {
	codes := []string{}
	for _, r := range records {
		codes = append(codes, r.Code)
	}
	return codes
}

func scoreCodeList(scores []ScoreEntry) []string {
	codes := []string{}
	for _, s := range scores {
		codes = append(codes, s.Code)
	}
	return codes
}

func TestAnalyzeEmpty(t *testing.T) {
	assert.Nil(t, Analyze(nil, nil))
	assert.Nil(t, Analyze([]ScoreEntry{}, nil))
}

func TestAnalyzeCapacityLower(t *testing.T) {
	scores := []ScoreEntry{
		{Code: "d450", Title: "걷기", PerformanceScore: 3, CapacityScore: 1},
		{Code: "d520", Title: "옷 입기", PerformanceScore: 1, CapacityScore: 1},
	}

	result := Analyze(scores, nil)
	require.NotNil(t, result)

	assert.InDelta(t, 1.0, result.AvgDifference, 1e-9)
	assert.Equal(t, []string{"d450"}, recordCodeList(result.CapacityLowerItems))
	assert.Equal(t, []string{"d450"}, recordCodeList(result.LargeDifferenceItems))
	assert.Empty(t, result.PerformanceLowerItems)
	assert.Equal(t, []string{"d450"}, scoreCodeList(result.HighScoreItems))
	assert.Equal(t, []string{"d520"}, scoreCodeList(result.LowScoreItems))

	require.Len(t, result.Differences, 2)
	assert.Equal(t, DifferenceRecord{
		Code: "d450", Title: "걷기", Performance: 3, Capacity: 1, Difference: 2, AbsDifference: 2,
	}, result.Differences[0])

	assert.Equal(t, []string{
		"1개 항목에서 능력 자체에 문제가 있습니다.",
		"1개 항목에서 수행력과 능력 간 큰 차이(2점 이상)가 있습니다.",
		"전반적으로 능력이 수행력보다 낮은 경향을 보입니다.",
		"1개 항목에서 심각한 문제(3점 이상)가 확인되었습니다.",
		"1개 항목에서 문제가 거의 없거나 경미한 수준입니다.",
	}, result.Findings)
	assert.Equal(t, []string{
		"능력 향상을 위한 중재가 필요한 항목들(d450)에 대해 기능 훈련 및 치료적 접근을 권장합니다.",
		"큰 차이를 보이는 항목들(d450)은 환경 요인 평가를 추가로 실시하여 저해요인과 촉진요인을 파악하는 것이 중요합니다.",
		"기능 향상을 위한 치료적 중재가 우선적으로 필요합니다.",
		"심각한 문제가 있는 항목들(d450)에 대해 즉각적인 중재 및 지원이 필요합니다.",
		"양호한 항목들(d520)은 유지 및 예방적 접근을 통해 현재 수준을 보존하는 것이 중요합니다.",
	}, result.Recommendations)
}

func TestAnalyzePerformanceLower(t *testing.T) {
	scores := []ScoreEntry{
		{Code: "d510", Title: "씻기", PerformanceScore: 0, CapacityScore: 2},
		{Code: "d550", Title: "먹기", PerformanceScore: 1, CapacityScore: 2},
	}

	result := Analyze(scores, nil)
	require.NotNil(t, result)

	assert.InDelta(t, -1.5, result.AvgDifference, 1e-9)
	assert.Equal(t, []string{"d510", "d550"}, recordCodeList(result.PerformanceLowerItems))
	assert.Equal(t, []string{"d510"}, recordCodeList(result.LargeDifferenceItems))
	assert.Empty(t, result.CapacityLowerItems)
	assert.Empty(t, result.HighScoreItems)
	assert.Empty(t, result.LowScoreItems)

	assert.Equal(t, []string{
		"2개 항목에서 수행력이 능력보다 낮게 나타났습니다.",
		"1개 항목에서 수행력과 능력 간 큰 차이(2점 이상)가 있습니다.",
		"전반적으로 수행력이 능력보다 낮은 경향을 보입니다.",
	}, result.Findings)
	assert.Equal(t, "환경적 제약이 있는 항목들(d510, d550)에 대해 환경 수정 및 보조기구 활용을 고려해보세요.", result.Recommendations[0])
	assert.Equal(t, "환경적 지원 및 보조기구 활용을 통해 실제 수행력을 향상시킬 수 있습니다.", result.Recommendations[2])
}

func TestAnalyzeSimilarScores(t *testing.T) {
	tests := []struct {
		name   string
		scores []ScoreEntry
		avg    float64
	}{
		{
			name:   "identical scores",
			scores: []ScoreEntry{{Code: "d450", PerformanceScore: 2, CapacityScore: 2}},
			avg:    0,
		},
		{
			name: "average exactly at threshold",
			scores: []ScoreEntry{
				{Code: "d450", PerformanceScore: 2, CapacityScore: 1},
				{Code: "d455", PerformanceScore: 2, CapacityScore: 2},
			},
			avg: 0.5,
		},
		{
			name: "differences cancel out",
			scores: []ScoreEntry{
				{Code: "d450", PerformanceScore: 4, CapacityScore: 2},
				{Code: "d455", PerformanceScore: 2, CapacityScore: 4},
			},
			avg: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze(tt.scores, nil)
			require.NotNil(t, result)
			assert.InDelta(t, tt.avg, result.AvgDifference, 1e-9)
			assert.Contains(t, result.Findings, "수행력과 능력이 유사한 수준으로 나타났습니다.")
			assert.Contains(t, result.Recommendations, "환경적 요인보다는 개인의 기능적 능력에 초점을 맞춘 중재가 적절합니다.")
			assert.Len(t, result.Findings, len(result.Recommendations))
		})
	}
}

func TestAnalyzeCategoriesOverlap(t *testing.T) {
	scores := []ScoreEntry{
		{Code: "d440", PerformanceScore: 4, CapacityScore: 0},
		{Code: "d520", PerformanceScore: 0, CapacityScore: 0},
		{Code: "d550", PerformanceScore: 1, CapacityScore: 3},
	}

	result := Analyze(scores, nil)
	require.NotNil(t, result)

	// d440 is a large difference, capacity lower, and high score at once
	assert.Equal(t, []string{"d440", "d550"}, recordCodeList(result.LargeDifferenceItems))
	assert.Equal(t, []string{"d440"}, recordCodeList(result.CapacityLowerItems))
	assert.Equal(t, []string{"d550"}, recordCodeList(result.PerformanceLowerItems))
	assert.Equal(t, []string{"d440", "d550"}, scoreCodeList(result.HighScoreItems))
	assert.Equal(t, []string{"d520"}, scoreCodeList(result.LowScoreItems))
}

func TestAnalyzeInterventionExamples(t *testing.T) {
	lib := NewInterventionLibrary(map[string]InterventionSet{
		"d450": {Environmental: []string{"워커 제공"}, Task: []string{"보행 훈련"}},
	}, nil)
	scores := []ScoreEntry{
		{Code: "d450", Title: "걷기", PerformanceScore: 2, CapacityScore: 1},
		{Code: "d520", Title: "옷 입기", PerformanceScore: 1, CapacityScore: 1},
		{Code: "d999", Title: "unknown", PerformanceScore: 0, CapacityScore: 3},
	}

	result := Analyze(scores, lib)
	require.NotNil(t, result)

	require.Len(t, result.InterventionExamples, 2)
	walking := result.InterventionExamples[0]
	assert.Equal(t, "d450", walking.Code)
	assert.Equal(t, 2, walking.PerformanceScore)
	assert.Equal(t, []string{"워커 제공"}, walking.Examples.Environmental)
	assert.Equal(t, []string{"보행 훈련"}, walking.Examples.Task)
	assert.Equal(t, []string{}, walking.Examples.Personal)

	unknown := result.InterventionExamples[1]
	assert.Equal(t, "d999", unknown.Code)
	assert.Equal(t, InterventionSet{Environmental: []string{}, Task: []string{}, Personal: []string{}}, unknown.Examples)
}

func TestAnalyzeWithoutLookup(t *testing.T) {
	result := Analyze([]ScoreEntry{{Code: "d450", PerformanceScore: 4, CapacityScore: 4}}, nil)
	require.NotNil(t, result)
	assert.Empty(t, result.InterventionExamples)
}

func TestAnalyzeIncludesDomains(t *testing.T) {
	result := Analyze([]ScoreEntry{
		{Code: "d450", PerformanceScore: 3, CapacityScore: 1},
		{Code: "b130", PerformanceScore: 2, CapacityScore: 2},
	}, nil)
	require.NotNil(t, result)
	require.Len(t, result.Domains, 2)
	assert.Equal(t, "b", result.Domains[0].Domain)
	assert.Equal(t, "d", result.Domains[1].Domain)
}
