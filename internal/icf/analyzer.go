package icf

import (
	"fmt"
	"math"
	"strings"
)

// ScoreEntry holds the performance and capacity qualifiers (0-4) recorded for
// one ICF code. Values are not validated here.
type ScoreEntry struct {
	Code             string `json:"code"`
	Title            string `json:"title"`
	PerformanceScore int    `json:"performanceScore"`
	CapacityScore    int    `json:"capacityScore"`
}

// DifferenceRecord compares the two qualifiers of a score entry.
type DifferenceRecord struct {
	Code          string `json:"code"`
	Title         string `json:"title"`
	Performance   int    `json:"performance"`
	Capacity      int    `json:"capacity"`
	Difference    int    `json:"difference"`
	AbsDifference int    `json:"absDifference"`
}

// InterventionExample lists intervention ideas for a code that shows a problem.
type InterventionExample struct {
	Code             string          `json:"code"`
	Title            string          `json:"title"`
	PerformanceScore int             `json:"performanceScore"`
	CapacityScore    int             `json:"capacityScore"`
	Examples         InterventionSet `json:"examples"`
}

// AnalysisResult is the outcome of a performance/capacity comparison.
type AnalysisResult struct {
	Differences           []DifferenceRecord    `json:"differences"`
	Findings              []string              `json:"findings"`
	Recommendations       []string              `json:"recommendations"`
	LargeDifferenceItems  []DifferenceRecord    `json:"largeDifferenceItems"`
	PerformanceLowerItems []DifferenceRecord    `json:"performanceLowerItems"`
	CapacityLowerItems    []DifferenceRecord    `json:"capacityLowerItems"`
	HighScoreItems        []ScoreEntry          `json:"highScoreItems"`
	LowScoreItems         []ScoreEntry          `json:"lowScoreItems"`
	AvgDifference         float64               `json:"avgDifference"`
	InterventionExamples  []InterventionExample `json:"interventionExamples"`
	Domains               []DomainSummary       `json:"domains"`
}

const (
	largeDifferenceThreshold = 2
	avgDifferenceThreshold   = 0.5
	highScoreThreshold       = 3
	lowScoreThreshold        = 1
	problemScoreThreshold    = 2
)

// Analyze compares performance and capacity for each entry and produces the
// findings and recommendations in a fixed order. It returns nil when there
// are no scores. A nil lookup skips intervention examples.
func Analyze(scores []ScoreEntry, lookup InterventionLookup) *AnalysisResult {
	if len(scores) == 0 {
		return nil
	}

	result := AnalysisResult{
		Differences:           []DifferenceRecord{},
		Findings:              []string{},
		Recommendations:       []string{},
		LargeDifferenceItems:  []DifferenceRecord{},
		PerformanceLowerItems: []DifferenceRecord{},
		CapacityLowerItems:    []DifferenceRecord{},
		HighScoreItems:        []ScoreEntry{},
		LowScoreItems:         []ScoreEntry{},
		InterventionExamples:  []InterventionExample{},
	}

	sum := 0
	for _, score := range scores {
		diff := score.PerformanceScore - score.CapacityScore
		record := DifferenceRecord{
			Code:          score.Code,
			Title:         score.Title,
			Performance:   score.PerformanceScore,
			Capacity:      score.CapacityScore,
			Difference:    diff,
			AbsDifference: absInt(diff),
		}
		result.Differences = append(result.Differences, record)
		sum += diff

		// Categories are independent, a record may appear in several
		if record.AbsDifference >= largeDifferenceThreshold {
			result.LargeDifferenceItems = append(result.LargeDifferenceItems, record)
		}
		if diff < 0 {
			result.PerformanceLowerItems = append(result.PerformanceLowerItems, record)
		}
		if diff > 0 {
			result.CapacityLowerItems = append(result.CapacityLowerItems, record)
		}
	}
	result.AvgDifference = float64(sum) / float64(len(scores))

	add := func(finding, recommendation string) {
		result.Findings = append(result.Findings, finding)
		result.Recommendations = append(result.Recommendations, recommendation)
	}

	// Environmental constraints
	if n := len(result.PerformanceLowerItems); n > 0 {
		add(
			fmt.Sprintf("%d개 항목에서 수행력이 능력보다 낮게 나타났습니다.", n),
			fmt.Sprintf("환경적 제약이 있는 항목들(%s)에 대해 환경 수정 및 보조기구 활용을 고려해보세요.", recordCodes(result.PerformanceLowerItems)),
		)
	}

	// Intrinsic ability limitations
	if n := len(result.CapacityLowerItems); n > 0 {
		add(
			fmt.Sprintf("%d개 항목에서 능력 자체에 문제가 있습니다.", n),
			fmt.Sprintf("능력 향상을 위한 중재가 필요한 항목들(%s)에 대해 기능 훈련 및 치료적 접근을 권장합니다.", recordCodes(result.CapacityLowerItems)),
		)
	}

	if n := len(result.LargeDifferenceItems); n > 0 {
		add(
			fmt.Sprintf("%d개 항목에서 수행력과 능력 간 큰 차이(2점 이상)가 있습니다.", n),
			fmt.Sprintf("큰 차이를 보이는 항목들(%s)은 환경 요인 평가를 추가로 실시하여 저해요인과 촉진요인을 파악하는 것이 중요합니다.", recordCodes(result.LargeDifferenceItems)),
		)
	}

	// Overall tendency
	if math.Abs(result.AvgDifference) > avgDifferenceThreshold {
		if result.AvgDifference < 0 {
			add(
				"전반적으로 수행력이 능력보다 낮은 경향을 보입니다.",
				"환경적 지원 및 보조기구 활용을 통해 실제 수행력을 향상시킬 수 있습니다.",
			)
		} else {
			add(
				"전반적으로 능력이 수행력보다 낮은 경향을 보입니다.",
				"기능 향상을 위한 치료적 중재가 우선적으로 필요합니다.",
			)
		}
	} else {
		add(
			"수행력과 능력이 유사한 수준으로 나타났습니다.",
			"환경적 요인보다는 개인의 기능적 능력에 초점을 맞춘 중재가 적절합니다.",
		)
	}

	// Score distribution
	for _, score := range scores {
		if score.PerformanceScore >= highScoreThreshold || score.CapacityScore >= highScoreThreshold {
			result.HighScoreItems = append(result.HighScoreItems, score)
		}
		if score.PerformanceScore <= lowScoreThreshold && score.CapacityScore <= lowScoreThreshold {
			result.LowScoreItems = append(result.LowScoreItems, score)
		}
	}

	if n := len(result.HighScoreItems); n > 0 {
		add(
			fmt.Sprintf("%d개 항목에서 심각한 문제(3점 이상)가 확인되었습니다.", n),
			fmt.Sprintf("심각한 문제가 있는 항목들(%s)에 대해 즉각적인 중재 및 지원이 필요합니다.", scoreCodes(result.HighScoreItems)),
		)
	}

	if n := len(result.LowScoreItems); n > 0 {
		add(
			fmt.Sprintf("%d개 항목에서 문제가 거의 없거나 경미한 수준입니다.", n),
			fmt.Sprintf("양호한 항목들(%s)은 유지 및 예방적 접근을 통해 현재 수준을 보존하는 것이 중요합니다.", scoreCodes(result.LowScoreItems)),
		)
	}

	if lookup != nil {
		for _, score := range scores {
			if score.PerformanceScore < problemScoreThreshold && score.CapacityScore < problemScoreThreshold {
				continue
			}
			result.InterventionExamples = append(result.InterventionExamples, InterventionExample{
				Code:             score.Code,
				Title:            score.Title,
				PerformanceScore: score.PerformanceScore,
				CapacityScore:    score.CapacityScore,
				Examples:         lookup.Examples(score.Code).Normalized(),
			})
		}
	}

	result.Domains = SummarizeDomains(scores)

	return &result
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func recordCodes(records []DifferenceRecord) string {
	codes := make([]string, 0, len(records))
	for _, r := range records {
		codes = append(codes, r.Code)
	}
	return strings.Join(codes, ", ")
}

func scoreCodes(scores []ScoreEntry) string {
	codes := make([]string, 0, len(scores))
	for _, s := range scores {
		codes = append(codes, s.Code)
	}
	return strings.Join(codes, ", ")
}
