package icf

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	baseConfidence      = 0.7
	largeListBonus      = 0.1
	largeListSize       = 5
	repeatBoost         = 0.2
	activityConfidence  = 0.8
	activityBoost       = 0.15
	difficultyBoost     = 0.1
	confidenceCeiling   = 0.95
	confidenceFloor     = 0.5
	handUseCode         = "d440"
	handUseTitle        = "손 사용하기"
	upperLimbStructCode = "s730"
)

var (
	// Crafting and manipulation activities imply hand use
	activityTerms = []string{"종이접기", "접기", "만들기", "조작", "작업"}

	// Expressions of difficulty or impairment
	difficultyTerms = []string{"어눌", "어려움", "장애", "문제", "제한", "불가능", "어색"}

	// Explicit structural or anatomical findings required to keep s730
	structureTerms = []string{"손상", "절단", "절제", "구조적", "해부학적"}
)

// CodeMatch is a single ICF code suggested for a piece of clinical text.
type CodeMatch struct {
	Code       string  `json:"code"`
	Title      string  `json:"title"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

func keywordRationale(keyword, code string) string {
	return fmt.Sprintf("입력하신 내용에서 \"%s\" 관련 표현이 발견되어 %s 코드와 매칭됩니다.", keyword, code)
}

const activityRationale = "종이접기, 만들기 등의 활동은 손 사용 능력과 관련이 있어 d440 코드와 매칭됩니다."

func raise(confidence, boost float64) float64 {
	return math.Min(confidenceCeiling, confidence+boost)
}

// Match finds ICF codes for free clinical text using the keyword table.
// Matching is substring based on the space-stripped, lowercased text. The
// result is sorted by descending confidence and never contains a code twice.
func Match(text string, table KeywordTable) []CodeMatch {
	lowered := lower(text)
	normalized := stripSpace(lowered)
	if normalized == "" {
		return []CodeMatch{}
	}

	matches := []CodeMatch{}
	index := map[string]int{}

	processEntry := func(entry KeywordEntry) {
		// Longer keywords are more specific so they are tried first
		keywords := append([]string{}, entry.Keywords...)
		sort.SliceStable(keywords, func(i, j int) bool {
			return utf16Len(keywords[i]) > utf16Len(keywords[j])
		})

		for _, keyword := range keywords {
			if !strings.Contains(normalized, normalize(keyword)) {
				continue
			}

			// Only raise the confidence of a code that already matched
			if i, ok := index[entry.Code]; ok {
				matches[i].Confidence = raise(matches[i].Confidence, repeatBoost)
				return
			}

			confidence := baseConfidence
			if len(entry.Keywords) > largeListSize {
				confidence += largeListBonus
			}

			index[entry.Code] = len(matches)
			matches = append(matches, CodeMatch{
				Code:       entry.Code,
				Title:      entry.Title,
				Confidence: confidence,
				Rationale:  keywordRationale(keyword, entry.Code),
			})
			return
		}
	}

	// Both passes always run. The split only decides which entries claim a
	// code first.
	for _, entry := range table {
		if !entry.lowPriority() {
			processEntry(entry)
		}
	}
	for _, entry := range table {
		if entry.lowPriority() {
			processEntry(entry)
		}
	}

	if containsAny(normalized, activityTerms) {
		if i, ok := index[handUseCode]; ok {
			matches[i].Confidence = raise(matches[i].Confidence, activityBoost)
		} else {
			index[handUseCode] = len(matches)
			matches = append(matches, CodeMatch{
				Code:       handUseCode,
				Title:      handUseTitle,
				Confidence: activityConfidence,
				Rationale:  activityRationale,
			})
		}
	}

	if containsAny(lowered, difficultyTerms) {
		for i := range matches {
			matches[i].Confidence = raise(matches[i].Confidence, difficultyBoost)
		}
	}

	hasStructure := containsAny(lowered, structureTerms)
	filtered := []CodeMatch{}
	for _, match := range matches {
		if match.Code == upperLimbStructCode && !hasStructure {
			continue
		}
		if match.Confidence < confidenceFloor {
			continue
		}
		filtered = append(filtered, match)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Confidence > filtered[j].Confidence
	})

	return filtered
}
