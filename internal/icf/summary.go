package icf

// Domain letters in display order.
var domainOrder = []string{"b", "s", "d", "e"}

var domainTitles = map[string]string{
	"b": "신체 기능",
	"s": "신체 구조",
	"d": "활동 및 참여",
	"e": "환경 요인",
}

// DomainSummary aggregates the scores recorded for one ICF domain.
type DomainSummary struct {
	Domain             string  `json:"domain"`
	Title              string  `json:"title"`
	Count              int     `json:"count"`
	AveragePerformance float64 `json:"averagePerformance"`
	AverageCapacity    float64 `json:"averageCapacity"`
	Status             string  `json:"status"`
}

// ScoreLabel describes a qualifier value, or a mean of qualifier values.
func ScoreLabel(score float64) string {
	switch {
	case score <= 1:
		return "양호"
	case score <= 2:
		return "보통"
	case score <= 3:
		return "주의"
	default:
		return "심각"
	}
}

// SummarizeDomains groups scores by the domain letter of their code. Domains
// without scores and codes outside b, s, d, e are left out.
func SummarizeDomains(scores []ScoreEntry) []DomainSummary {
	type totals struct {
		count, performance, capacity int
	}
	byDomain := map[string]*totals{}

	for _, score := range scores {
		if score.Code == "" {
			continue
		}
		domain := score.Code[:1]
		if _, ok := domainTitles[domain]; !ok {
			continue
		}
		t, ok := byDomain[domain]
		if !ok {
			t = &totals{}
			byDomain[domain] = t
		}
		t.count++
		t.performance += score.PerformanceScore
		t.capacity += score.CapacityScore
	}

	summaries := []DomainSummary{}
	for _, domain := range domainOrder {
		t, ok := byDomain[domain]
		if !ok {
			continue
		}
		perf := float64(t.performance) / float64(t.count)
		capacity := float64(t.capacity) / float64(t.count)
		summaries = append(summaries, DomainSummary{
			Domain:             domain,
			Title:              domainTitles[domain],
			Count:              t.count,
			AveragePerformance: perf,
			AverageCapacity:    capacity,
			Status:             ScoreLabel((perf + capacity) / 2),
		})
	}
	return summaries
}
