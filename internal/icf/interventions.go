package icf

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
)

const (
	maxExamplesPerCategory = 6
	maxActivityExamples    = 3
)

//go:embed data/activities.json
var activitiesJSON []byte

// InterventionSet groups intervention examples by the factor they target.
type InterventionSet struct {
	Environmental []string `json:"environmental"`
	Task          []string `json:"task"`
	Personal      []string `json:"personal"`
}

// InterventionLookup supplies intervention examples for an ICF code.
type InterventionLookup interface {
	Examples(code string) InterventionSet
}

// Keywords used to sort uncategorized activity examples into factors. An
// example may land in more than one category or in none.
var (
	environmentalTerms = []string{"환경", "보조", "설치", "제공", "공간", "조명"}
	taskTerms          = []string{"과제", "훈련", "연습", "활동", "수행", "목표"}
	personalTerms      = []string{"향상", "증진", "개발", "동기", "습관", "인식"}
)

var baseInterventions = map[string]InterventionSet{
	"d440": {
		Environmental: []string{"손잡이가 굵은 식사 도구 및 필기구 제공", "작업대 높이 조정 및 미끄럼 방지 매트 사용"},
		Task:          []string{"페그보드, 구슬 끼우기 등 소근육 과제 단계적 제공", "종이접기, 가위질 등 일상 관련 양손 활동"},
		Personal:      []string{"손가락 분리 움직임 및 쥐기 기능 향상", "성공 경험을 통한 참여 동기 증진"},
	},
	"b760": {
		Environmental: []string{"시각적 단서가 있는 작업 환경 제공", "방해 자극이 적은 치료 공간 구성"},
		Task:          []string{"눈-손 협응 과제 난이도 조절", "목표 지향적 뻗기 및 잡기 훈련"},
		Personal:      []string{"수의적 움직임 조절 능력 향상", "자기 신체 인식 증진"},
	},
	"d430": {
		Environmental: []string{"운반용 카트 및 보조기구 제공", "자주 쓰는 물건을 허리 높이에 배치"},
		Task:          []string{"무게를 단계적으로 늘리는 들어올리기 훈련", "안전한 운반 자세 연습"},
		Personal:      []string{"상지 및 체간 근력 향상", "신체 역학 인식 증진"},
	},
	"d445": {
		Environmental: []string{"리처 등 상지 보조도구 제공", "팔 지지대 설치"},
		Task:          []string{"양측 상지 협응 과제 수행", "게임 콘텐츠를 활용한 상지 움직임 과제"},
		Personal:      []string{"상지 관절 가동 범위 향상", "환측 상지 사용 습관 형성"},
	},
	"d450": {
		Environmental: []string{"보행 보조기구(워커, 지팡이) 제공", "복도 및 화장실 안전바 설치"},
		Task:          []string{"평지에서 계단까지 단계적 보행 훈련", "실제 생활 환경에서의 보행 연습"},
		Personal:      []string{"하지 근력 및 균형 능력 향상", "낙상에 대한 두려움 감소 및 자신감 증진"},
	},
	"d455": {
		Environmental: []string{"이동 경로의 장애물 제거", "휠체어 등 이동 보조기구 제공"},
		Task:          []string{"계단 오르내리기 및 자세 전환 훈련", "거리와 속도를 조절한 이동 과제"},
		Personal:      []string{"심폐 지구력 향상", "독립적 이동에 대한 동기 증진"},
	},
	"d460": {
		Environmental: []string{"대중교통 및 지역사회 시설 접근성 정보 제공", "외출 시 보호자 동행 지원"},
		Task:          []string{"가까운 장소부터 단계적 외출 연습", "목적지까지 경로 계획 과제"},
		Personal:      []string{"지역사회 참여에 대한 자신감 향상", "외출 습관 형성"},
	},
	"d510": {
		Environmental: []string{"욕실 안전바 및 샤워 의자 설치", "미끄럼 방지 매트 제공"},
		Task:          []string{"씻기 순서 카드를 활용한 단계별 연습", "손씻기, 세수하기 등 부분 과제 훈련"},
		Personal:      []string{"자기 관리 습관 형성", "위생 관리에 대한 인식 증진"},
	},
	"d520": {
		Environmental: []string{"큰 단추, 벨크로 등 착탈이 쉬운 의복 제공", "앉아서 옷을 입을 수 있는 의자 배치"},
		Task:          []string{"상의, 하의 순서대로 옷 입기 연습", "단추 채우기 및 지퍼 올리기 과제"},
		Personal:      []string{"신체 도식 및 좌우 인식 향상", "스스로 옷 입기에 대한 동기 증진"},
	},
	"d550": {
		Environmental: []string{"변형 수저, 미끄럼 방지 그릇 제공", "식사 자세를 위한 의자 및 식탁 높이 조정"},
		Task:          []string{"젓가락으로 물체 옮기기 연습", "실제 식사 상황에서의 도구 사용 훈련"},
		Personal:      []string{"구강 운동 및 삼킴 기능 향상", "규칙적인 식사 습관 형성"},
	},
	"d710": {
		Environmental: []string{"가족 및 또래와의 상호작용 기회 제공", "안정적인 소그룹 환경 구성"},
		Task:          []string{"차례 지키기 등 구조화된 놀이 활동", "모델링을 활용한 인사 및 요청하기 연습"},
		Personal:      []string{"사회적 상호작용 기술 향상", "타인과의 소통에 대한 동기 증진"},
	},
	"d720": {
		Environmental: []string{"학교, 직장 등 사회적 맥락에서의 지원 제공", "사회 기술 집단 프로그램 연계"},
		Task:          []string{"역할극을 통한 갈등 해결 연습", "다인 대화 상황 과제"},
		Personal:      []string{"감정 조절 전략 개발", "사회적 규칙 인식 증진"},
	},
	"b130": {
		Environmental: []string{"흥미를 끄는 활동 자료 제공", "휴식 공간 및 일정 조정"},
		Task:          []string{"성공 가능한 난이도의 과제 제공", "자발적 참여를 유도하는 선택 활동"},
		Personal:      []string{"자기효능감 향상", "에너지 관리 습관 형성"},
	},
	"s730": {
		Environmental: []string{"보조기 및 스플린트 제공", "관절 보호를 위한 작업 환경 수정"},
		Task:          []string{"관절 가동 범위 유지 운동", "구조적 제한을 고려한 대체 동작 연습"},
		Personal:      []string{"관절 보호 원칙 인식 증진", "통증 관리 습관 형성"},
	},
	"e110": {
		Environmental: []string{"필요한 보조기구 평가 및 지원 제도 안내", "보조기구 보관 공간 마련"},
		Task:          []string{"보조기구 사용 방법 훈련", "일상 과제에서의 보조기구 적용 연습"},
		Personal:      []string{"보조기구 수용도 향상", "보조기구 관리 습관 형성"},
	},
}

// InterventionLibrary holds the static intervention examples. It is read-only
// after construction and safe for concurrent use.
type InterventionLibrary struct {
	base       map[string]InterventionSet
	activities map[string][]string
}

// DefaultInterventionLibrary returns the built-in library.
func DefaultInterventionLibrary() (*InterventionLibrary, error) {
	activities, err := decodeActivities(bytes.NewReader(activitiesJSON))
	if err != nil {
		return nil, err
	}
	return NewInterventionLibrary(baseInterventions, activities), nil
}

// NewInterventionLibrary builds a library from base examples (already split by
// factor) and activity examples (not yet split).
func NewInterventionLibrary(base map[string]InterventionSet, activities map[string][]string) *InterventionLibrary {
	lib := &InterventionLibrary{
		base:       map[string]InterventionSet{},
		activities: map[string][]string{},
	}
	for code, set := range base {
		lib.base[code] = set.clone()
	}
	for code, examples := range activities {
		lib.activities[code] = append([]string{}, examples...)
	}
	return lib
}

// LoadActivities decodes a JSON object mapping ICF codes to activity examples.
func LoadActivities(r io.Reader) (map[string][]string, error) {
	return decodeActivities(r)
}

func decodeActivities(r io.Reader) (map[string][]string, error) {
	activities := map[string][]string{}
	if err := json.NewDecoder(r).Decode(&activities); err != nil {
		return nil, fmt.Errorf("error decoding activity examples: %w", err)
	}
	return activities, nil
}

// WithActivities returns a copy of the library using a different set of
// activity examples. Base examples are kept.
func (l *InterventionLibrary) WithActivities(activities map[string][]string) *InterventionLibrary {
	return NewInterventionLibrary(l.base, activities)
}

// Activities returns the raw activity examples for a code.
func (l *InterventionLibrary) Activities(code string) []string {
	return append([]string{}, l.activities[code]...)
}

// Examples merges base and classified activity examples for a code.
func (l *InterventionLibrary) Examples(code string) InterventionSet {
	return l.merge(code, InterventionSet{})
}

// WithAI returns a lookup that also appends AI generated examples, keyed by code.
func (l *InterventionLibrary) WithAI(ai map[string]InterventionSet) InterventionLookup {
	return aiLookup{library: l, ai: ai}
}

type aiLookup struct {
	library *InterventionLibrary
	ai      map[string]InterventionSet
}

func (a aiLookup) Examples(code string) InterventionSet {
	return a.library.merge(code, a.ai[code])
}

func (l *InterventionLibrary) merge(code string, ai InterventionSet) InterventionSet {
	base := l.base[code]
	activities := l.activities[code]

	combine := func(base []string, terms []string, ai []string) []string {
		var all []string
		all = append(all, base...)
		all = append(all, firstN(filterByTerms(activities, terms), maxActivityExamples)...)
		all = append(all, ai...)
		return firstN(uniqueStrings(all), maxExamplesPerCategory)
	}

	return InterventionSet{
		Environmental: combine(base.Environmental, environmentalTerms, ai.Environmental),
		Task:          combine(base.Task, taskTerms, ai.Task),
		Personal:      combine(base.Personal, personalTerms, ai.Personal),
	}
}

func filterByTerms(examples []string, terms []string) []string {
	var filtered []string
	for _, example := range examples {
		if containsAny(example, terms) {
			filtered = append(filtered, example)
		}
	}
	return filtered
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

func (s InterventionSet) clone() InterventionSet {
	return InterventionSet{
		Environmental: append([]string{}, s.Environmental...),
		Task:          append([]string{}, s.Task...),
		Personal:      append([]string{}, s.Personal...),
	}
}

// Normalized replaces nil categories with empty ones.
func (s InterventionSet) Normalized() InterventionSet {
	if s.Environmental == nil {
		s.Environmental = []string{}
	}
	if s.Task == nil {
		s.Task = []string{}
	}
	if s.Personal == nil {
		s.Personal = []string{}
	}
	return s
}
