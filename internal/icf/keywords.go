package icf

import (
	"encoding/json"
	"fmt"
	"io"
)

// KeywordEntry maps a set of clinical expressions to one ICF code. A nil
// Priority is treated the same as true.
type KeywordEntry struct {
	Code     string   `json:"code"`
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
	Priority *bool    `json:"priority,omitempty"`
}

// KeywordTable is evaluated in order. Order only changes the result when two
// entries share a code.
type KeywordTable []KeywordEntry

func (e KeywordEntry) lowPriority() bool {
	return e.Priority != nil && !*e.Priority
}

func flag(b bool) *bool {
	return &b
}

var defaultKeywordTable = KeywordTable{
	// Hand function
	{
		Code:     "d440",
		Title:    "손 사용하기",
		Keywords: []string{"손기능", "손 기능", "손 사용", "손 움직임", "손 조작", "손동작", "손의 기능", "fine motor", "hand function", "hand use", "manual dexterity"},
		Priority: flag(true),
	},
	{
		Code:     "b760",
		Title:    "손과 팔의 운동 조절",
		Keywords: []string{"손 조절", "손 운동", "손 협응", "손 조정", "어눌한 손", "손 움직임 조절", "hand control", "hand coordination", "motor control"},
		Priority: flag(true),
	},

	// Activities
	{Code: "d430", Title: "물건 들어올리기 및 운반하기", Keywords: []string{"들어올리기", "운반", "물건 들기", "lifting", "carrying"}},
	{Code: "d445", Title: "손과 팔 사용하기", Keywords: []string{"손과 팔", "상지 사용", "upper limb use"}},

	// Mobility
	{Code: "d450", Title: "걷기", Keywords: []string{"걷기", "보행", "걸음", "도보", "walking", "gait"}},
	{Code: "d455", Title: "이동하기", Keywords: []string{"이동", "움직임", "mobility", "movement"}},
	{Code: "d460", Title: "다양한 장소로 이동하기", Keywords: []string{"외출", "나가기", "장소 이동", "going out"}},

	// Self care
	{Code: "d510", Title: "씻기", Keywords: []string{"씻기", "목욕", "샤워", "세면", "washing", "bathing"}},
	{Code: "d520", Title: "옷 입기", Keywords: []string{"옷 입기", "착의", "의복", "dressing", "clothing"}},
	{Code: "d550", Title: "먹기", Keywords: []string{"먹기", "식사", "섭취", "eating", "feeding"}},

	// Interpersonal
	{Code: "d710", Title: "기본적 대인관계", Keywords: []string{"대인관계", "관계", "인간관계", "interpersonal"}},
	{Code: "d720", Title: "복잡한 대인관계", Keywords: []string{"사회적 관계", "복잡한 관계", "social relationship"}},

	// Body functions
	{Code: "b130", Title: "에너지 및 동기", Keywords: []string{"에너지", "동기", "피로", "energy", "motivation"}},

	// Body structures are only kept when the text names a structural problem
	{
		Code:     "s730",
		Title:    "상지 구조",
		Keywords: []string{"팔 구조", "손 구조", "상지 구조", "upper limb structure", "arm structure", "hand structure"},
		Priority: flag(false),
	},

	// Environmental factors
	{Code: "e110", Title: "제품 및 기술", Keywords: []string{"보조기구", "도구", "제품", "assistive device"}},
}

// DefaultKeywordTable returns a copy of the built-in keyword table.
func DefaultKeywordTable() KeywordTable {
	return defaultKeywordTable.Clone()
}

// Clone returns a deep copy of the table.
func (t KeywordTable) Clone() KeywordTable {
	clone := make(KeywordTable, 0, len(t))
	for _, entry := range t {
		e := entry
		e.Keywords = append([]string{}, entry.Keywords...)
		if entry.Priority != nil {
			e.Priority = flag(*entry.Priority)
		}
		clone = append(clone, e)
	}
	return clone
}

// LoadKeywordTable decodes a JSON array of keyword entries. Entry order is kept.
func LoadKeywordTable(r io.Reader) (KeywordTable, error) {
	var table KeywordTable
	if err := json.NewDecoder(r).Decode(&table); err != nil {
		return nil, fmt.Errorf("error decoding keyword table: %w", err)
	}

	for i, entry := range table {
		if err := entry.validate(); err != nil {
			return nil, fmt.Errorf("keyword table entry %d: %w", i, err)
		}
	}

	return table, nil
}

func (e KeywordEntry) validate() error {
	if e.Code == "" {
		return fmt.Errorf("code is required")
	}
	if e.Title == "" {
		return fmt.Errorf("title is required for %s", e.Code)
	}
	if len(e.Keywords) == 0 {
		return fmt.Errorf("at least one keyword is required for %s", e.Code)
	}
	for _, kw := range e.Keywords {
		if normalize(kw) == "" {
			return fmt.Errorf("blank keyword for %s", e.Code)
		}
	}
	return nil
}
