package icf

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

// CodeInfo describes an ICF code for prompts and lookups.
type CodeInfo struct {
	Code        string   `json:"code"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Examples    []string `json:"examples"`
	Domain      string   `json:"domain"`
}

var codeInfos = []CodeInfo{
	{
		Code:        "d440",
		Title:       "손 사용하기",
		Description: "손과 손가락으로 물건을 집고, 쥐고, 조작하고, 놓는 정교한 동작",
		Keywords:    []string{"손기능", "손 사용", "손 조작", "fine motor", "hand use", "manual dexterity"},
		Examples:    []string{"작은 물건 집기 어려움", "가위질 가능", "쥐고 놓기 제한"},
		Domain:      "d",
	},
	{
		Code:        "d445",
		Title:       "손과 팔 사용하기",
		Description: "물건을 움직이거나 조작하기 위해 손과 팔을 사용하는 협응 동작",
		Keywords:    []string{"손과 팔", "상지 사용", "upper limb use", "reaching"},
		Examples:    []string{"팔 뻗어 물건 잡기 가능", "머리 위로 팔 들기 어려움"},
		Domain:      "d",
	},
	{
		Code:        "d430",
		Title:       "물건 들어올리기 및 운반하기",
		Description: "물건을 들어 올리거나 한 장소에서 다른 장소로 옮기는 능력",
		Keywords:    []string{"들어올리기", "운반", "물건 들기", "lifting", "carrying"},
		Examples:    []string{"가벼운 물건 운반 가능", "무거운 물건 들기 어려움"},
		Domain:      "d",
	},
	{
		Code:        "d450",
		Title:       "걷기",
		Description: "다양한 지면에서의 보행 능력",
		Keywords:    []string{"걷기", "보행", "걸음", "도보", "walking", "gait", "ambulation"},
		Examples:    []string{"평지에서 독립적으로 걷기 가능", "계단 오르기 시 어려움", "보행 보조기구 필요", "독립 보행 불가능"},
		Domain:      "d",
	},
	{
		Code:        "d455",
		Title:       "이동하기",
		Description: "다양한 이동 수단을 이용한 이동 능력",
		Keywords:    []string{"이동", "움직임", "mobility", "movement", "locomotion"},
		Examples:    []string{"독립적으로 이동 가능", "보조기구를 이용한 이동", "이동에 도움 필요"},
		Domain:      "d",
	},
	{
		Code:        "d460",
		Title:       "다양한 장소로 이동하기",
		Description: "집 밖으로 나가 다양한 장소로 이동하는 능력",
		Keywords:    []string{"외출", "나가기", "장소 이동", "going out", "community mobility"},
		Examples:    []string{"독립적으로 외출 가능", "대중교통 이용 가능", "외출 시 도움 필요"},
		Domain:      "d",
	},
	{
		Code:        "d510",
		Title:       "씻기",
		Description: "신체 청결을 위한 목욕 및 세면 능력",
		Keywords:    []string{"씻기", "목욕", "샤워", "세면", "washing", "bathing", "showering"},
		Examples:    []string{"독립적으로 목욕 가능", "샤워 시 도움 필요", "전적인 도움 필요"},
		Domain:      "d",
	},
	{
		Code:        "d520",
		Title:       "옷 입기",
		Description: "의복 착용 및 탈의 능력",
		Keywords:    []string{"옷 입기", "착의", "의복", "dressing", "clothing", "undressing"},
		Examples:    []string{"독립적으로 옷 입기 가능", "단추, 지퍼 조작 어려움", "전적인 도움 필요"},
		Domain:      "d",
	},
	{
		Code:        "d550",
		Title:       "먹기",
		Description: "음식 섭취 및 식사 능력",
		Keywords:    []string{"먹기", "식사", "섭취", "eating", "feeding", "swallowing"},
		Examples:    []string{"독립적으로 식사 가능", "식사 도구 사용 어려움", "경관 영양 필요"},
		Domain:      "d",
	},
	{
		Code:        "d710",
		Title:       "기본적 대인관계",
		Description: "가족 및 친밀한 관계에서의 상호작용",
		Keywords:    []string{"대인관계", "관계", "인간관계", "interpersonal", "social interaction"},
		Examples:    []string{"가족과의 관계 양호", "친구와의 상호작용 가능", "대인관계 형성 어려움"},
		Domain:      "d",
	},
	{
		Code:        "d720",
		Title:       "복잡한 대인관계",
		Description: "다양한 사회적 맥락에서의 관계 형성 및 유지",
		Keywords:    []string{"사회적 관계", "복잡한 관계", "social relationship", "complex interaction"},
		Examples:    []string{"직장에서의 관계 양호", "사회적 상호작용 어려움"},
		Domain:      "d",
	},
	{
		Code:        "b130",
		Title:       "에너지 및 동기",
		Description: "에너지 수준 및 동기 부여 능력",
		Keywords:    []string{"에너지", "동기", "피로", "energy", "motivation", "fatigue"},
		Examples:    []string{"에너지 수준 양호", "피로감 자주 호소", "동기 부여 어려움"},
		Domain:      "b",
	},
	{
		Code:        "b760",
		Title:       "손과 팔의 운동 조절",
		Description: "수의적 움직임의 조절 및 협응 기능",
		Keywords:    []string{"손 조절", "손 협응", "hand coordination", "motor control"},
		Examples:    []string{"손 움직임이 어눌함", "눈-손 협응 제한"},
		Domain:      "b",
	},
	{
		Code:        "s730",
		Title:       "상지 구조",
		Description: "팔, 손 등의 상지 구조",
		Keywords:    []string{"팔", "손", "상지", "upper limb", "arm", "hand"},
		Examples:    []string{"상지 구조 정상", "팔 움직임 제한", "손 기능 장애"},
		Domain:      "s",
	},
	{
		Code:        "e110",
		Title:       "제품 및 기술",
		Description: "일상생활 보조 제품 및 기술",
		Keywords:    []string{"보조기구", "도구", "제품", "assistive device", "equipment"},
		Examples:    []string{"보조기구 사용 중", "휠체어 필요", "보조 도구 없이 생활 가능"},
		Domain:      "e",
	},
}

var codeIndex = func() map[string]int {
	index := make(map[string]int, len(codeInfos))
	for i, info := range codeInfos {
		index[info.Code] = i
	}
	return index
}()

// Codes returns the ICF code reference list.
func Codes() []CodeInfo {
	codes := make([]CodeInfo, 0, len(codeInfos))
	for _, info := range codeInfos {
		codes = append(codes, info.clone())
	}
	return codes
}

// CodesByDomain returns the reference codes of one domain letter.
func CodesByDomain(domain string) []CodeInfo {
	var codes []CodeInfo
	for _, info := range codeInfos {
		if info.Domain == domain {
			codes = append(codes, info.clone())
		}
	}
	return codes
}

// LookupCode returns the reference information for a code.
func LookupCode(code string) (CodeInfo, bool) {
	i, ok := codeIndex[code]
	if !ok {
		return CodeInfo{}, false
	}
	return codeInfos[i].clone(), true
}

// PromptContext renders the reference list as prompt context, one code per block.
func PromptContext() string {
	blocks := make([]string, 0, len(codeInfos))
	for _, info := range codeInfos {
		blocks = append(blocks, fmt.Sprintf("- %s (%s): %s\n  키워드: %s\n  예시: %s",
			info.Code, info.Title, info.Description,
			strings.Join(info.Keywords, ", "),
			strings.Join(info.Examples, ", ")))
	}
	return strings.Join(blocks, "\n")
}

func (c CodeInfo) clone() CodeInfo {
	c.Keywords = append([]string{}, c.Keywords...)
	c.Examples = append([]string{}, c.Examples...)
	return c
}

//go:embed data/coresets.json
var coreSetsJSON []byte

// CoreSet is a curated subset of ICF codes for a health condition.
type CoreSet struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	HealthCondition string         `json:"healthCondition"`
	Version         string         `json:"version"`
	Domains         CoreSetDomains `json:"domains"`
	Items           []string       `json:"items"`
}

// CoreSetDomains lists codes per domain. Activities and participation is
// always present.
type CoreSetDomains struct {
	B []string `json:"b,omitempty"`
	S []string `json:"s,omitempty"`
	D []string `json:"d"`
	E []string `json:"e,omitempty"`
}

// CoreSets decodes the built-in Core Sets.
func CoreSets() ([]CoreSet, error) {
	var sets []CoreSet
	if err := json.NewDecoder(bytes.NewReader(coreSetsJSON)).Decode(&sets); err != nil {
		return nil, fmt.Errorf("error decoding core sets: %w", err)
	}
	return sets, nil
}

// Codes returns every code of the Core Set in b, s, d, e order.
func (c CoreSet) Codes() []string {
	var codes []string
	codes = append(codes, c.Domains.B...)
	codes = append(codes, c.Domains.S...)
	codes = append(codes, c.Domains.D...)
	codes = append(codes, c.Domains.E...)
	return codes
}
