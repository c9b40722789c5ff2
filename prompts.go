package main

import (
	"fmt"
	"strconv"

	"github.com/chop-dbhi/icf-assist/internal/icf"
)

const matchSystemPrompt = `당신은 ICF(International Classification of Functioning, Disability and Health) 전문가입니다.
임상 언어를 분석하여 관련된 ICF 코드를 찾아주세요.

사용 가능한 ICF 코드 목록:
%s

응답 형식 (JSON):
{
  "matches": [
    {
      "code": "d450",
      "title": "걷기",
      "confidence": 0.9,
      "rationale": "입력하신 내용에서 '걷기', '보행' 관련 표현이 발견되어 d450 코드와 매칭됩니다."
    }
  ]
}

주의사항:
- confidence는 0.0 ~ 1.0 사이의 값입니다
- 관련성이 높은 코드만 포함하세요 (confidence > 0.5)
- rationale은 구체적이고 명확하게 작성하세요
- 가능한 한 많은 관련 코드를 찾아주세요 (최대 10개까지)
- 임상 언어에서 언급된 모든 기능, 활동, 참여 영역을 포괄적으로 분석하세요
- 하나의 문장에서 여러 ICF 코드가 관련될 수 있으므로, 모든 관련 코드를 포함하세요`

const matchUserPrompt = `다음 임상 언어를 분석하여 관련된 ICF 코드를 찾아주세요.
임상 언어에서 언급된 모든 기능, 활동, 참여 영역을 포괄적으로 분석하고, 관련된 모든 ICF 코드를 찾아주세요.
2개 이상의 코드가 관련될 수 있으므로, 가능한 한 많은 관련 코드를 포함해주세요.

임상 언어:
"%s"`

const scoreSystemPrompt = `당신은 ICF(International Classification of Functioning, Disability and Health) 평가 전문가입니다.
임상 언어를 분석하여 ICF 코드에 대한 수행력(Performance)과 능력(Capacity) 점수를 추천해주세요.

ICF Qualifier 체계:
- 0점: 문제 없음 (No problem) - 0-4% 정도의 문제
- 1점: 경미한 문제 (Mild problem) - 5-24% 정도의 문제
- 2점: 중간 정도 문제 (Moderate problem) - 25-49% 정도의 문제
- 3점: 심각한 문제 (Severe problem) - 50-95% 정도의 문제
- 4점: 완전한 문제 (Complete problem) - 96-100% 정도의 문제

중요한 구분:
1. 능력(Capacity): 표준 환경에서의 최대 수행 능력
   - 이상적인 환경에서 개인이 할 수 있는 최대 능력
   - 환경적 제약이 없는 상태에서의 기능적 능력
2. 수행력(Performance): 실제 환경에서의 수행 수준
   - 일상생활의 실제 환경에서 보이는 수행 수준
   - 환경적 제약, 사회적 요인 등을 고려한 실제 수행

분석 시 고려사항:
- 수행력이 능력보다 낮으면 환경적 제약이 있음을 의미
- 수행력이 능력과 같거나 높으면 환경이 촉진적이거나 능력이 실제로 높음을 의미

응답 형식 (JSON):
{
  "performanceScore": 2,
  "capacityScore": 1,
  "rationale": "임상 언어에서 발견된 구체적 근거를 간결하게 설명. 능력과 수행력의 차이와 그 이유를 명확히 설명"
}`

const scoreUserPrompt = `다음 임상 언어를 분석하여 ICF 코드 "%s (%s)"에 대한 점수를 추천해주세요:

임상 언어: "%s"

분석 지침:
1. 능력(Capacity) 점수: 표준 환경(이상적 환경, 보조 없음)에서의 최대 수행 능력을 평가
2. 수행력(Performance) 점수: 실제 환경(일상생활 환경)에서의 수행 수준을 평가
3. 능력과 수행력의 차이 분석:
   - 수행력 < 능력: 환경적 제약이 있음 (예: 보조기구 필요, 환경 복잡함)
   - 수행력 = 능력: 환경이 중립적이거나 능력이 실제 수행과 일치
   - 수행력 > 능력: 환경이 촉진적이거나 실제 환경에서 더 잘 수행

각 점수를 0-4점 척도로 추천하고, 능력과 수행력의 차이와 그 이유를 명확히 설명해주세요.`

const interventionSystemPrompt = `당신은 작업치료 및 재활 전문가입니다.
임상 언어와 평가 점수를 분석하여 ICF 코드에 대한 환경/과제/개인 요인 기반 중재 예시를 제시해주세요.

ICF 중재 분류:
1. 환경 요인 중재: 물리적 환경(보조기구, 환경 수정), 사회적 환경(지원, 격려), 제도적 환경(접근성, 정보)
2. 과제 요인 중재: 과제 난이도 조절, 실제 환경에서의 구체적 과제, 목적 지향적 과제
3. 개인 요인 중재: 능력 향상, 동기 부여, 습관 형성, 인지 향상

응답 형식 (JSON):
{
  "environmental": ["환경 요인 중재 예시 1", "환경 요인 중재 예시 2", ...],
  "task": ["과제 요인 중재 예시 1", "과제 요인 중재 예시 2", ...],
  "personal": ["개인 요인 중재 예시 1", "개인 요인 중재 예시 2", ...]
}

각 카테고리당 4-6개의 구체적이고 실용적인 예시를 제시하세요.`

const interventionUserPrompt = `다음 정보를 바탕으로 ICF 코드 "%s (%s)"에 대한 중재 예시를 제시해주세요:

임상 언어: "%s"
수행력 점수: %s점
능력 점수: %s점

임상 언어의 맥락과 점수를 고려하여 실제로 적용 가능한 구체적인 중재 예시를 제시해주세요.`

func matchPrompts(text string) (string, string) {
	return fmt.Sprintf(matchSystemPrompt, icf.PromptContext()), fmt.Sprintf(matchUserPrompt, text)
}

func scorePrompts(text, code, title string) (string, string) {
	return scoreSystemPrompt, fmt.Sprintf(scoreUserPrompt, code, codeTitle(code, title), text)
}

func interventionPrompts(text, code, title string, performance, capacity *int) (string, string) {
	return interventionSystemPrompt, fmt.Sprintf(interventionUserPrompt, code, codeTitle(code, title), text, scoreText(performance), scoreText(capacity))
}

// Falls back to the reference title when the caller sends none
func codeTitle(code, title string) string {
	if title != "" {
		return title
	}
	if info, ok := icf.LookupCode(code); ok {
		return info.Title
	}
	return title
}

func scoreText(score *int) string {
	if score == nil {
		return "미입력"
	}
	return strconv.Itoa(*score)
}
