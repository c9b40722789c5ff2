package main

import (
	"github.com/chop-dbhi/icf-assist/internal/icf"
)

/**************************
 ******** Services ********
 **************************/
type ServiceResponse struct {
	Services []Service `json:"services"`
}

type Service struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	RequiresLLM bool   `json:"requiresLLM"`
}

/**************************
 ******** Requests ********
 **************************/
type MatchRequest struct {
	ClinicalText string `json:"clinicalText"`
}

type ScoreRequest struct {
	ClinicalText string `json:"clinicalText"`
	ICFCode      string `json:"icfCode"`
	ICFTitle     string `json:"icfTitle"`
}

type CodeRef struct {
	ICFCode  string `json:"icfCode"`
	ICFTitle string `json:"icfTitle"`
}

type BatchScoreRequest struct {
	ClinicalText string    `json:"clinicalText"`
	Codes        []CodeRef `json:"codes"`
}

type InterventionRequest struct {
	ClinicalText     string `json:"clinicalText"`
	ICFCode          string `json:"icfCode"`
	ICFTitle         string `json:"icfTitle"`
	PerformanceScore *int   `json:"performanceScore"`
	CapacityScore    *int   `json:"capacityScore"`
}

type AnalysisRequest struct {
	Scores          []icf.ScoreEntry               `json:"scores"`
	AIInterventions map[string]icf.InterventionSet `json:"aiInterventions"`
}

/***************************
 ******** Responses ********
 ***************************/
type MatchResponse struct {
	Matches []icf.CodeMatch `json:"matches"`
	Source  string          `json:"source"`
}

type ScoreRecommendation struct {
	PerformanceScore int    `json:"performanceScore"`
	CapacityScore    int    `json:"capacityScore"`
	Rationale        string `json:"rationale"`
}

type BatchScoreResult struct {
	ICFCode  string `json:"icfCode"`
	ICFTitle string `json:"icfTitle"`
	*ScoreRecommendation
	Error string `json:"error,omitempty"`
}

type BatchScoreResponse struct {
	Results []BatchScoreResult `json:"results"`
}

type AnalysisResponse struct {
	Analysis *icf.AnalysisResult `json:"analysis"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

/********************************
 ********** App Config **********
 ********************************/

type Config struct {
	KeywordTableFile string    `json:"keywordTableFile"`
	ActivitiesFile   string    `json:"activitiesFile"`
	LLM              LLMConfig `json:"llm"`
}

type LLMConfig struct {
	RequestsPerMinute       int      `json:"requestsPerMinute"`
	Burst                   int      `json:"burst"`
	BatchConcurrency        int      `json:"batchConcurrency"`
	MatchTemperature        *float64 `json:"matchTemperature"`
	ScoreTemperature        *float64 `json:"scoreTemperature"`
	InterventionTemperature *float64 `json:"interventionTemperature"`
}
