package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/chop-dbhi/icf-assist/internal/icf"
	"github.com/labstack/echo/v4"
)

const (
	minQualifier = 0
	maxQualifier = 4
)

func analysis(c echo.Context) error {

	// Obtains http request context
	ctx := c.Request().Context()

	var req AnalysisRequest
	if err := decodeBody(c.Request().Body, &req); err != nil {
		logger(ctx, err)
		return errorJSON(c, http.StatusBadRequest, msgInvalidBody)
	}

	if err := validateScores(req.Scores); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	result := icf.Analyze(req.Scores, interventionLookup(req.AIInterventions))

	sendWebLog(c, "ICF scores analyzed", map[string]string{"scoreCount": strconv.Itoa(len(req.Scores))})

	return c.JSON(http.StatusOK, AnalysisResponse{Analysis: result})
}

// The analyzer computes over any value, range checks belong here
func validateScores(scores []icf.ScoreEntry) error {
	for _, score := range scores {
		if score.Code == "" {
			return errors.New("ICF 코드가 필요합니다.")
		}
		if !validQualifier(score.PerformanceScore) || !validQualifier(score.CapacityScore) {
			return fmt.Errorf("%s: 점수는 %d-%d 범위여야 합니다.", score.Code, minQualifier, maxQualifier)
		}
	}
	return nil
}

func validQualifier(score int) bool {
	return score >= minQualifier && score <= maxQualifier
}

func interventionLookup(ai map[string]icf.InterventionSet) icf.InterventionLookup {
	if interventionLibrary == nil {
		return nil
	}
	if len(ai) > 0 {
		return interventionLibrary.WithAI(ai)
	}
	return interventionLibrary
}
