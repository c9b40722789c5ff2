package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	maxBatchCodes = 30

	msgCodesRequired = "ICF 코드 목록이 필요합니다."
)

var (
	batchConcurrency int = defaultBatchConcurrency
)

func scoreRecommendation(c echo.Context) error {

	// Obtains http request context
	ctx := c.Request().Context()

	var req ScoreRequest
	if err := decodeBody(c.Request().Body, &req); err != nil {
		logger(ctx, err)
		return errorJSON(c, http.StatusBadRequest, msgInvalidBody)
	}

	if strings.TrimSpace(req.ClinicalText) == "" || req.ICFCode == "" {
		return errorJSON(c, http.StatusBadRequest, msgCodeRequired)
	}

	if llm == nil {
		return errorJSON(c, http.StatusInternalServerError, errNoAPIKey.Error())
	}

	recommendation, err := llm.recommendScore(ctx, req.ClinicalText, req.ICFCode, req.ICFTitle)
	if err != nil {
		logger(ctx, fmt.Errorf("score recommendation failed (code: %s): %w", req.ICFCode, err))
		return errorJSON(c, errorStatus(err), err.Error())
	}

	sendWebLog(c, "ICF score recommended", map[string]string{"icfCode": req.ICFCode})

	return c.JSON(http.StatusOK, recommendation)
}

func batchScoreRecommendation(c echo.Context) error {

	// Obtains http request context
	ctx := c.Request().Context()

	var req BatchScoreRequest
	if err := decodeBody(c.Request().Body, &req); err != nil {
		logger(ctx, err)
		return errorJSON(c, http.StatusBadRequest, msgInvalidBody)
	}

	if strings.TrimSpace(req.ClinicalText) == "" {
		return errorJSON(c, http.StatusBadRequest, msgTextRequired)
	}

	if len(req.Codes) == 0 {
		return errorJSON(c, http.StatusBadRequest, msgCodesRequired)
	}

	if len(req.Codes) > maxBatchCodes {
		return errorJSON(c, http.StatusBadRequest, fmt.Sprintf("한 번에 최대 %d개 코드까지 요청할 수 있습니다.", maxBatchCodes))
	}

	for _, code := range req.Codes {
		if code.ICFCode == "" {
			return errorJSON(c, http.StatusBadRequest, msgCodeRequired)
		}
	}

	if llm == nil {
		return errorJSON(c, http.StatusInternalServerError, errNoAPIKey.Error())
	}

	results := scoreAll(ctx, llm, req.ClinicalText, req.Codes, batchConcurrency)

	sendWebLog(c, "ICF scores recommended", map[string]string{"codeCount": strconv.Itoa(len(req.Codes))})

	return c.JSON(http.StatusOK, BatchScoreResponse{Results: results})
}

func interventionRecommendation(c echo.Context) error {

	// Obtains http request context
	ctx := c.Request().Context()

	var req InterventionRequest
	if err := decodeBody(c.Request().Body, &req); err != nil {
		logger(ctx, err)
		return errorJSON(c, http.StatusBadRequest, msgInvalidBody)
	}

	if strings.TrimSpace(req.ClinicalText) == "" || req.ICFCode == "" {
		return errorJSON(c, http.StatusBadRequest, msgCodeRequired)
	}

	if llm == nil {
		return errorJSON(c, http.StatusInternalServerError, errNoAPIKey.Error())
	}

	interventions, err := llm.recommendInterventions(ctx, req.ClinicalText, req.ICFCode, req.ICFTitle, req.PerformanceScore, req.CapacityScore)
	if err != nil {
		logger(ctx, fmt.Errorf("intervention recommendation failed (code: %s): %w", req.ICFCode, err))
		return errorJSON(c, errorStatus(err), err.Error())
	}

	sendWebLog(c, "Interventions recommended", map[string]string{"icfCode": req.ICFCode})

	return c.JSON(http.StatusOK, interventions)
}
