package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/chop-dbhi/icf-assist/internal/icf"
	"github.com/labstack/echo/v4"
)

var (
	appVersion string
)

const (
	msgInvalidBody  = "잘못된 요청 형식입니다."
	msgTextRequired = "임상 언어 텍스트가 필요합니다."
	msgCodeRequired = "임상 언어 텍스트와 ICF 코드가 필요합니다."
)

func services(c echo.Context) error {
	// Build basic service listing
	serviceResponse := ServiceResponse{
		Services: []Service{
			{
				Id:          "match",
				Title:       "Match ICF Codes",
				Description: "Maps clinical text to ICF codes, falling back to keyword matching",
				Method:      http.MethodPost,
				Path:        "/icf/match",
			},
			{
				Id:          "score-recommendation",
				Title:       "Recommend ICF Qualifiers",
				Description: "Suggests performance and capacity qualifiers for one ICF code",
				Method:      http.MethodPost,
				Path:        "/icf/score-recommendation",
				RequiresLLM: true,
			},
			{
				Id:          "score-recommendation-batch",
				Title:       "Recommend ICF Qualifiers (Batch)",
				Description: "Suggests performance and capacity qualifiers for several ICF codes",
				Method:      http.MethodPost,
				Path:        "/icf/score-recommendation/batch",
				RequiresLLM: true,
			},
			{
				Id:          "intervention-recommendation",
				Title:       "Recommend Interventions",
				Description: "Suggests environmental, task and personal interventions for one ICF code",
				Method:      http.MethodPost,
				Path:        "/icf/intervention-recommendation",
				RequiresLLM: true,
			},
			{
				Id:          "analysis",
				Title:       "Analyze Performance and Capacity",
				Description: "Compares performance and capacity qualifiers and lists findings",
				Method:      http.MethodPost,
				Path:        "/icf/analysis",
			},
		},
	}

	// Return response
	return c.JSON(http.StatusOK, serviceResponse)
}

func heartbeat(c echo.Context) error {
	// Heartbeat function to assess service status. Immediately return 200
	return c.NoContent(http.StatusOK)
}

func icfCodes(c echo.Context) error {
	// Optional domain letter filter
	if domain := c.QueryParam("domain"); domain != "" {
		codes := icf.CodesByDomain(domain)
		if codes == nil {
			codes = []icf.CodeInfo{}
		}
		return c.JSON(http.StatusOK, codes)
	}
	return c.JSON(http.StatusOK, icf.Codes())
}

func coreSets(c echo.Context) error {
	sets, err := icf.CoreSets()
	if err != nil {
		logger(c.Request().Context(), err)
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sets)
}

func decodeBody(body io.Reader, v any) error {
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("error decoding request body: %w", err)
	}
	return nil
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, ErrorResponse{Error: msg})
}
