package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/chop-dbhi/icf-assist/internal/icf"
	"github.com/labstack/echo/v4"
)

const (
	sourceAI      = "ai"
	sourceKeyword = "keyword"
)

func icfMatch(c echo.Context) error {

	// Obtains http request context
	ctx := c.Request().Context()

	var req MatchRequest
	if err := decodeBody(c.Request().Body, &req); err != nil {
		logger(ctx, err)
		return errorJSON(c, http.StatusBadRequest, msgInvalidBody)
	}

	if strings.TrimSpace(req.ClinicalText) == "" {
		return errorJSON(c, http.StatusBadRequest, msgTextRequired)
	}

	matches, source := matchText(ctx, req.ClinicalText)

	sendWebLog(c, "ICF codes matched", map[string]string{
		"source":     source,
		"matchCount": strconv.Itoa(len(matches)),
	})

	return c.JSON(http.StatusOK, MatchResponse{Matches: matches, Source: source})
}

// LLM matching first, keyword matching when it fails or finds nothing
func matchText(ctx context.Context, text string) ([]icf.CodeMatch, string) {
	if llm != nil {
		matches, err := llm.matchCodes(ctx, text)
		if err != nil {
			logger(ctx, fmt.Errorf("LLM matching failed, using keyword matcher: %w", err))
		} else if len(matches) > 0 {
			return matches, sourceAI
		}
	}
	return icf.Match(text, keywordTable), sourceKeyword
}
