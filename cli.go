package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chop-dbhi/icf-assist/internal/icf"
	"github.com/spf13/cobra"
)

func matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match [text]",
		Short: "Match clinical text to ICF codes",
		Long:  "Match clinical text to ICF codes. Text is read from the arguments, or from stdin when none are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			useAI, _ := cmd.Flags().GetBool("ai")

			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("error reading stdin: %w", err)
				}
				text = string(data)
			}

			if strings.TrimSpace(text) == "" {
				return errors.New("clinical text is required")
			}

			response := MatchResponse{Matches: icf.Match(text, keywordTable), Source: sourceKeyword}
			if useAI {
				response.Matches, response.Source = matchText(cmd.Context(), text)
			}

			return writeJSON(cmd.OutOrStdout(), response)
		},
	}
	cmd.Flags().Bool("ai", false, "try the LLM first, falling back to keyword matching")
	return cmd
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze performance and capacity scores",
		Long:  "Analyze a JSON array of score entries read from the file, or from stdin when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("error opening scores: %w", err)
				}
				defer f.Close()
				input = f
			}

			var scores []icf.ScoreEntry
			if err := json.NewDecoder(input).Decode(&scores); err != nil {
				return fmt.Errorf("error decoding scores: %w", err)
			}

			if err := validateScores(scores); err != nil {
				return err
			}

			result := icf.Analyze(scores, interventionLookup(nil))
			return writeJSON(cmd.OutOrStdout(), AnalysisResponse{Analysis: result})
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
