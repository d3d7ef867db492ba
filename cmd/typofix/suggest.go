package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/typofix/internal/suggest"
)

func suggestCommandDef() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Aliases:   []string{"s"},
		Usage:     "Rank candidate corrections for one mistyped name",
		ArgsUsage: "<query> [candidates...]",
		Description: `Scores each candidate against the query and prints the plausible
corrections, best first. Candidates come from the arguments, or from
stdin (one per line) when none are given.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "Admissibility mode: standard or export",
				Value:   string(suggest.ModeStandard),
			},
			&cli.Float64Flag{
				Name:  "min-score",
				Usage: "Minimum score for a suggestion",
			},
			&cli.BoolFlag{
				Name:  "adaptive",
				Usage: "Use the path threshold, stricter for short queries",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON",
			},
		},
		Action: suggestCommand,
	}
}

func suggestCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing query (usage: typofix suggest <query> [candidates...])")
	}
	query := c.Args().First()

	candidates := c.Args().Tail()
	if len(candidates) == 0 {
		var err error
		if candidates, err = readCandidates(os.Stdin); err != nil {
			return fmt.Errorf("failed to read candidates from stdin: %w", err)
		}
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no candidates given (pass them as arguments or on stdin)")
	}

	mode := suggest.Mode(c.String("mode"))
	if !mode.Valid() {
		return fmt.Errorf("unknown mode %q (use %q or %q)", c.String("mode"), suggest.ModeStandard, suggest.ModeExport)
	}
	if mode == suggest.ModeExport {
		pool := make([]string, 0, len(candidates))
		for _, cand := range candidates {
			if suggest.IsAdmissible(cand, query, suggest.ModeExport) {
				pool = append(pool, cand)
			}
		}
		candidates = pool
	}

	minScore := c.Float64("min-score")
	if c.Bool("adaptive") && !c.IsSet("min-score") {
		minScore = suggest.PathMinScore(query)
	}

	suggestions := suggest.Rank(query, candidates, minScore)

	if c.Bool("json") {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(struct {
			Query       string               `json:"query"`
			Suggestions []suggest.Suggestion `json:"suggestions"`
		}{Query: query, Suggestions: suggestions})
	}

	outcome := suggest.ToOutcome(query, suggestions, nil)
	if _, ok := outcome.(suggest.Valid); ok {
		fmt.Printf("no suggestions for %q\n", query)
		return nil
	}
	fmt.Printf("did you mean:\n")
	for _, line := range strings.Split(suggest.FormatMessage(outcome), "\n") {
		fmt.Printf("  %s\n", line)
	}
	return nil
}

// readCandidates reads one candidate per line, skipping blanks.
func readCandidates(r *os.File) ([]string, error) {
	var candidates []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			candidates = append(candidates, line)
		}
	}
	return candidates, scanner.Err()
}
