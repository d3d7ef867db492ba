package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/typofix/internal/checker"
	"github.com/standardbeagle/typofix/internal/vocab"
)

func vocabCommandDef() *cli.Command {
	return &cli.Command{
		Name:      "vocab",
		Usage:     "Analyze the workspace identifier vocabulary",
		ArgsUsage: "[paths...]",
		Description: `Collects every declared identifier and reports stem clusters
(morphological variants of one concept) and near-duplicate pairs:
names so similar that one of them is probably a typo that got defined.`,
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "near-threshold",
				Usage: "Jaro-Winkler similarity above which a pair is reported (overrides config)",
			},
			&cli.IntFlag{
				Name:  "min-length",
				Usage: "Minimum identifier length considered, in runes (overrides config)",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON",
			},
		},
		Action: vocabCommand,
	}
}

func vocabCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	if c.IsSet("near-threshold") {
		cfg.Vocab.NearThreshold = c.Float64("near-threshold")
	}
	if c.IsSet("min-length") {
		cfg.Vocab.MinLength = c.Int("min-length")
	}

	chk := checker.New(cfg)
	v, err := chk.Vocabulary(c.Context, c.Args().Slice())
	if err != nil {
		return err
	}

	summary := v.Analyze(vocab.DefaultStemmer(), cfg.Vocab.NearThreshold, cfg.Vocab.MinLength)

	if c.Bool("json") {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	}

	printVocabSummary(summary)
	return nil
}

func printVocabSummary(summary *vocab.Summary) {
	fmt.Printf("Vocabulary: %d distinct names\n", summary.TotalNames)

	if len(summary.Clusters) > 0 {
		fmt.Printf("\nStem clusters (%d):\n", len(summary.Clusters))
		for _, cluster := range summary.Clusters {
			names := strings.Join(cluster.Names, ", ")
			if cluster.Total > len(cluster.Names) {
				names += fmt.Sprintf(" (+%d more)", cluster.Total-len(cluster.Names))
			}
			fmt.Printf("  %-24s %s\n", cluster.Key, names)
		}
	}

	if len(summary.NearDuplicates) > 0 {
		fmt.Printf("\nLikely alternate spellings (%d):\n", len(summary.NearDuplicates))
		for _, dup := range summary.NearDuplicates {
			fmt.Printf("  %d%%  %s ~ %s (edit distance %d)\n",
				dup.Score.Percent(), dup.A, dup.B, dup.Distance)
		}
	} else {
		fmt.Printf("\nNo likely alternate spellings found\n")
	}
}
