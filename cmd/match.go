/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/sarthak-egenome/bloodpdf-parser/matcher"
	"github.com/sarthak-egenome/bloodpdf-parser/textnorm"
)

var CmdMatch = newMatchCommand()

func newMatchCommand() *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "Explain how labels match the registry",
		ArgsUsage: "<label>...",
		Flags: []cli.Flag{
			registryFlag(),
			unitsFlag(),
			strictnessFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Value: 5,
				Usage: "number of ranked fuzzy candidates to show (0 shows all)",
			},
		},
		Action: match,
	}
}

type matchExplanation struct {
	Label      string              `json:"label"`
	Normalized string              `json:"normalized"`
	Match      *matcher.Candidate  `json:"match"`
	Candidates []matcher.Candidate `json:"candidates"`
}

func match(ctx context.Context, cmd *cli.Command) error {
	labels := cmd.Args().Slice()
	if len(labels) == 0 {
		return errLabelRequired
	}

	reg, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	m := matcher.New(reg)
	strictness := matcher.Strictness(cmd.Int("strictness"))
	limit := cmd.Int("limit")

	out := make([]matchExplanation, 0, len(labels))

	for _, label := range labels {
		exp := matchExplanation{
			Label:      label,
			Normalized: textnorm.Normalize(label),
			Candidates: m.Rank(label),
		}

		if c, ok := m.Match(label, strictness); ok {
			exp.Match = &c
		}

		if limit > 0 && len(exp.Candidates) > limit {
			exp.Candidates = exp.Candidates[:limit]
		}

		out = append(out, exp)
	}

	return writeJSON(cmd.Root().Writer, out)
}
