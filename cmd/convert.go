/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/sarthak-egenome/bloodpdf-parser/pipeline"
	"github.com/sarthak-egenome/bloodpdf-parser/registry"
)

var CmdConvert = newConvertCommand()

func newConvertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a value between units, or into a parameter's canonical unit",
		ArgsUsage: "<value> <from> [to]",
		Flags: []cli.Flag{
			registryFlag(),
			unitsFlag(),
			&cli.StringFlag{
				Name:  "parameter",
				Usage: "parameter ID; converts into its canonical unit using its analyte factors",
			},
		},
		Action: convert,
	}
}

type conversion struct {
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	ParameterID string  `json:"parameter_id,omitempty"`
}

func convert(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args()
	parameterID := cmd.String("parameter")

	if (parameterID == "" && args.Len() != 3) || (parameterID != "" && args.Len() != 2) {
		return errConvertUsage
	}

	value, err := pipeline.ParseValue(pipeline.Text(args.Get(0)))
	if err != nil {
		return err
	}

	from := args.Get(1)

	reg, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	var out conversion

	if parameterID != "" {
		p, ok := reg.LookupByID(parameterID)
		if !ok {
			return fmt.Errorf("%w: %q", registry.ErrUnknownParameter, parameterID)
		}

		canonical, err := reg.ToCanonical(p, value, from)
		if err != nil {
			return err
		}

		out = conversion{Value: p.Round(canonical), Unit: p.CanonicalUnit, ParameterID: p.ID}
	} else {
		to := args.Get(2)

		converted, err := reg.Units().Convert(value, from, to)
		if err != nil {
			return err
		}

		out = conversion{Value: converted, Unit: to}
	}

	return writeJSON(cmd.Root().Writer, out)
}
