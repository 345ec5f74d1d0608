/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/sarthak-egenome/bloodpdf-parser/matcher"
	"github.com/sarthak-egenome/bloodpdf-parser/registry"
	"github.com/sarthak-egenome/bloodpdf-parser/units"
)

const (
	registryEnvVar   = "BLOODPDF_REGISTRY"
	unitsEnvVar      = "BLOODPDF_UNITS"
	strictnessEnvVar = "BLOODPDF_STRICTNESS"
)

func unitsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "units",
		Sources: cli.EnvVars(unitsEnvVar),
		Usage:   "unit table YAML file (defaults to the bundled table)",
	}
}

func registryFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "registry",
		Sources: cli.EnvVars(registryEnvVar),
		Usage:   "parameter registry YAML file (defaults to the bundled registry)",
	}
}

func strictnessFlag() cli.Flag {
	return &cli.IntFlag{
		Name:      "strictness",
		Sources:   cli.EnvVars(strictnessEnvVar),
		Value:     int(matcher.StrictnessDefault),
		Usage:     "fuzzy match strictness: 0 (loose), 1 (default) or 2 (strict)",
		Validator: validateStrictness,
	}
}

func validateStrictness(v int) error {
	if !matcher.Strictness(v).Valid() {
		return fmt.Errorf("%w, got %d", errInvalidStrictness, v)
	}

	return nil
}

func loadUnits(cmd *cli.Command) (*units.Table, error) {
	path := cmd.String("units")
	if path == "" {
		return units.DefaultTable()
	}

	table, err := units.LoadTableFile(path)
	if err != nil {
		return nil, err
	}

	registryLogger.Info("Loaded unit table", "path", path, "units", len(table.Definitions()))

	return table, nil
}

func loadRegistry(cmd *cli.Command) (*registry.Registry, error) {
	table, err := loadUnits(cmd)
	if err != nil {
		return nil, err
	}

	path := cmd.String("registry")
	if path == "" {
		return registry.Default(table)
	}

	reg, err := registry.LoadFile(path, table)
	if err != nil {
		return nil, err
	}

	registryLogger.Info("Loaded parameter registry", "path", path, "parameters", reg.Len())

	return reg, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
