/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sarthak-egenome/bloodpdf-parser/cmd"
)

func main() {
	app := &cli.Command{
		Name:  "bloodpdf-parser",
		Usage: "Normalize blood report lab entries to canonical parameters",
		Commands: []*cli.Command{
			cmd.CmdNormalize,
			cmd.CmdMatch,
			cmd.CmdConvert,
			cmd.CmdMigrate,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
