// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cv-engine/internal/cv"
)

var validateCmd = &cobra.Command{
	Use:   "validate [cv-file]",
	Short: "Check a CV document against the JSON schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cvPath(cmd)
		if len(args) > 0 {
			path = args[0]
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading CV file: %w", err)
		}
		if err := cv.Validate(data); err != nil {
			return err
		}
		fmt.Printf("%s is valid\n", path)
		return nil
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the CV JSON schema",
	Run: func(cmd *cobra.Command, args []string) {
		os.Stdout.Write(cv.Schema())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
}
