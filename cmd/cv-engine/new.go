// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cv-engine/internal/cv"
	"github.com/pdiddy/cv-engine/pkg/types"
)

var newCmd = &cobra.Command{
	Use:   "new [cv-file]",
	Short: "Create a skeleton CV document",
	Long: `New writes a starter CV with the sections the engine understands:
basics, mentees, and presentation meta. Fill in the owner's name before
importing a bibliography so name highlighting can find it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	path := cvPath(cmd)
	if len(args) > 0 {
		path = args[0]
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	doc := types.CVDocument{
		Basics: types.Basics{
			Name:    "Jane Doe",
			Label:   "Research Scientist",
			Email:   "jane.doe@example.edu",
			URL:     "https://example.edu/~jdoe",
			Summary: "One-paragraph professional summary.",
			Location: &types.Location{
				City:        "Ottawa",
				Region:      "ON",
				CountryCode: "CA",
			},
		},
		Mentees: []types.Mentee{
			{Name: "Alex Student", Style: "asterisk"},
		},
		Meta: &types.Meta{
			Theme:    "reorx",
			PageSize: "A4",
		},
	}
	cv.Touch(&doc, nil)

	if err := cv.Save(doc, path); err != nil {
		return err
	}
	fmt.Println("Created", path)
	return nil
}

func init() {
	newCmd.Flags().Bool("force", false, "overwrite an existing file")

	rootCmd.AddCommand(newCmd)
}
