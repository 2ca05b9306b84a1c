// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cv-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cv-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the cv-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "cv-engine",
	Short: "Turn BibTeX bibliographies into formatted CV publication lists",
	Long: `cv-engine maintains a CV as structured JSON and builds its publications
section from BibTeX. An import parses the bibliography, groups entries by
category and year, formats each as an IEEE-style citation, highlights the
owner's and mentees' names, and merges the result into the CV document.

Subcommands cover the full lifecycle: new, import, validate, render,
export, and version.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cv-engine.yaml or ~/.config/cv-engine/config.yaml)")
	rootCmd.PersistentFlags().String("cv", "cv.json", "path to the CV JSON document")
	rootCmd.PersistentFlags().String("data-dir", "", "cache directory (default: .cv-engine)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cv-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cv-engine"))
		}
	}

	viper.SetEnvPrefix("CV_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// cvPath returns the CV document path from the persistent flag.
func cvPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("cv")
	if path == "" {
		path = "cv.json"
	}
	return path
}

// storeConfig builds the cache store settings from flags and config.
func storeConfig(cmd *cobra.Command) types.StoreConfig {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("store.data_dir")
	}
	return types.StoreConfig{DataDir: dataDir}
}

// styleConfig builds the citation style settings from flags and config.
func styleConfig(cmd *cobra.Command) types.StyleConfig {
	templateURL, _ := cmd.Flags().GetString("style-url")
	if templateURL == "" {
		templateURL = viper.GetString("style.template_url")
	}

	timeout := viper.GetDuration("style.timeout")
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	maxAuthors, _ := cmd.Flags().GetInt("max-authors")
	if maxAuthors == 0 {
		maxAuthors = viper.GetInt("style.max_authors")
	}

	return types.StyleConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: "cv-engine/" + version,
		},
		TemplateURL: templateURL,
		MaxRetries:  viper.GetInt("style.max_retries"),
		MaxAuthors:  maxAuthors,
	}
}

// engineConfig assembles the full stage configuration for a command.
func engineConfig(cmd *cobra.Command) types.PipelineConfig {
	return types.PipelineConfig{
		Style:  styleConfig(cmd),
		Store:  storeConfig(cmd),
		Render: renderConfig(cmd),
	}
}

// renderConfig builds the rendering settings from flags and config.
func renderConfig(cmd *cobra.Command) types.RenderConfig {
	theme, _ := cmd.Flags().GetString("theme")
	if theme == "" {
		theme = viper.GetString("render.theme")
	}
	color, _ := cmd.Flags().GetString("color")
	if color == "" {
		color = viper.GetString("render.color_primary")
	}
	pageSize, _ := cmd.Flags().GetString("page-size")
	if pageSize == "" {
		pageSize = viper.GetString("render.page_size")
	}
	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = viper.GetString("render.output_dir")
	}
	if outputDir == "" {
		outputDir = "output"
	}

	return types.RenderConfig{
		Theme:        theme,
		ColorPrimary: color,
		PageSize:     pageSize,
		OutputDir:    outputDir,
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
