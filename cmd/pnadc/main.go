// Package main provides the CLI entry point for pnadc-go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ibgedata/pnadc-go/pkg/pnadc"
	"github.com/ibgedata/pnadc-go/pkg/pnadc/fwf"
	"github.com/ibgedata/pnadc-go/pkg/pnadc/output"
)

var (
	outputPath string
	format     string
	pretty     bool
	noLabels   bool
	skipRows   int
	limit      int
	encoding   string
	comment    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pnadc [microdata] [codebook]",
		Short: "Read PNAD Contínua survey microdata",
		Long: `pnadc-go parses a fixed-width PNAD Contínua microdata file using its
codebook spreadsheet and outputs the labeled dataset as JSON or CSV.`,
		Args: cobra.ExactArgs(2),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&format, "format", "json", "Output format: json, csv")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().BoolVar(&noLabels, "no-labels", false, "Keep raw coded values instead of codebook labels")
	rootCmd.Flags().IntVar(&skipRows, "skip-rows", 0, "Leading microdata lines to skip")
	rootCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of records to read (0 = all)")
	rootCmd.Flags().StringVar(&encoding, "encoding", "", "Microdata encoding: utf-8, latin-1, windows-1252")
	rootCmd.Flags().StringVar(&comment, "comment", "", "Prefix marking microdata lines to ignore")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	microdataPath := args[0]
	codebookPath := args[1]

	// Validate input files exist
	if _, err := os.Stat(microdataPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", microdataPath)
	}
	if _, err := os.Stat(codebookPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", codebookPath)
	}

	if format != "json" && format != "csv" {
		return fmt.Errorf("invalid format: %s (must be json or csv)", format)
	}

	applyLabels := !noLabels
	opts := pnadc.ReadOptions{
		ApplyLabels: &applyLabels,
		Parse: fwf.ParseOptions{
			SkipRows:      skipRows,
			Limit:         limit,
			Encoding:      encoding,
			CommentPrefix: comment,
		},
	}

	ds, err := pnadc.Read(microdataPath, codebookPath, opts)
	if err != nil {
		return fmt.Errorf("read failed: %w", err)
	}

	var data []byte
	switch format {
	case "csv":
		data, err = output.ToCSV(ds)
	default:
		data, err = output.ToJSON(ds, pretty)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(data))
	return nil
}
