// Package main provides the CLI entry point for tablegrid.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/bennyboer/table-engine-sub001/pkg/table"
	"github.com/bennyboer/table-engine-sub001/pkg/table/xlsx"
)

var (
	outputPath string
	pretty     bool
	sheetName  string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tablegrid",
		Short: "Inspect and normalize spreadsheet grids",
		Long: `tablegrid loads .xlsx sheets into the table grid engine and
reports grid structure (dimensions, pixel extents, merged cells) as JSON.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				Level(level).
				With().Timestamp().Logger()
		},
	}

	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "", "Sheet name (default: first sheet)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	infoCmd := &cobra.Command{
		Use:   "info [input.xlsx]",
		Short: "Print a JSON summary of a sheet's grid structure",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
	infoCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	infoCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	normalizeCmd := &cobra.Command{
		Use:   "normalize [input.xlsx]",
		Short: "Load a sheet into the engine and write it back out",
		Args:  cobra.ExactArgs(1),
		RunE:  runNormalize,
	}
	normalizeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path (required)")
	_ = normalizeCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(infoCmd, normalizeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// gridInfo is the JSON summary emitted by the info command.
type gridInfo struct {
	Sheet         string   `json:"sheet"`
	Rows          int      `json:"rows"`
	Columns       int      `json:"columns"`
	Width         float64  `json:"width"`
	Height        float64  `json:"height"`
	CellCount     int      `json:"cell_count"`
	HiddenRows    []int    `json:"hidden_rows,omitempty"`
	HiddenColumns []int    `json:"hidden_columns,omitempty"`
	Merges        []string `json:"merges,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	model, err := xlsx.Load(inputPath, sheetName, xlsx.DefaultLoadOptions())
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	defer model.Cleanup()

	info := buildInfo(model)

	var jsonData []byte
	if pretty {
		jsonData, err = json.MarshalIndent(info, "", "  ")
	} else {
		jsonData, err = json.Marshal(info)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(jsonData))
	return nil
}

func buildInfo(model *table.CellModel) gridInfo {
	info := gridInfo{
		Sheet:   sheetName,
		Rows:    model.GetRowCount(),
		Columns: model.GetColumnCount(),
		Width:   model.GetWidth(),
		Height:  model.GetHeight(),
	}

	for r := 0; r < model.GetRowCount(); r++ {
		if model.IsRowHidden(r) {
			info.HiddenRows = append(info.HiddenRows, r)
		}
	}
	for c := 0; c < model.GetColumnCount(); c++ {
		if model.IsColumnHidden(c) {
			info.HiddenColumns = append(info.HiddenColumns, c)
		}
	}

	for _, cell := range model.GetCells(model.GetRange()) {
		info.CellCount++
		if cell.Range.IsSingle() {
			continue
		}
		start, err := excelize.CoordinatesToCellName(cell.Range.StartColumn+1, cell.Range.StartRow+1)
		if err != nil {
			continue
		}
		end, err := excelize.CoordinatesToCellName(cell.Range.EndColumn+1, cell.Range.EndRow+1)
		if err != nil {
			continue
		}
		info.Merges = append(info.Merges, fmt.Sprintf("%s:%s", start, end))
	}
	return info
}

func runNormalize(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	model, err := xlsx.Load(inputPath, sheetName, xlsx.DefaultLoadOptions())
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	defer model.Cleanup()

	log.Debug().
		Int("rows", model.GetRowCount()).
		Int("columns", model.GetColumnCount()).
		Msg("loaded grid")

	if err := xlsx.Save(model, outputPath, sheetName, xlsx.DefaultSaveOptions()); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	return nil
}
