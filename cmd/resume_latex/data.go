package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-latex/internal/export"
	"github.com/jonathan/resume-latex/internal/store"
	"github.com/jonathan/resume-latex/internal/types"
	"github.com/spf13/cobra"
)

type dataOptions struct {
	*rootOptions
	outDir   string
	toStdout bool
	now      func() time.Time
}

func newDataCmd(root *rootOptions) *cobra.Command {
	opts := &dataOptions{rootOptions: root, now: time.Now}

	cmd := &cobra.Command{
		Use:   "data",
		Short: "Export or import the saved draft as a versioned JSON file",
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the saved draft to resume-data-<date>.json",
		Args:  cobra.NoArgs,
		RunE:  opts.runExport,
	}
	exportCmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Directory for the export file (default: current directory)")
	exportCmd.Flags().BoolVar(&opts.toStdout, "stdout", false, "Print the export instead of writing a file")

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the saved draft with the contents of an export file",
		Long:  "Reads a file written by 'data export', checks it against the export JSON Schema and saves its data as the current draft.",
		Args:  cobra.ExactArgs(1),
		RunE:  opts.runImport,
	}

	cmd.AddCommand(exportCmd, importCmd)
	return cmd
}

func (o *dataOptions) runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := o.settings()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	data, err := s.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load draft: %w", err)
	}
	if data == nil {
		return fmt.Errorf("no saved draft to export")
	}

	now := o.now()
	content, err := store.MarshalEnvelope(*data, now)
	if err != nil {
		return err
	}

	if o.toStdout {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(content))
		return nil
	}

	dir := o.outDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, export.ExportFileName(now))
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported draft to %s\n", path)
	return nil
}

func (o *dataOptions) runImport(cmd *cobra.Command, args []string) error {
	cfg, err := o.settings()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	env, err := store.UnmarshalEnvelope(content)
	if err != nil {
		return err
	}
	data := types.EnsureIDs(env.Data)

	ctx := cmd.Context()
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.Save(ctx, &data); err != nil {
		return fmt.Errorf("failed to save imported draft: %w", err)
	}

	if p := printerFor(cfg, cmd.OutOrStdout()); p != nil {
		p.PrintResumeData(&data)
	}
	// version and timestamp are optional in an export file
	if env.Timestamp.IsZero() || env.Version == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Imported draft")
		return nil
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported draft exported at %s (version %s)\n",
		env.Timestamp.Format(time.RFC3339), env.Version)
	return nil
}
