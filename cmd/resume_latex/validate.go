package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/resume-latex/internal/observability"
	"github.com/jonathan/resume-latex/internal/store"
	"github.com/jonathan/resume-latex/internal/types"
	"github.com/spf13/cobra"
)

type validateOptions struct {
	*rootOptions
	export bool
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	opts := &validateOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a resume draft has every required field",
		Long: `Reports the required fields a resume draft is missing and any malformed email address.

With --export the file is an exported data file; it is checked against the export JSON Schema first.
Exits with status 1 when validation fails.`,
		Args: cobra.ExactArgs(1),
		RunE: opts.run,
	}

	cmd.Flags().BoolVar(&opts.export, "export", false, "Validate an exported data file instead of a draft")

	return cmd
}

func (o *validateOptions) run(cmd *cobra.Command, args []string) error {
	cfg, err := o.settings()
	if err != nil {
		return err
	}

	var data *types.ResumeData
	if o.export {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read export file: %w", err)
		}
		env, err := store.UnmarshalEnvelope(content)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation failed: %v\n", err)
			return err
		}
		data = &env.Data
	} else {
		data, err = readResume(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
	}

	verr := data.Validate()

	var fields *types.ValidationError
	if verr != nil && !errors.As(verr, &fields) {
		return fmt.Errorf("failed to validate resume: %w", verr)
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(fields)
	}

	if fields != nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation failed:")
		for _, fe := range fields.Errors {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("%d field(s) failed validation", len(fields.Errors))
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
	return nil
}
