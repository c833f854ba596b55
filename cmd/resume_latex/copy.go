package main

import (
	"fmt"

	"github.com/jonathan/resume-latex/internal/export"
	"github.com/spf13/cobra"
)

type copyOptions struct {
	*rootOptions
	template  string
	fromDraft bool
}

func newCopyCmd(root *rootOptions) *cobra.Command {
	opts := &copyOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "copy [resume file]",
		Short: "Render a resume draft and copy the LaTeX to the clipboard",
		Long: `Renders a resume draft and places the document on the system clipboard.

When no system clipboard is available the document is sent to the terminal with an OSC 52 escape sequence.`,
		Args: cobra.MaximumNArgs(1),
		RunE: opts.run,
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Path to a text/template LaTeX layout (default: built-in layout)")
	cmd.Flags().BoolVar(&opts.fromDraft, "draft", false, "Copy the saved draft instead of an input file")

	return cmd
}

func (o *copyOptions) run(cmd *cobra.Command, args []string) error {
	cfg, err := o.settings()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = o.template
	}

	if o.fromDraft == (len(args) == 1) {
		return fmt.Errorf("provide either a resume file or --draft")
	}

	var latex string
	if o.fromDraft {
		draft := &renderOptions{rootOptions: o.rootOptions}
		results, err := draft.renderDraft(cmd, cfg)
		if err != nil {
			return err
		}
		latex = results[0].latex
	} else {
		data, err := readResume(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		latex, err = renderLaTeX(*data, cfg.Template)
		if err != nil {
			return err
		}
	}

	if !export.CopyToClipboard(cmd.Context(), latex) {
		return fmt.Errorf("could not copy to clipboard; use 'resume_latex render --stdout' instead")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Copied %d bytes of LaTeX to the clipboard\n", len(latex))
	return nil
}
