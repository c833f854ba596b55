package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-latex/internal/export"
	"github.com/spf13/cobra"
)

type highlightOptions struct {
	*rootOptions
	fromResume bool
	template   string
}

func newHighlightCmd(root *rootOptions) *cobra.Command {
	opts := &highlightOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "highlight <file>",
		Short: "Print LaTeX as syntax-highlighted HTML",
		Long: `Wraps LaTeX comments, commands, braces, inline math and optional arguments in classed <span> elements.

The input is a .tex file, or a resume draft when --resume is set. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: opts.run,
	}

	cmd.Flags().BoolVar(&opts.fromResume, "resume", false, "Treat the input as a resume draft and render it first")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Path to a text/template LaTeX layout (with --resume)")

	return cmd
}

func (o *highlightOptions) run(cmd *cobra.Command, args []string) error {
	var latex string

	if o.fromResume {
		cfg, err := o.settings()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("template") {
			cfg.Template = o.template
		}

		data, err := readResume(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		latex, err = renderLaTeX(*data, cfg.Template)
		if err != nil {
			return err
		}
	} else {
		content, err := readLaTeX(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		latex = content
	}

	if _, err := fmt.Fprint(cmd.OutOrStdout(), export.HighlightSyntax(latex)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func readLaTeX(in io.Reader, path string) (string, error) {
	if path == "-" {
		content, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read LaTeX from stdin: %w", err)
		}
		return string(content), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read LaTeX file: %w", err)
	}
	return string(content), nil
}
