package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jonathan/resume-latex/internal/config"
	"github.com/jonathan/resume-latex/internal/export"
	"github.com/jonathan/resume-latex/internal/observability"
	"github.com/jonathan/resume-latex/internal/rendering"
	"github.com/jonathan/resume-latex/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type renderOptions struct {
	*rootOptions
	outDir    string
	toStdout  bool
	template  string
	fileName  string
	fromDraft bool
	highlight bool
}

// rendered is one finished document, kept in input order.
type rendered struct {
	source   string
	data     *types.ResumeData
	latex    string
	duration time.Duration
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "render [resume files...]",
		Short: "Render resume drafts to LaTeX",
		Long: `Renders one or more JSON or YAML resume drafts to complete LaTeX documents.

Each document is written to <out>/<name>.tex, where <name> is derived from the full name unless --name is given.
Use "-" to read a draft from stdin, or --draft to render the saved draft. Inputs are rendered concurrently.`,
		RunE: opts.run,
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Directory for generated .tex files (default: current directory)")
	cmd.Flags().BoolVar(&opts.toStdout, "stdout", false, "Print the document instead of writing a file")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Path to a text/template LaTeX layout (default: built-in layout)")
	cmd.Flags().StringVarP(&opts.fileName, "name", "n", "", "Output base name, without extension (single input only)")
	cmd.Flags().BoolVar(&opts.fromDraft, "draft", false, "Render the saved draft instead of input files")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "Also produce syntax-highlighted HTML of the document")

	return cmd
}

func (o *renderOptions) run(cmd *cobra.Command, args []string) error {
	cfg, err := o.settings()
	if err != nil {
		return err
	}

	// CLI overrides (only when the flag was explicitly set)
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = o.outDir
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = o.template
	}
	if cmd.Flags().Changed("name") {
		cfg.FileName = o.fileName
	}

	switch {
	case o.fromDraft && len(args) > 0:
		return fmt.Errorf("--draft cannot be combined with input files")
	case !o.fromDraft && len(args) == 0:
		return fmt.Errorf("at least one resume file is required (or use --draft)")
	case o.toStdout && len(args) > 1:
		return fmt.Errorf("--stdout accepts a single input")
	case cmd.Flags().Changed("name") && len(args) > 1:
		return fmt.Errorf("--name accepts a single input")
	}

	var results []rendered
	if o.fromDraft {
		results, err = o.renderDraft(cmd, cfg)
	} else {
		results, err = o.renderFiles(cmd, args, cfg.Template)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := printerFor(cfg, cmd.ErrOrStderr())

	if o.toStdout {
		r := results[0]
		doc := r.latex
		if o.highlight {
			doc = export.HighlightSyntax(r.latex)
		}
		if _, err := fmt.Fprint(out, doc); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if printer != nil {
			printer.PrintRenderSummary(r.data, observability.RenderResult{Source: r.source, Bytes: len(r.latex), Duration: r.duration})
		}
		return nil
	}

	dir := cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	used := make(map[string]int, len(results))
	for _, r := range results {
		base := cfg.FileName
		if base == "" {
			base = export.DeriveBaseName(r.data.PersonalInfo.FullName)
		}
		// Two inputs with the same name must not overwrite each other
		used[base]++
		if n := used[base]; n > 1 {
			base = fmt.Sprintf("%s-%d", base, n)
		}

		path, err := export.DownloadFile(dir, r.latex, base)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", base, err)
		}

		if o.highlight {
			htmlPath := filepath.Join(dir, base+".html")
			if err := os.WriteFile(htmlPath, []byte(export.HighlightSyntax(r.latex)), 0644); err != nil {
				return fmt.Errorf("failed to write highlighted output: %w", err)
			}
		}

		if printer != nil {
			printer.PrintRenderSummary(r.data, observability.RenderResult{
				Source: r.source, Output: path, Bytes: len(r.latex), Duration: r.duration,
			})
			continue
		}
		_, _ = fmt.Fprintf(out, "Rendered %s -> %s (%s)\n", r.source, path, rendering.DescribeFragments(*r.data))
	}

	return nil
}

// renderFiles loads and renders every input concurrently, returning results in argument order.
func (o *renderOptions) renderFiles(cmd *cobra.Command, paths []string, templatePath string) ([]rendered, error) {
	stdinUsed := 0
	for _, p := range paths {
		if p == "-" {
			stdinUsed++
		}
	}
	if stdinUsed > 1 {
		return nil, fmt.Errorf("stdin (-) can only be read once")
	}

	results := make([]rendered, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			data, err := readResume(cmd.InOrStdin(), path)
			if err != nil {
				return err
			}
			latex, err := renderLaTeX(*data, templatePath)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			source := path
			if path == "-" {
				source = "stdin"
			}
			results[i] = rendered{source: source, data: data, latex: latex, duration: time.Since(start)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (o *renderOptions) renderDraft(cmd *cobra.Command, cfg config.Config) ([]rendered, error) {
	ctx := cmd.Context()

	s, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	data, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("no saved draft; run 'resume_latex draft save' first")
	}

	start := time.Now()
	latex, err := renderLaTeX(*data, cfg.Template)
	if err != nil {
		return nil, err
	}
	return []rendered{{source: "saved draft", data: data, latex: latex, duration: time.Since(start)}}, nil
}
