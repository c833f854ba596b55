package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/jonathan/resume-latex/internal/config"
	"github.com/jonathan/resume-latex/internal/observability"
	"github.com/jonathan/resume-latex/internal/rendering"
	"github.com/jonathan/resume-latex/internal/store"
	"github.com/jonathan/resume-latex/internal/types"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "resume_latex",
		Short: "Render resume drafts to LaTeX",
		Long: `resume_latex turns structured resume drafts (JSON or YAML) into complete, compilable LaTeX documents.

It can also keep a saved draft in SQLite or PostgreSQL, export and import that draft, and serve the same operations over HTTP.

Configuration can be loaded from a JSON file using --config. Environment variables fill in anything the file leaves empty.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print detailed summaries")

	cmd.AddCommand(
		newRenderCmd(opts),
		newHighlightCmd(opts),
		newCopyCmd(opts),
		newValidateCmd(opts),
		newDraftCmd(opts),
		newDataCmd(opts),
		newServeCmd(opts),
	)

	return cmd
}

// settings layers the config file over the environment and built-in defaults.
func (o *rootOptions) settings() (config.Config, error) {
	env := config.FromEnv()

	var cfg config.Config
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		// A driver chosen in the file must not pick up the other driver's DSN
		if loaded.StoreDriver != "" && loaded.StoreDriver != env.StoreDriver {
			env.StoreDSN = ""
		}
		cfg = loaded.MergeWithDefaults(env)
	} else {
		cfg = env.MergeWithDefaults(config.Config{})
	}

	if o.verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// printerFor returns a verbose-mode printer, or nil when verbose output is off.
func printerFor(cfg config.Config, out io.Writer) *observability.Printer {
	if !cfg.Verbose {
		return nil
	}
	return observability.NewPrinter(out)
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	s, err := store.Open(ctx, cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open draft store: %w", err)
	}
	return s, nil
}

// readResume loads a draft from path, or from in when path is "-".
// Drafts on stdin are JSON when they start with '{' and YAML otherwise.
func readResume(in io.Reader, path string) (*types.ResumeData, error) {
	if path != "-" {
		return types.LoadResumeData(path)
	}

	content, err := io.ReadAll(io.LimitReader(in, types.MaxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read resume from stdin: %w", err)
	}
	format := types.FormatYAML
	if bytes.HasPrefix(bytes.TrimSpace(content), []byte("{")) {
		format = types.FormatJSON
	}
	data, err := types.ParseResumeData(content, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume from stdin: %w", err)
	}
	return data, nil
}

// renderLaTeX renders data with the template at templatePath, or the built-in layout when empty.
func renderLaTeX(data types.ResumeData, templatePath string) (string, error) {
	if templatePath == "" {
		return rendering.AssembleDocument(data), nil
	}
	latex, err := rendering.RenderTemplate(data, templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to render LaTeX: %w", err)
	}
	return latex, nil
}
