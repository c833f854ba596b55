package main

import (
	"fmt"
	"log"

	"github.com/jonathan/resume-latex/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

type serveOptions struct {
	*rootOptions
	port     int
	template string
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that renders resumes and manages the saved draft over REST endpoints.`,
		Args:  cobra.NoArgs,
		RunE:  opts.run,
	}

	cmd.Flags().IntVar(&opts.port, "port", 0, "Port to listen on (default: $PORT or 8080)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Path to a text/template LaTeX layout (default: built-in layout)")

	return cmd
}

func (o *serveOptions) run(cmd *cobra.Command, _ []string) error {
	undo, err := maxprocs.Set(maxprocs.Logger(log.Printf))
	if err != nil {
		log.Printf("failed to set GOMAXPROCS: %v", err)
	}
	defer undo()

	cfg, err := o.settings()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = o.port
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = o.template
	}

	s, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		Store:          s,
		TemplatePath:   cfg.Template,
		AllowedOrigins: cfg.AllowedOrigins,
		Registerer:     prometheus.DefaultRegisterer,
	})
	if err != nil {
		_ = s.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Printf("Using %s draft store", cfg.StoreDriver)
	return srv.Start()
}
