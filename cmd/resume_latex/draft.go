package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-latex/internal/types"
	"github.com/spf13/cobra"
)

func newDraftCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage the saved resume draft",
		Long:  "Saves, prints and clears the single resume draft kept in the configured store (SQLite by default, PostgreSQL when DATABASE_URL is set).",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "save <resume file>",
			Short: "Save a resume draft, replacing the current one",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runDraftSave(cmd, root, args[0])
			},
		},
		&cobra.Command{
			Use:   "load",
			Short: "Print the saved draft as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runDraftLoad(cmd, root)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete the saved draft",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runDraftClear(cmd, root)
			},
		},
	)

	return cmd
}

func runDraftSave(cmd *cobra.Command, root *rootOptions, path string) error {
	cfg, err := root.settings()
	if err != nil {
		return err
	}

	data, err := readResume(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	withIDs := types.EnsureIDs(*data)

	ctx := cmd.Context()
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.Save(ctx, &withIDs); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	if p := printerFor(cfg, cmd.OutOrStdout()); p != nil {
		p.PrintResumeData(&withIDs)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved draft (%s store)\n", cfg.StoreDriver)
	return nil
}

func runDraftLoad(cmd *cobra.Command, root *rootOptions) error {
	cfg, err := root.settings()
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
		return fmt.Errorf("no saved draft")
	}

	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(content))
	return nil
}

func runDraftClear(cmd *cobra.Command, root *rootOptions) error {
	cfg, err := root.settings()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cleared saved draft")
	return nil
}
