package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-notes/internal/app"
	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/provider"
	"github.com/phrazzld/scry-notes/internal/service"
)

func newProvidersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the available providers and whether each is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.build(cmd)
			if err != nil {
				return err
			}
			infos := a.Notes.Providers(cmd.Context())
			if opts.output == outputJSON {
				return writeJSON(opts.out, infos)
			}
			return writeProvidersText(opts.out, infos)
		},
	}
}

func newSummarizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize [file]",
		Short: "Summarize a note",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, req, err := prepare(cmd, opts, args)
			if err != nil {
				return err
			}
			result, err := a.Notes.Summarize(cmd.Context(), opts.provider, req)
			if err != nil {
				return err
			}
			if opts.output == outputJSON {
				return writeJSON(opts.out, result)
			}
			return writeSummaryText(opts.out, result)
		},
	}
}

func newFlashcardsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "flashcards [file]",
		Short: "Build flashcards from a note, one per paragraph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, req, err := prepare(cmd, opts, args)
			if err != nil {
				return err
			}
			result, err := a.Notes.Flashcards(cmd.Context(), opts.provider, req)
			if err != nil {
				return err
			}
			if opts.output == outputJSON {
				return writeJSON(opts.out, result)
			}
			return writeFlashcardsText(opts.out, result)
		},
	}
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file]",
		Short: "Summarize a note and build its flashcards",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, req, err := prepare(cmd, opts, args)
			if err != nil {
				return err
			}
			analysis, err := a.Notes.Analyze(cmd.Context(), opts.provider, req)
			if err != nil {
				return err
			}
			if opts.output == outputJSON {
				return writeJSON(opts.out, analysis)
			}
			return writeAnalysisText(opts.out, analysis)
		},
	}
}

// prepare reads and validates the note before assembling the app, so bad
// input fails without touching configuration.
func prepare(cmd *cobra.Command, opts *options, args []string) (*app.App, *domain.AnalysisRequest, error) {
	text, err := readInput(opts.in, args)
	if err != nil {
		return nil, nil, err
	}
	req, err := domain.NewAnalysisRequest(text)
	if err != nil {
		return nil, nil, err
	}
	a, err := opts.build(cmd)
	if err != nil {
		return nil, nil, err
	}
	return a, req, nil
}

// readInput returns the note text from the file argument or stdin.
func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read note file: %w", err)
	}
	return string(b), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeProvidersText(w io.Writer, infos []provider.Info) error {
	var b strings.Builder
	for _, info := range infos {
		status := "not configured"
		if info.Configured {
			status = "configured"
		}
		marker := " "
		if info.Default {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %-13s %-15s %s (%s)\n", marker, info.Name, status, info.DisplayName, info.CredentialKey)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSummaryText(w io.Writer, r domain.SummaryResult) error {
	var b strings.Builder
	if !r.Success {
		fmt.Fprintf(&b, "warning: %s\n", r.Error)
	}
	fmt.Fprintln(&b, r.Display())
	_, err := io.WriteString(w, b.String())
	return err
}

func writeFlashcardsText(w io.Writer, r domain.FlashcardResult) error {
	var b strings.Builder
	if !r.Success {
		fmt.Fprintf(&b, "warning: %s\n", r.Error)
	}
	for _, card := range r.Display() {
		fmt.Fprintf(&b, "%d. Q: %s\n   A: %s\n", card.ID+1, card.Question, card.Answer)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeAnalysisText(w io.Writer, a *service.Analysis) error {
	if _, err := fmt.Fprintf(w, "Provider: %s\n\nSummary:\n", a.Provider); err != nil {
		return err
	}
	if err := writeSummaryText(w, a.Summary); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\nFlashcards:\n"); err != nil {
		return err
	}
	return writeFlashcardsText(w, a.Flashcards)
}
