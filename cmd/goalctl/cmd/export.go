package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/templui/goalgraph/internal/markdown"
	"github.com/templui/goalgraph/internal/model"
	"github.com/templui/goalgraph/internal/service"
	"github.com/templui/goalgraph/internal/storage"
)

var exportFormats = map[string]string{
	"json":     "application/json",
	"markdown": "text/markdown; charset=utf-8",
	"html":     "text/html; charset=utf-8",
}

var exportExtensions = map[string]string{
	"json":     "json",
	"markdown": "md",
	"html":     "html",
}

func ExportCmd() *cobra.Command {
	var (
		format       string
		nameContains string
		outFile      string
		upload       bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export goals with tasks and progress",
		Long: `Export every goal (optionally filtered by name) with its tasks and progress.

The export is written to stdout, to --out, or with --upload to the configured
S3 bucket, in which case a presigned download URL is printed.

Examples:
  goalctl export --format markdown
  goalctl export --format html --out goals.html
  goalctl export --name run --upload`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			contentType, ok := exportFormats[format]
			if !ok {
				return fmt.Errorf("unknown format %q (json, markdown, html)", format)
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			snapshots, err := a.GoalService.Snapshot(ctx, model.GoalFilter{NameContains: nameContains}, a.UserService)
			if err != nil {
				return err
			}

			now := time.Now()
			body, err := renderExport(format, a.Cfg.AppName+" goals", snapshots, now)
			if err != nil {
				return err
			}

			switch {
			case upload:
				store, err := storage.New(ctx, a.Cfg)
				if err != nil {
					return err
				}

				key := fmt.Sprintf("goals-%s.%s", now.UTC().Format("20060102T150405Z"), exportExtensions[format])
				err = store.Save(ctx, key, bytes.NewReader(body), contentType)
				if err != nil {
					return err
				}

				url, err := store.PresignedURL(ctx, key)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), url)
			case outFile != "":
				err := os.WriteFile(outFile, body, 0o644)
				if err != nil {
					return fmt.Errorf("failed to write export: %w", err)
				}
			default:
				_, err := cmd.OutOrStdout().Write(body)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, markdown, html")
	cmd.Flags().StringVar(&nameContains, "name", "", "only goals whose name contains this (case-insensitive)")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&upload, "upload", false, "upload to the configured S3 bucket and print a download URL")
	cmd.MarkFlagsMutuallyExclusive("out", "upload")
	return cmd
}

func renderExport(format, title string, snapshots []service.GoalSnapshot, now time.Time) ([]byte, error) {
	switch format {
	case "json":
		out, err := json.MarshalIndent(map[string]any{
			"generatedAt": now.UTC().Format(time.RFC3339),
			"goals":       snapshots,
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode export: %w", err)
		}
		return append(out, '\n'), nil
	case "markdown":
		return markdown.Report(title, snapshots, now), nil
	case "html":
		return markdown.HTML(markdown.Report(title, snapshots, now))
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
