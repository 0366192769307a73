package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/story-bias/internal/config"
	"alfredoptarigan/story-bias/internal/models"
	"alfredoptarigan/story-bias/internal/services"
)

const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

type analyzerFactory func(cfg *config.Config) services.Analyzer

func defaultAnalyzer(cfg *config.Config) services.Analyzer {
	return services.NewAnalyzer(cfg.Analyzer.URL, cfg.Analyzer.Timeout)
}

type analyzeOutput struct {
	URL    string                 `json:"url"`
	Label  string                 `json:"label"`
	Result *models.AnalysisResult `json:"result"`
	Report string                 `json:"report"`
}

func NewAnalyzeCmd() *cobra.Command {
	return newAnalyzeCmd(defaultAnalyzer)
}

func newAnalyzeCmd(newAnalyzer analyzerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze one story and print its bias report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			switch format {
			case formatText, formatMarkdown, formatJSON:
			default:
				return fmt.Errorf("unsupported format %q (want text, markdown or json)", format)
			}

			url := strings.TrimSpace(args[0])
			if url == "" {
				return fmt.Errorf("url must not be empty")
			}

			cfg, log, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			result, err := newAnalyzer(cfg).AnalyzeFromURL(cmd.Context(), url, services.StoryLabel)
			if err != nil {
				return err
			}
			if result == nil {
				return fmt.Errorf("analyzer returned no result")
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatMarkdown:
				if err := services.WriteMarkdownReport(out, url, *result); err != nil {
					return err
				}
				_, err = fmt.Fprintln(out)
				return err
			case formatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(analyzeOutput{
					URL:    url,
					Label:  services.StoryLabel,
					Result: result,
					Report: services.FormatReport(*result),
				})
			default:
				_, err = fmt.Fprintln(out, services.FormatReport(*result))
				return err
			}
		},
	}

	cmd.Flags().StringP("format", "f", formatText, "output format: text, markdown or json")

	return cmd
}
