package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/internal/service/dispatch"
	"github.com/sandevgo/truthlens/internal/service/ui"
	"github.com/sandevgo/truthlens/pkg/conv"
	"github.com/spf13/cobra"
)

var (
	imagePath string
	audioPath string
	asJSON    bool
	htmlPath  string
)

var analyzeCmd = &cobra.Command{
	Use:          "analyze [query...]",
	Short:        "Analyze a claim, image or voice note once",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context(), os.Stderr)
		defer flushLog()

		req := dispatch.Request{Query: strings.Join(args, " ")}
		var err error
		if req.ImageData, err = encodeFile(imagePath); err != nil {
			return err
		}
		if req.AudioData, err = encodeFile(audioPath); err != nil {
			return err
		}

		deps, err := NewDeps(ctx)
		if err != nil {
			return err
		}
		defer deps.Close(ctx)

		resp, err := deps.Dispatcher.Analyze(ctx, req)
		if err != nil {
			return err
		}

		if htmlPath != "" {
			page := conv.HTMLDocument(core.AppName+" report", conv.MarkdownToHTML([]byte(reportMarkdown(req.Query, resp))))
			if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), resp)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), renderResponse(resp))
		return err
	},
}

// encodeFile returns the file as a data URL, or "" when path is empty.
func encodeFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// writeJSON prints the same body POST /api/analyze returns.
func writeJSON(w io.Writer, resp dispatch.Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(dispatch.Success(resp))
}

func renderResponse(resp dispatch.Response) string {
	var b strings.Builder
	b.WriteString(ui.Section("analysis", resp.Analysis))

	if resp.Audio != nil {
		b.WriteString(ui.Section("transcript", resp.Audio.Transcript))
	}

	thoughts := make([]string, len(resp.Thoughts))
	for i, t := range resp.Thoughts {
		thoughts[i] = ui.UsageStyle.Render(t.Step) + " " + ui.DescStyle.Render(t.Details)
	}
	b.WriteString(ui.Section("thoughts", ui.Bullets(thoughts)))

	timeline := make([]string, len(resp.Timeline))
	for i, ev := range resp.Timeline {
		timeline[i] = fmt.Sprintf("%s  %s: %s", ev.Date, ev.Title, ev.Description)
	}
	b.WriteString(ui.Section("timeline", ui.Bullets(timeline)))
	b.WriteString(ui.Section("sources", ui.Bullets(resp.Sources)))
	return b.String()
}

// reportMarkdown lays out the response as one markdown document for the HTML export.
func reportMarkdown(query string, resp dispatch.Response) string {
	var b strings.Builder
	if query != "" {
		b.WriteString("# " + query + "\n\n")
	}
	b.WriteString(resp.Analysis + "\n\n")

	if len(resp.Thoughts) > 0 {
		b.WriteString("## Reasoning\n\n")
		for _, t := range resp.Thoughts {
			b.WriteString(fmt.Sprintf("- **%s**: %s\n", t.Step, t.Details))
		}
		b.WriteString("\n")
	}

	if len(resp.Timeline) > 0 {
		b.WriteString("## Timeline\n\n")
		for _, ev := range resp.Timeline {
			b.WriteString(fmt.Sprintf("- %s, **%s**: %s\n", ev.Date, ev.Title, ev.Description))
		}
		b.WriteString("\n")
	}

	if len(resp.Sources) > 0 {
		b.WriteString("## Sources\n\n")
		for _, src := range resp.Sources {
			b.WriteString(fmt.Sprintf("- [%s](%s)\n", src, src))
		}
	}
	return b.String()
}

func init() {
	analyzeCmd.Flags().StringVar(&imagePath, "image", "", "image file to examine together with the query")
	analyzeCmd.Flags().StringVar(&audioPath, "audio", "", "voice note to transcribe and fact-check")
	analyzeCmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON response")
	analyzeCmd.Flags().StringVar(&htmlPath, "html", "", "also write a standalone HTML report to this path")
	rootCmd.AddCommand(analyzeCmd)
}
