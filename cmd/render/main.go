package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"resume-studio/internal/intake"
	"resume-studio/internal/model"
	"resume-studio/internal/render"
	infra "resume-studio/pkg/infrastructure"
)

type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Render RenderCmd `cmd:"" default:"withargs" help:"Render a resume document to LaTeX, HTML or PDF"`
	Schema SchemaCmd `cmd:"" help:"Print the JSON schema accepted as input"`
}

// AfterApply sets up logging once flags are parsed.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

type RenderCmd struct {
	Input   string        `arg:"" type:"existingfile" help:"Resume document in parser JSON or YAML form"`
	Output  string        `short:"o" help:"Output directory" default:"." type:"path"`
	Format  []string      `short:"f" help:"Formats to write" enum:"tex,html,pdf" default:"tex,html"`
	Labels  string        `short:"l" help:"YAML file with section headings" type:"existingfile"`
	Columns int           `help:"Characters per line in the paginated layout" default:"90"`
	Lines   int           `help:"Lines per page in the paginated layout" default:"64"`
	Chrome  string        `help:"Chrome executable for PDF output" env:"CHROME_PATH"`
	Timeout time.Duration `help:"PDF render timeout" default:"60s"`
}

func (r *RenderCmd) Run() error {
	doc, err := readDocument(r.Input)
	if err != nil {
		return err
	}
	opts := render.Options{Columns: r.Columns, LinesPerPage: r.Lines}
	if r.Labels != "" {
		if opts.Labels, err = readLabels(r.Labels); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(r.Output, 0o755); err != nil {
		return err
	}

	for _, format := range r.Format {
		body, err := r.render(doc, opts, format)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		path := filepath.Join(r.Output, render.FileName(doc, "."+format))
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return err
		}
		slog.Info("Wrote resume", "format", format, "path", path, "bytes", len(body))
	}
	return nil
}

func (r *RenderCmd) render(doc model.Document, opts render.Options, format string) ([]byte, error) {
	switch format {
	case "tex":
		tex, err := render.LaTeX(doc, opts)
		return []byte(tex), err
	case "html":
		layout := render.Paginate(doc, opts)
		slog.Debug("Paginated resume", "pages", len(layout.Pages), "bullets", len(layout.Bullets()))
		html, err := layout.HTML()
		return []byte(html), err
	case "pdf":
		html, err := render.Paginate(doc, opts).HTML()
		if err != nil {
			return nil, err
		}
		renderer := infra.NewChromedpRenderer(r.Chrome)
		renderer.Timeout = r.Timeout
		pdf, err := renderer.RenderHTMLToPDF(context.Background(), html)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(string(pdf), "%PDF") {
			return nil, fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
		}
		return pdf, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

type SchemaCmd struct{}

func (SchemaCmd) Run() error {
	_, err := os.Stdout.Write(model.SchemaJSON())
	return err
}

func readDocument(path string) (model.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return intake.FromYAML(raw)
	default:
		return intake.FromParserOutput(raw)
	}
}

func readLabels(path string) (render.Labels, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var labels render.Labels
	if err := yaml.Unmarshal(raw, &labels); err != nil {
		return nil, fmt.Errorf("labels %s: %w", path, err)
	}
	return labels, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("resume-render"),
		kong.Description("Render resume documents without the studio service."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
