package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-rxpad/internal/app"
	"github.com/goliatone/go-rxpad/internal/config"
	"github.com/goliatone/go-rxpad/internal/logging"
	"github.com/goliatone/go-rxpad/pkg/export"
	"github.com/goliatone/go-rxpad/pkg/letterhead"
	"github.com/goliatone/go-rxpad/pkg/prescription"
	"github.com/goliatone/go-rxpad/pkg/render"
	"github.com/goliatone/go-rxpad/pkg/renderers/document"
	"github.com/goliatone/go-rxpad/pkg/themes"
	"github.com/goliatone/go-rxpad/pkg/tui"
)

const usage = `usage: rxpad-cli <command> [flags]

commands:
  render      render a prescription file (html, fragment or text)
  download    write the standalone HTML file named after the patient
  print       send the standalone file to the print command
  edit        edit a prescription interactively
  sample      write the sample prescription
  letterhead  compose a letterhead from structured fields
  themes      list document themes
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "rxpad-cli:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return flag.ErrHelp
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "render":
		return runRender(ctx, rest, stdout, stderr)
	case "download":
		return runDownload(ctx, rest, stdout, stderr)
	case "print":
		return runPrint(ctx, rest, stdout, stderr)
	case "edit":
		return runEdit(ctx, rest, stdout, stderr)
	case "sample":
		return runSample(rest, stdout, stderr)
	case "letterhead":
		return runLetterhead(rest, stdout, stderr)
	case "themes":
		return runThemes(stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	}
	fmt.Fprint(stderr, usage)
	return fmt.Errorf("unknown command %q", cmd)
}

// documentFlags are shared by the commands that render a document.
type documentFlags struct {
	config            string
	input             string
	letterhead        string
	letterheadFields  string
	defaultLetterhead bool
}

func (f *documentFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "configuration file")
	fs.StringVar(&f.input, "input", "", "prescription file (.yaml or .json); empty renders the empty prescription")
	fs.StringVar(&f.letterhead, "letterhead", "", "letterhead file with header and footer HTML")
	fs.StringVar(&f.letterheadFields, "letterhead-fields", "", "structured letterhead fields file")
	fs.BoolVar(&f.defaultLetterhead, "default-letterhead", false, "use the built-in sample letterhead")
}

type session struct {
	rt  *app.Runtime
	doc render.Document
}

func (f *documentFlags) load(stderr io.Writer) (*session, error) {
	cfg, err := config.LoadOptional(f.config)
	if err != nil {
		return nil, err
	}
	rt, err := app.Build(*cfg, logging.New(cfg.Log, stderr))
	if err != nil {
		return nil, err
	}

	data := prescription.Empty()
	if f.input != "" {
		if data, err = prescription.LoadFile(f.input); err != nil {
			return nil, err
		}
	}

	var head letterhead.Template
	switch {
	case f.letterhead != "":
		if err := readYAML(f.letterhead, &head); err != nil {
			return nil, err
		}
	case f.letterheadFields != "":
		var fields letterhead.Fields
		if err := readYAML(f.letterheadFields, &fields); err != nil {
			return nil, err
		}
		if head, err = rt.Composer.Compose(fields); err != nil {
			return nil, err
		}
	case f.defaultLetterhead || cfg.Letterhead.LoadDefault:
		head = letterhead.Default()
	}
	head = rt.Sanitizer.SanitizeTemplate(head)

	return &session{rt: rt, doc: render.NewDocument(data, head)}, nil
}

func (s *session) render(ctx context.Context, name string) ([]byte, error) {
	renderer, err := s.rt.Renderer(name)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, s.doc, s.rt.RenderOptions(time.Now))
}

func (s *session) standalone(ctx context.Context) (export.File, error) {
	markup, err := s.render(ctx, document.Name)
	if err != nil {
		return export.File{}, err
	}
	return s.rt.Exporter.Download(markup, s.doc.Prescription.Name)
}

func runRender(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var df documentFlags
	df.register(fs)
	format := fs.String("format", "html", "output format: html, fragment or text")
	output := fs.String("output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := df.load(stderr)
	if err != nil {
		return err
	}

	var out []byte
	switch strings.ToLower(*format) {
	case "html":
		file, err := s.standalone(ctx)
		if err != nil {
			return err
		}
		out = file.Body
	case "fragment":
		out, err = s.render(ctx, document.Name)
	default:
		out, err = s.render(ctx, strings.ToLower(*format))
	}
	if err != nil {
		return err
	}
	return writeOutput(*output, out, stdout)
}

func runDownload(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var df documentFlags
	df.register(fs)
	dir := fs.String("dir", "", "target directory (defaults to export.dir)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := df.load(stderr)
	if err != nil {
		return err
	}
	file, err := s.standalone(ctx)
	if err != nil {
		return err
	}
	target := *dir
	if target == "" {
		target = s.rt.Config.Export.Dir
	}
	path, err := file.Save(target)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, path)
	return nil
}

func runPrint(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var df documentFlags
	df.register(fs)
	command := fs.String("command", "", "print command, overrides export.print_command")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := df.load(stderr)
	if err != nil {
		return err
	}
	file, err := s.standalone(ctx)
	if err != nil {
		return err
	}

	printer := s.rt.Printer
	if *command != "" {
		printer = export.NewCommandPrinter(*command)
	}
	err = export.Print(ctx, printer, file, s.rt.Config.Export.Dir)
	var fallback *export.FallbackError
	switch {
	case err == nil:
		fmt.Fprintf(stdout, "sent %s to the printer\n", file.Name)
		return nil
	case errors.As(err, &fallback):
		fmt.Fprintf(stderr, "printing unavailable (%v); open %s and print it from a browser\n", fallback.Err, fallback.Path)
		fmt.Fprintln(stdout, fallback.Path)
		return nil
	}
	return err
}

func runEdit(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "", "prescription file to start from")
	output := fs.String("output", "prescription.yaml", "file to write (.yaml or .json)")
	sample := fs.Bool("sample", false, "start from the sample prescription")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data := prescription.Empty()
	switch {
	case *input != "":
		loaded, err := prescription.LoadFile(*input)
		if err != nil {
			return err
		}
		data = loaded
	case *sample:
		data = prescription.Sample()
	}

	editor := tui.NewEditor(tui.WithPromptDriver(tui.NewSurveyDriver(stdout)))
	edited, err := editor.Edit(ctx, data)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(stderr, "aborted, nothing written")
			return nil
		}
		return err
	}
	if err := prescription.SaveFile(*output, edited); err != nil {
		return err
	}
	fmt.Fprintln(stdout, *output)
	return nil
}

func runSample(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("output", "", "file to write (.yaml or .json); stdout as YAML if empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		return prescription.Encode(stdout, prescription.Sample(), prescription.FormatYAML)
	}
	return prescription.SaveFile(*output, prescription.Sample())
}

func runLetterhead(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("letterhead", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "configuration file")
	fields := fs.String("fields", "", "structured letterhead fields file (required)")
	output := fs.String("output", "", "letterhead file to write (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fields == "" {
		return errors.New("letterhead: -fields is required")
	}

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		return err
	}
	composer, err := letterhead.NewComposer(letterhead.WithAccentColor(cfg.Letterhead.AccentColor))
	if err != nil {
		return err
	}
	var in letterhead.Fields
	if err := readYAML(*fields, &in); err != nil {
		return err
	}
	head, err := composer.Compose(in)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(head)
	if err != nil {
		return err
	}
	return writeOutput(*output, out, stdout)
}

func runThemes(stdout io.Writer) error {
	for _, name := range themes.NewSelector().Names() {
		fmt.Fprintln(stdout, name)
	}
	return nil
}

// readYAML decodes a YAML (or JSON, a YAML subset) file into dst.
func readYAML(path string, dst any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
