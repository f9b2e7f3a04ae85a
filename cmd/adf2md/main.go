// Command adf2md converts exported Jira ADF documents to Markdown files.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

type config struct {
	input    string
	output   string
	preview  bool
	logLevel string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "adf2md:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	level, err := logrus.ParseLevel(cfg.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)

	b := &batch{
		output: cfg.output,
		logger: logger,
	}
	if cfg.preview {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("creating preview renderer: %w", err)
		}
		b.preview = func(path, markdown string) error {
			rendered, err := r.Render(markdown)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "==> %s\n%s", path, rendered)
			return err
		}
	}

	files, err := readInputFiles(cfg.input)
	if err != nil {
		return fmt.Errorf("failed to read input directory: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .json files found in %s", cfg.input)
	}

	logger.Infof("Converting %d input files...", len(files))
	result := b.convertAll(cfg.input, files)
	logger.WithFields(logrus.Fields{
		"converted": result.converted,
		"skipped":   result.skipped,
		"failed":    result.failed,
	}).Info("conversion finished")

	if result.failed > 0 {
		return fmt.Errorf("%d of %d files failed", result.failed, len(files))
	}
	return nil
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("adf2md", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&cfg.input, "input", "i", "", "Directory or file holding ADF JSON documents")
	fs.StringVarP(&cfg.output, "output", "o", "", "Directory for the Markdown files (default: next to each input)")
	fs.BoolVarP(&cfg.preview, "preview", "p", false, "Render each result to the terminal")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.input == "" && fs.NArg() > 0 {
		cfg.input = fs.Arg(0)
	}
	if cfg.input == "" {
		return nil, fmt.Errorf("input directory must be specified")
	}
	return cfg, nil
}
