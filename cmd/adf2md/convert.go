package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/athapong/workdesk-mcp/pkg/adf"
	"github.com/athapong/workdesk-mcp/pkg/metrics"
)

var errNoDocument = errors.New("no ADF document found")

type batch struct {
	output  string
	logger  *logrus.Logger
	preview func(path, markdown string) error
}

type summary struct {
	converted int
	skipped   int
	failed    int
}

func (b *batch) convertAll(root string, files []string) summary {
	var s summary
	for _, file := range files {
		target, err := b.convertFile(root, file)
		switch {
		case errors.Is(err, errNoDocument):
			b.logger.WithField("file", file).Debug("skipping file without ADF document")
			s.skipped++
		case err != nil:
			b.logger.WithError(err).WithField("file", file).Error("conversion failed")
			s.failed++
		default:
			b.logger.WithFields(logrus.Fields{"file": file, "output": target}).Debug("converted")
			s.converted++
		}
	}
	return s
}

// convertFile writes the Markdown for one input file and returns its path.
func (b *batch) convertFile(root, file string) (string, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return "", errors.Wrap(err, "read input")
	}

	docJSON, err := extractDocument(raw)
	if err != nil {
		return "", err
	}

	doc, err := adf.Parse(docJSON)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse ADF")
	}
	md := adf.Convert(doc)
	metrics.ADFConversions.WithLabelValues("cli").Inc()

	target, err := b.targetPath(root, file)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", errors.Wrap(err, "create output directory")
	}
	if err := os.WriteFile(target, []byte(md), 0o644); err != nil {
		return "", errors.Wrap(err, "write markdown")
	}

	if b.preview != nil {
		if err := b.preview(file, md); err != nil {
			return "", errors.Wrap(err, "render preview")
		}
	}
	return target, nil
}

// targetPath maps input/a/b.json to <output>/a/b.md, or to a/b.md beside the
// input when no output directory is set.
func (b *batch) targetPath(root, file string) (string, error) {
	name := strings.TrimSuffix(file, filepath.Ext(file)) + ".md"
	if b.output == "" {
		return name, nil
	}

	base := root
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		base = filepath.Dir(root)
	}
	rel, err := filepath.Rel(base, name)
	if err != nil {
		return "", errors.Wrap(err, "resolve output path")
	}
	return filepath.Join(b.output, rel), nil
}

// extractDocument accepts a bare ADF document, a Jira issue export
// (fields.description) or a Jira comment export (body).
func extractDocument(raw []byte) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, errors.New("invalid JSON")
	}
	parsed := gjson.ParseBytes(raw)
	if parsed.Get("type").String() == "doc" {
		return raw, nil
	}
	for _, path := range []string{"fields.description", "body"} {
		if v := parsed.Get(path); v.IsObject() && v.Get("type").String() == "doc" {
			return []byte(v.Raw), nil
		}
	}
	return nil, errNoDocument
}

// readInputFiles lists the .json files under input, which may also be a
// single file.
func readInputFiles(input string) ([]string, error) {
	var files []string
	err := filepath.Walk(input, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
