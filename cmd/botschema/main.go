// Command botschema extracts the schema catalogue from a cached copy of the
// Bot API reference page and prints it as JSON or YAML.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/botschema/internal/catalogue"
	"github.com/dgallion1/botschema/internal/config"
	"github.com/dgallion1/botschema/internal/extract"
	"github.com/dgallion1/botschema/internal/parser"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "botschema:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("botschema", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	input := flags.StringP("input", "i", "-", "HTML file to read, - for stdin")
	output := flags.StringP("output", "o", "-", "file to write, - for stdout")
	format := flags.StringP("format", "f", "json", "output format: json or yaml")
	startMarker := flags.String("start-marker", extract.DefaultOptions().StartMarker, "section heading that starts extraction")
	contentRoot := flags.String("content-root", "dev_page_content", "id of the element holding the reference content")
	logLevel := flags.String("log-level", "warn", "debug, info, warn or error")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *format != "json" && *format != "yaml" {
		return fmt.Errorf("unknown format %q", *format)
	}

	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: config.ParseLevel(*logLevel)}))

	data, name, err := readInput(*input, stdin)
	if err != nil {
		return err
	}
	doc, err := (&parser.HTMLParser{ContentRootID: *contentRoot}).Parse(bytes.NewReader(data), name)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	log.Debug("parsed document", "title", doc.Title, "nodes", len(doc.Nodes))

	opts := extract.DefaultOptions()
	opts.StartMarker = *startMarker
	opts.Logger = log
	cat, err := extract.Extract(doc, opts)
	if err != nil {
		return err
	}
	log.Info("extracted catalogue", "version", cat.Version, "schemas", len(cat.Schemas()), "endpoints", len(cat.Endpoints()))

	exported := catalogue.Export(cat)
	var out []byte
	if *format == "yaml" {
		out, err = exported.EncodeYAML()
	} else {
		out, err = exported.EncodeJSON()
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if *output == "-" {
		_, err = stdout.Write(out)
		return err
	}
	return os.WriteFile(*output, out, 0o644)
}

func readInput(path string, stdin io.Reader) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		return data, "stdin.html", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return data, path, nil
}
