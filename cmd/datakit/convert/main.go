package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/afero"

	"github.com/goliatone/go-datakit/fsutil"
	"github.com/goliatone/go-datakit/internal/logging"
	"github.com/goliatone/go-datakit/internal/logging/gologger"
)

func main() {
	if err := runConvert(os.Args[1:]); err != nil {
		log.Fatalf("datakit convert: %v", err)
	}
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("datakit-convert", flag.ExitOnError)
	input := fs.String("in", "", "Input file; its extension selects the source format")
	output := fs.String("out", "", "Output file; its extension selects the target format")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "console", "Log format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" || *output == "" {
		return fmt.Errorf("both -in and -out are required")
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:  *logLevel,
		Format: *logFormat,
	})
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"tool": "convert",
	})
	logger := logging.CodecLogger(provider).WithContext(ctx)

	fsys := afero.NewOsFs()
	value, err := fsutil.ReadData(fsys, *input)
	if err != nil {
		return err
	}
	if err := fsutil.OutputData(fsys, *output, value); err != nil {
		return err
	}

	logger.Info("converted", "from", *input, "to", *output)
	return nil
}
