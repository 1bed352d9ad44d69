package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/reoring/validators/i18n"
	"github.com/reoring/validators/schema"
	"github.com/reoring/validators/schema/load"
)

// errInvalid is returned when at least one document failed validation.
// The failures themselves have already been printed.
var errInvalid = errors.New("validation failed")

type rootFlags struct {
	schemaFile string
	verbose    bool
	lang       string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:   "validators",
		Short: "Validate JSON and YAML documents against a schema",
		Long: `validators checks documents against a schema document written in a
JSON Schema vocabulary, with tagged union support through anyOf plus the
discriminantKey, typeIdentifyingKey, uniqueKey and brandKey annotations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			i18n.SetLanguage(f.lang)
		},
	}
	root.PersistentFlags().StringVarP(&f.schemaFile, "schema", "s", "", "schema document (JSON or YAML)")
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "log debug records to stderr")
	root.PersistentFlags().StringVar(&f.lang, "lang", "en", "message language: en, ja")

	root.AddCommand(newCheckCmd(f), newSchemaCmd(f))
	return root
}

func (f *rootFlags) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (f *rootFlags) loadSchema() (schema.Schema, error) {
	if f.schemaFile == "" {
		return nil, errors.New("--schema is required")
	}
	return load.FromFile(f.schemaFile)
}
