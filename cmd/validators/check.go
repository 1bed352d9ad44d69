package main

import (
	"fmt"

	"github.com/spf13/cobra"

	validators "github.com/reoring/validators"
	"github.com/reoring/validators/schema/load"
)

type checkFlags struct {
	compile      bool
	all          bool
	message      string
	strategy     string
	discriminant string
}

func newCheckCmd(root *rootFlags) *cobra.Command {
	f := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate documents against the schema",
		Long: `Validate each FILE against the schema. Files ending in .json are read as
a single JSON value; anything else is read as a YAML stream and every
document in it is validated.

Valid files print "ok FILE". Invalid ones print the validation error and
make the command exit with status 1.

Examples:
  validators check --schema event.yaml click.json
  validators check --schema event.yaml --all --message "bad event: {error}" events.yaml
  validators check --schema shape.yaml --strategy unique_key shapes.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root, f, args)
		},
	}
	cmd.Flags().BoolVar(&f.compile, "compile", false, "compile checkers on first use")
	cmd.Flags().BoolVar(&f.all, "all", false, "report every error instead of the first")
	cmd.Flags().StringVarP(&f.message, "message", "m", "", "overall error message; {error}, {detail} and {field} are expanded")
	cmd.Flags().StringVar(&f.strategy, "strategy", "auto", "union resolution: auto, discriminant, unique_key, value_brand, key_brand")
	cmd.Flags().StringVar(&f.discriminant, "discriminant", "", "override the union discriminant key")
	return cmd
}

func runCheck(cmd *cobra.Command, root *rootFlags, f *checkFlags, files []string) error {
	s, err := root.loadSchema()
	if err != nil {
		return err
	}
	strategy, err := validators.ParseStrategy(f.strategy)
	if err != nil {
		return err
	}
	v := validators.New(s, validators.Options{
		Compile:         f.compile,
		Strategy:        strategy,
		DiscriminantKey: f.discriminant,
		Name:            "cli",
		Logger:          root.logger(cmd.ErrOrStderr()),
	})

	var overall []string
	if f.message != "" {
		overall = append(overall, f.message)
	}
	out := cmd.OutOrStdout()
	failed := false
	for _, file := range files {
		docs, err := load.DecodeFile(file)
		if err != nil {
			return err
		}
		for i, doc := range docs {
			label := file
			if len(docs) > 1 {
				label = fmt.Sprintf("%s[%d]", file, i)
			}
			if f.all {
				err = v.Validate(doc, overall...)
			} else {
				err = v.Assert(doc, overall...)
			}
			if err == nil {
				fmt.Fprintln(out, "ok", label)
				continue
			}
			if _, ok := validators.AsValidationError(err); !ok {
				return err
			}
			failed = true
			fmt.Fprintf(out, "%s: %v\n", label, err)
		}
	}
	if failed {
		return errInvalid
	}
	return nil
}
