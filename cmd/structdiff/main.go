package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
	"github.com/goccy/go-yaml"
	"github.com/urfave/cli/v3"

	"github.com/structdiff/structdiff"
)

func main() {
	initLogger()

	app := &cli.Command{
		Name:  "structdiff",
		Usage: "structural diff for JSON & YAML documents",
		Commands: []*cli.Command{
			diffCommand(),
			revertCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

// initLogger sets up apex with a text handler and a log level from the
// STRUCTDIFF_LOG env variable
func initLogger() {
	log.SetHandler(text.New(os.Stderr))
	envLevel := strings.ToLower(os.Getenv("STRUCTDIFF_LOG"))
	if envLevel == "" {
		envLevel = "error"
	}
	if lvl, err := log.ParseLevel(envLevel); err == nil {
		log.SetLevel(lvl)
	}
}

func diffCommand() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two documents and print the change records",
		ArgsUsage: "LEFT RIGHT",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "order-independent",
				Aliases: []string{"o"},
				Usage:   "ignore array element order",
			},
			&cli.StringFlag{
				Name:    "prefilter",
				Aliases: []string{"p"},
				Usage:   "skip children matching this expression (vars: path, key)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit the change records as JSON instead of a report",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "append a change tally",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable report coloring",
			},
		},
		Action: diffAction,
	}
}

func diffAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("diff expects exactly two document arguments")
	}

	left, err := loadDocument(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	right, err := loadDocument(cmd.Args().Get(1))
	if err != nil {
		return err
	}

	var opts []structdiff.Option
	if cmd.Bool("order-independent") {
		opts = append(opts, structdiff.OptionOrderIndependent())
	}
	if src := cmd.String("prefilter"); src != "" {
		pf, err := structdiff.PrefilterExpr(src)
		if err != nil {
			return err
		}
		opts = append(opts, structdiff.OptionPrefilter(pf))
	}
	st := &structdiff.Stats{}
	if cmd.Bool("stats") {
		opts = append(opts, structdiff.OptionSetStats(st))
	}

	log.Debugf("diffing %s against %s", cmd.Args().Get(0), cmd.Args().Get(1))
	changes := structdiff.Diff(left, right, opts...)

	if cmd.Bool("json") {
		data, err := json.MarshalIndent(changes, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
	} else if err := structdiff.FormatPretty(os.Stdout, changes, !cmd.Bool("no-color")); err != nil {
		return err
	}

	if cmd.Bool("stats") {
		fmt.Fprint(os.Stdout, structdiff.FormatStats(*st))
	}
	return nil
}

func revertCommand() *cli.Command {
	return &cli.Command{
		Name:      "revert",
		Usage:     "apply a saved JSON change list in reverse against a document",
		ArgsUsage: "DOC CHANGES",
		Action:    revertAction,
	}
}

func revertAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("revert expects a document and a change list")
	}

	doc, err := loadDocument(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	data, err := os.ReadFile(cmd.Args().Get(1))
	if err != nil {
		return err
	}
	var changes structdiff.Changes
	if err := json.Unmarshal(data, &changes); err != nil {
		return fmt.Errorf("parsing change list: %w", err)
	}

	log.Debugf("reverting %d changes", len(changes))
	for i := len(changes) - 1; i >= 0; i-- {
		if err := structdiff.Revert(&doc, changes[i]); err != nil {
			return fmt.Errorf("reverting change %d: %w", i, err)
		}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}

// loadDocument reads a JSON or YAML document into generic go values. JSON
// is a subset of YAML, but .json files keep the stricter decoder so errors
// point at the right syntax.
func loadDocument(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}
