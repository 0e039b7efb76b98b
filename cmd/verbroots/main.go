// Command verbroots browses the verb-root catalog from the terminal.
//
// It loads the catalog once per invocation from the configured source
// (or --dir) and runs one query, or an interactive shell with "shell".
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/cherokee-verbs/internal/app"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "verbroots: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "verbroots",
		Usage:     "browse reconstructed Cherokee verb roots",
		Version:   app.BuildVersion(),
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML config file",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "read the dataset files from this directory instead of the configured source",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print JSON instead of tables",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level written to stderr",
				Value: "warn",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "rank dictionary rows by a free-text or root query",
				ArgsUsage: "QUERY...",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "maximum results (1-50)"},
					&cli.BoolFlag{Name: "linked", Usage: "only rows linked to an analysis"},
				},
				Action: withCatalog(func(s *session) error {
					return s.search(s.args.joined(), s.cli.Int("limit"), s.cli.Bool("linked"))
				}),
			},
			{
				Name:      "root",
				Usage:     "list the analyses of one h-grade root (\"null\" and \"unknown\" included)",
				ArgsUsage: "ROOT",
				Action:    withCatalog(func(s *session) error { return s.root(s.args.first()) }),
			},
			{
				Name:      "class",
				Usage:     "show a verb class with its endings and analyses",
				ArgsUsage: "CLASS",
				Action:    withCatalog(func(s *session) error { return s.class(s.args.first()) }),
			},
			{
				Name:      "entry",
				Usage:     "show one analysis by entry number",
				ArgsUsage: "ENTRY_NO",
				Action:    withCatalog(func(s *session) error { return s.entry(s.args.first()) }),
			},
			{
				Name:      "row",
				Usage:     "show one dictionary row by entry index",
				ArgsUsage: "ENTRY_INDEX",
				Action:    withCatalog(func(s *session) error { return s.row(s.args.first()) }),
			},
			{
				Name:      "sentences",
				Usage:     "list example sentences of a dictionary entry",
				ArgsUsage: "ENTRY_INDEX",
				Action:    withCatalog(func(s *session) error { return s.sentences(s.args.first()) }),
			},
			{
				Name:  "roots",
				Usage: "list roots with analysis counts",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "prefix", Usage: "only roots starting with this text, hyphens ignored"},
				},
				Action: withCatalog(func(s *session) error { return s.roots(s.cli.String("prefix")) }),
			},
			{
				Name:   "classes",
				Usage:  "list verb classes",
				Action: withCatalog(func(s *session) error { return s.classes() }),
			},
			{
				Name:   "stats",
				Usage:  "show load statistics",
				Action: withCatalog(func(s *session) error { return s.stats() }),
			},
			{
				Name:   "shell",
				Usage:  "interactive browser with completion",
				Action: withCatalog(func(s *session) error { return newShell(s).run() }),
			},
		},
	}
}
