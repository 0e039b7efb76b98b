package main

import (
	"fmt"
	"strings"

	prompt "github.com/c-bata/go-prompt"
)

var shellCommands = []prompt.Suggest{
	{Text: "search", Description: "search [--linked] QUERY"},
	{Text: "root", Description: "root ROOT"},
	{Text: "class", Description: "class CLASS"},
	{Text: "entry", Description: "entry ENTRY_NO"},
	{Text: "row", Description: "row ENTRY_INDEX"},
	{Text: "sentences", Description: "sentences ENTRY_INDEX"},
	{Text: "roots", Description: "roots [PREFIX]"},
	{Text: "classes", Description: "list verb classes"},
	{Text: "stats", Description: "load statistics"},
	{Text: "json", Description: "toggle JSON output"},
	{Text: "help", Description: "list commands"},
	{Text: "quit", Description: "leave the shell"},
}

// shell is an interactive loop over one loaded session. Root labels and
// class names are completed from the catalog.
type shell struct {
	s       *session
	roots   []prompt.Suggest
	classes []prompt.Suggest
}

func newShell(s *session) *shell {
	sh := &shell{s: s}
	if roots, err := s.svc.Roots(s.ctx, ""); err == nil {
		for _, r := range roots {
			sh.roots = append(sh.roots, prompt.Suggest{Text: r.Label, Description: fmt.Sprintf("%d analyses", r.Entries)})
		}
	}
	if classes, err := s.svc.Classes(s.ctx); err == nil {
		for _, c := range classes {
			sh.classes = append(sh.classes, prompt.Suggest{Text: c.Name, Description: fmt.Sprintf("%d analyses", c.Entries)})
		}
	}
	return sh
}

func (sh *shell) run() error {
	fmt.Fprintln(sh.s.out.w, "Tab completes commands, roots and classes. quit exits.")

	var history []string
	for {
		in := prompt.Input("verbroots> ", sh.completer,
			prompt.OptionTitle("verbroots"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionHistory(history),
		)

		in = strings.TrimSpace(in)
		switch in {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		history = append(history, in)
		if err := sh.exec(in); err != nil {
			fmt.Fprintf(sh.s.cli.App.ErrWriter, "error: %v\n", err)
		}
	}
}

func (sh *shell) exec(line string) error {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "search":
		linked := false
		if after, ok := strings.CutPrefix(rest, "--linked"); ok {
			linked = true
			rest = strings.TrimSpace(after)
		}
		return sh.s.search(rest, 0, linked)
	case "root":
		return sh.s.root(rest)
	case "class":
		return sh.s.class(rest)
	case "entry":
		return sh.s.entry(rest)
	case "row":
		return sh.s.row(rest)
	case "sentences":
		return sh.s.sentences(rest)
	case "roots":
		return sh.s.roots(rest)
	case "classes":
		return sh.s.classes()
	case "stats":
		return sh.s.stats()
	case "json":
		sh.s.out.asJSON = !sh.s.out.asJSON
		fmt.Fprintf(sh.s.out.w, "json output %t\n", sh.s.out.asJSON)
		return nil
	case "help":
		for _, c := range shellCommands {
			fmt.Fprintf(sh.s.out.w, "  %-10s %s\n", c.Text, c.Description)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
}

func (sh *shell) completer(d prompt.Document) []prompt.Suggest {
	return sh.complete(d.TextBeforeCursor())
}

func (sh *shell) complete(before string) []prompt.Suggest {
	if before == "" {
		return nil
	}
	cmd, arg, hasArg := strings.Cut(before, " ")
	if !hasArg {
		return prompt.FilterHasPrefix(shellCommands, cmd, true)
	}

	switch cmd {
	case "root":
		return prompt.FilterHasPrefix(sh.roots, arg, true)
	case "class":
		return prompt.FilterHasPrefix(sh.classes, arg, true)
	}
	return nil
}
