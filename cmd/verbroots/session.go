package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/heartmarshall/cherokee-verbs/internal/app"
	"github.com/heartmarshall/cherokee-verbs/internal/app/loader"
	"github.com/heartmarshall/cherokee-verbs/internal/config"
	"github.com/heartmarshall/cherokee-verbs/internal/service/browse"
)

// session is one loaded catalog plus where to print.
type session struct {
	ctx  context.Context
	cli  *cli.Context
	args argList
	svc  *browse.Service
	out  *renderer
}

type argList []string

func (a argList) first() string {
	if len(a) == 0 {
		return ""
	}
	return a[0]
}

func (a argList) joined() string { return strings.Join(a, " ") }

func withCatalog(fn func(*session) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		svc, closeFn, err := openCatalog(c)
		if err != nil {
			return err
		}
		defer closeFn()

		return fn(&session{
			ctx:  c.Context,
			cli:  c,
			args: c.Args().Slice(),
			svc:  svc,
			out:  newRenderer(c.App.Writer, c.Bool("json")),
		})
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadFrom(c.String("config"))
	if err != nil {
		return nil, err
	}
	if dir := c.String("dir"); dir != "" {
		cfg.Source.Kind = config.SourceDir
		cfg.Source.Dir = dir
	}
	cfg.Log.Level = c.String("log-level")
	cfg.Log.Format = "text"
	return cfg, nil
}

func openCatalog(c *cli.Context) (*browse.Service, func(), error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	logger := app.NewLogger(cfg.Log)

	fetcher, closeFetcher, err := app.NewFetcher(c.Context, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	svc := browse.NewService(logger, loader.New(logger, fetcher, app.FilesFromConfig(cfg.Source)), cfg.Search)

	ctx, cancel := context.WithTimeout(c.Context, cfg.Source.LoadTimeout)
	defer cancel()
	if err := svc.Reload(ctx); err != nil {
		closeFetcher()
		return nil, nil, err
	}
	return svc, closeFetcher, nil
}

var errMissingArg = errors.New("missing argument")

func required(name, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s: %w", name, errMissingArg)
	}
	return nil
}

func (s *session) search(query string, limit int, linked bool) error {
	if err := required("query", query); err != nil {
		return err
	}
	results, err := s.svc.Search(s.ctx, query, browse.SearchOptions{Limit: limit, LinkedOnly: linked})
	if err != nil {
		return fmt.Errorf("search %q: %w", query, err)
	}
	return s.out.searchResults(results)
}

func (s *session) root(label string) error {
	if err := required("root", label); err != nil {
		return err
	}
	view, err := s.svc.Root(s.ctx, label)
	if err != nil {
		return fmt.Errorf("root %q: %w", label, err)
	}
	return s.out.rootView(view)
}

func (s *session) class(name string) error {
	if err := required("class", name); err != nil {
		return err
	}
	view, err := s.svc.Class(s.ctx, name)
	if err != nil {
		return fmt.Errorf("class %q: %w", name, err)
	}
	return s.out.classView(view)
}

func (s *session) entry(entryNo string) error {
	if err := required("entry number", entryNo); err != nil {
		return err
	}
	view, err := s.svc.Entry(s.ctx, entryNo)
	if err != nil {
		return fmt.Errorf("entry %q: %w", entryNo, err)
	}
	return s.out.entryView(view)
}

func (s *session) row(entryIndex string) error {
	if err := required("entry index", entryIndex); err != nil {
		return err
	}
	view, err := s.svc.Row(s.ctx, entryIndex)
	if err != nil {
		return fmt.Errorf("row %q: %w", entryIndex, err)
	}
	return s.out.rowView(view)
}

func (s *session) sentences(entryID string) error {
	if err := required("entry index", entryID); err != nil {
		return err
	}
	sentences, err := s.svc.Sentences(s.ctx, entryID)
	if err != nil {
		return fmt.Errorf("sentences %q: %w", entryID, err)
	}
	return s.out.sentenceList(sentences)
}

func (s *session) roots(prefix string) error {
	roots, err := s.svc.Roots(s.ctx, prefix)
	if err != nil {
		return err
	}
	return s.out.rootList(roots)
}

func (s *session) classes() error {
	classes, err := s.svc.Classes(s.ctx)
	if err != nil {
		return err
	}
	return s.out.classList(classes)
}

func (s *session) stats() error {
	return s.out.status(s.svc.Status())
}
