// Package loader fetches the five catalog sources concurrently, parses them
// concurrently and builds a catalog once every source has succeeded.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/cherokee-verbs/internal/app/loader/dictionary"
	"github.com/heartmarshall/cherokee-verbs/internal/app/loader/morphology"
	"github.com/heartmarshall/cherokee-verbs/internal/app/loader/sentences"
	"github.com/heartmarshall/cherokee-verbs/internal/app/loader/verbclass"
	"github.com/heartmarshall/cherokee-verbs/internal/catalog"
	"github.com/heartmarshall/cherokee-verbs/internal/domain"
)

// Source names used in logs and LoadError.
const (
	SourceDictionary = "dictionary"
	SourceMorphology = "morphology"
	SourceSentences  = "sentences"
	SourceLinks      = "links"
	SourceClasses    = "classes"
)

// Fetcher returns the raw bytes of one named dataset file.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Files maps each source to the file name handed to the Fetcher.
type Files struct {
	Dictionary string
	Morphology string
	Sentences  string
	Links      string
	Classes    string
}

// DefaultFiles returns the file names of the published dataset.
func DefaultFiles() Files {
	return Files{
		Dictionary: "dictionary.csv",
		Morphology: "reconstructable_verbs.json",
		Sentences:  "sentences.csv",
		Links:      "join_table.csv",
		Classes:    "classses_expanded.json",
	}
}

type source struct {
	name string
	file string
}

func (f Files) sources() []source {
	return []source{
		{name: SourceDictionary, file: f.Dictionary},
		{name: SourceMorphology, file: f.Morphology},
		{name: SourceSentences, file: f.Sentences},
		{name: SourceLinks, file: f.Links},
		{name: SourceClasses, file: f.Classes},
	}
}

// Loader produces complete catalogs. It holds no state between loads.
type Loader struct {
	log     *slog.Logger
	fetcher Fetcher
	files   Files
}

// New creates a Loader.
func New(log *slog.Logger, fetcher Fetcher, files Files) *Loader {
	return &Loader{
		log:     log.With("service", "loader"),
		fetcher: fetcher,
		files:   files,
	}
}

// Load runs one full load. On any failure it returns an error wrapping
// domain.ErrLoadFailed and no catalog.
func (l *Loader) Load(ctx context.Context) (*catalog.Catalog, error) {
	start := time.Now()

	raw, err := l.fetchAll(ctx)
	if err != nil {
		l.log.Warn("catalog fetch failed", slog.String("error", err.Error()))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}

	in, err := l.parseAll(raw)
	if err != nil {
		l.log.Warn("catalog parse failed", slog.String("error", err.Error()))
		return nil, err
	}

	cat := catalog.Build(in)
	st := cat.Stats()
	l.log.Info("catalog built",
		slog.Int("rows", st.RowsKept),
		slog.Int("rows_filtered", st.RowsTotal-st.RowsKept),
		slog.Int("rows_linked", st.RowsLinked),
		slog.Int("entries", st.Entries),
		slog.Int("roots", st.Roots),
		slog.Int("classes", st.Classes),
		slog.Int("links_unresolved", st.LinksUnresolved),
		slog.Int("links_duplicate", st.LinksDuplicate),
		slog.Duration("duration", time.Since(start)),
	)
	return cat, nil
}

// fetchAll requests every source at once and waits for all of them.
// The first failure cancels the others.
func (l *Loader) fetchAll(ctx context.Context) (map[string][]byte, error) {
	sources := l.files.sources()
	data := make([][]byte, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range sources {
		g.Go(func() error {
			b, err := l.fetcher.Fetch(gctx, s.file)
			if err != nil {
				return &domain.LoadError{Source: s.name, Stage: "fetch", Err: err}
			}
			l.log.Debug("source fetched", slog.String("source", s.name), slog.Int("bytes", len(b)))
			data[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	raw := make(map[string][]byte, len(sources))
	for i, s := range sources {
		raw[s.name] = data[i]
	}
	return raw, nil
}

// parseAll decodes the fetched sources in parallel. Each goroutine owns
// one field of the result.
func (l *Loader) parseAll(raw map[string][]byte) (catalog.Input, error) {
	var (
		in catalog.Input
		g  errgroup.Group
	)

	g.Go(func() error {
		rows, st, err := dictionary.Parse(raw[SourceDictionary])
		if err != nil {
			return parseError(SourceDictionary, err)
		}
		l.log.Debug("dictionary parsed",
			slog.Int("rows", st.TotalRows),
			slog.Int("missing_index", st.MissingIndex),
			slog.Int("missing_source", st.MissingSource),
		)
		in.Rows = rows
		return nil
	})

	g.Go(func() error {
		entries, st, err := morphology.Parse(raw[SourceMorphology])
		if err != nil {
			return parseError(SourceMorphology, err)
		}
		l.log.Debug("morphology parsed",
			slog.Int("items", st.TotalItems),
			slog.Int("malformed", st.MalformedItems),
			slog.Int("missing_entry_no", st.MissingEntryNo),
		)
		in.Entries = entries
		return nil
	})

	g.Go(func() error {
		byID, st, err := sentences.Parse(raw[SourceSentences])
		if err != nil {
			return parseError(SourceSentences, err)
		}
		l.log.Debug("sentences parsed",
			slog.Int("rows", st.TotalRows),
			slog.Int("missing_id", st.MissingID),
			slog.Int("duplicate_id", st.DuplicateID),
		)
		in.Sentences = byID
		return nil
	})

	g.Go(func() error {
		links, st, err := sentences.ParseLinks(raw[SourceLinks])
		if err != nil {
			return parseError(SourceLinks, err)
		}
		l.log.Debug("links parsed", slog.Int("rows", st.TotalRows), slog.Int("incomplete", st.Incomplete))
		in.Links = links
		return nil
	})

	g.Go(func() error {
		classes, st, err := verbclass.Parse(raw[SourceClasses])
		if err != nil {
			return parseError(SourceClasses, err)
		}
		l.log.Debug("classes parsed", slog.Int("classes", st.TotalClasses), slog.Int("malformed", st.MalformedClasses))
		in.Classes = classes
		return nil
	})

	if err := g.Wait(); err != nil {
		return catalog.Input{}, err
	}
	return in, nil
}

func parseError(name string, err error) error {
	return &domain.LoadError{Source: name, Stage: "parse", Err: err}
}
