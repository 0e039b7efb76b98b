// Package dataset stores the raw catalog source files in PostgreSQL so a
// fleet of servers can load the same bytes without shared disk.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/cherokee-verbs/internal/adapter/postgres"
	"github.com/heartmarshall/cherokee-verbs/internal/domain"
)

const (
	table  = "dataset_sources"
	entity = "dataset source"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var contentTypes = map[string]string{
	".csv":  "text/csv",
	".json": "application/json",
}

// Source is one stored dataset file.
type Source struct {
	Name        string
	Content     []byte
	ContentType string
}

// NewSource builds a Source, deriving the content type from the extension.
func NewSource(name string, content []byte) Source {
	ct, ok := contentTypes[strings.ToLower(path.Ext(name))]
	if !ok {
		ct = "application/octet-stream"
	}
	return Source{Name: name, Content: content, ContentType: ct}
}

// SourceInfo describes a stored file without its content.
type SourceInfo struct {
	Name        string    `db:"name"`
	ContentType string    `db:"content_type"`
	Size        int64     `db:"size"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Repo reads and writes dataset_sources. It implements loader.Fetcher.
type Repo struct {
	db postgres.Querier
}

// New creates a dataset repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Fetch returns the content of the named file.
func (r *Repo) Fetch(ctx context.Context, name string) ([]byte, error) {
	query, args, err := psql.
		Select("content").
		From(table).
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build fetch query: %w", err)
	}

	var content []byte
	q := postgres.QuerierFromCtx(ctx, r.db)
	if err := q.QueryRow(ctx, query, args...).Scan(&content); err != nil {
		return nil, postgres.MapError(err, entity, name)
	}
	return content, nil
}

// List returns every stored file ordered by name.
func (r *Repo) List(ctx context.Context) ([]SourceInfo, error) {
	query, args, err := psql.
		Select("name", "content_type", "octet_length(content) AS size", "updated_at").
		From(table).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var out []SourceInfo
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, "list")
	}
	return out, nil
}

// Upsert stores src, replacing any file with the same name.
func (r *Repo) Upsert(ctx context.Context, src Source) error {
	if strings.TrimSpace(src.Name) == "" {
		return domain.NewValidationError("name", "required")
	}

	query, args, err := psql.
		Insert(table).
		Columns("name", "content", "content_type", "updated_at").
		Values(src.Name, src.Content, src.ContentType, squirrel.Expr("now()")).
		Suffix(`ON CONFLICT (name) DO UPDATE SET
			content = EXCLUDED.content,
			content_type = EXCLUDED.content_type,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, entity, src.Name)
	}
	return nil
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Publisher replaces a set of dataset files atomically, so loaders never
// observe a mix of old and new files.
type Publisher struct {
	repo       *Repo
	tx         txManager
	log        *slog.Logger
	onUpserted func(Source)
}

// PublisherOption customizes a Publisher.
type PublisherOption func(*Publisher)

// WithProgress registers fn to run after each file is written inside the
// transaction. The write is not committed until Publish returns nil.
func WithProgress(fn func(Source)) PublisherOption {
	return func(p *Publisher) { p.onUpserted = fn }
}

// NewPublisher creates a Publisher.
func NewPublisher(log *slog.Logger, repo *Repo, tx txManager, opts ...PublisherOption) *Publisher {
	p := &Publisher{repo: repo, tx: tx, log: log.With("service", "dataset_publisher")}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish upserts every source in one transaction.
func (p *Publisher) Publish(ctx context.Context, sources []Source) error {
	if len(sources) == 0 {
		return domain.NewValidationError("sources", "at least one file is required")
	}

	err := p.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, src := range sources {
			if err := p.repo.Upsert(ctx, src); err != nil {
				return err
			}
			if p.onUpserted != nil {
				p.onUpserted(src)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish datasets: %w", err)
	}

	for _, src := range sources {
		p.log.InfoContext(ctx, "dataset published",
			slog.String("name", src.Name),
			slog.String("content_type", src.ContentType),
			slog.Int("bytes", len(src.Content)),
		)
	}
	return nil
}
