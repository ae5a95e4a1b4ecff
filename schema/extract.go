package schema

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/go-gum/exhume/catalog"
	"github.com/go-gum/exhume/lockey"
)

// Extraction is the complete output of one catalog run.
type Extraction struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Catalog     string         `json:"catalog"`
	Locale      string         `json:"locale"`
	Actions     []ActionSchema `json:"actions"`
	Summary     Summary        `json:"summary"`
}

// Extractor runs the full pipeline: list actions, build each schema, then
// summarize. Schemas for distinct actions are built concurrently; the
// sqlite driver serializes the actual queries.
type Extractor struct {
	Catalog *catalog.DB
	Parser  *lockey.Parser
	Log     *zap.Logger

	Locale       string
	IncludeBlobs bool

	// Limit caps the number of actions processed, zero means all.
	Limit int

	// Concurrency bounds the schema builders, zero means 4.
	Concurrency int
}

func (e *Extractor) log() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

func (e *Extractor) concurrency() int {
	if e.Concurrency <= 0 {
		return 4
	}
	return e.Concurrency
}

// ExtractAll builds schemas for every action in the catalog. Output order
// matches the catalog's action order regardless of build order.
func (e *Extractor) ExtractAll(ctx context.Context) (*Extraction, error) {
	start := time.Now()
	log := e.log()

	builder := &Builder{
		Catalog:      e.Catalog,
		Parser:       e.Parser,
		Locale:       e.Locale,
		IncludeBlobs: e.IncludeBlobs,
	}

	actions, err := e.Catalog.Actions(ctx, builder.locale())
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	if e.Limit > 0 && len(actions) > e.Limit {
		actions = actions[:e.Limit]
	}

	log.Info("extracting actions",
		zap.Int("count", len(actions)),
		zap.String("locale", builder.locale()),
		zap.Bool("blobs", e.IncludeBlobs))

	schemas := make([]ActionSchema, len(actions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency())
	for i, action := range actions {
		i, action := i, action
		g.Go(func() error {
			schema, err := builder.BuildAction(ctx, action)
			if err != nil {
				return err
			}
			schemas[i] = schema
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Extraction{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Catalog:     e.Catalog.Path(),
		Locale:      builder.locale(),
		Actions:     schemas,
		Summary:     Summarize(schemas),
	}

	log.Info("extraction complete",
		zap.String("run_id", out.RunID),
		zap.Int("actions", len(schemas)),
		zap.Int("hidden", out.Summary.HiddenCount),
		zap.Duration("elapsed", time.Since(start)))

	return out, nil
}

// ExtractHidden builds schemas only for actions with a nonzero visibility
// flag, most hidden first.
func (e *Extractor) ExtractHidden(ctx context.Context) ([]ActionSchema, error) {
	builder := &Builder{
		Catalog:      e.Catalog,
		Parser:       e.Parser,
		Locale:       e.Locale,
		IncludeBlobs: e.IncludeBlobs,
	}

	actions, err := e.Catalog.HiddenActions(ctx, builder.locale())
	if err != nil {
		return nil, fmt.Errorf("list hidden actions: %w", err)
	}
	if e.Limit > 0 && len(actions) > e.Limit {
		actions = actions[:e.Limit]
	}

	e.log().Info("extracting hidden actions", zap.Int("count", len(actions)))

	schemas := make([]ActionSchema, len(actions))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency())
	for i, action := range actions {
		i, action := i, action
		g.Go(func() error {
			schema, err := builder.BuildAction(ctx, action)
			if err != nil {
				return err
			}
			schemas[i] = schema
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return schemas, nil
}
