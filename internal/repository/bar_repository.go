package repository

import (
	"context"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"signal-desk/internal/domain"
)

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const barsSchema = `CREATE TABLE IF NOT EXISTS bars (
	symbol    TEXT             NOT NULL,
	interval  TEXT             NOT NULL,
	open_time TIMESTAMPTZ      NOT NULL,
	open      DOUBLE PRECISION NOT NULL,
	high      DOUBLE PRECISION NOT NULL,
	low       DOUBLE PRECISION NOT NULL,
	close     DOUBLE PRECISION NOT NULL,
	volume    DOUBLE PRECISION NOT NULL DEFAULT 0,
	PRIMARY KEY (symbol, interval, open_time)
)`

// BarRepository archives fetched series so analyses can fall back to them when every upstream
// source is down.
type BarRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewBarRepository(pool PgxPool, tracer trace.Tracer) *BarRepository {
	return &BarRepository{pool: pool, tracer: tracer}
}

func (r *BarRepository) EnsureSchema(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "bar-repo.ensure-schema")
	defer span.End()

	_, err := r.pool.Exec(ctx, barsSchema)
	return err
}

func (r *BarRepository) UpsertBars(ctx context.Context, symbol, interval string, bars domain.Series) error {
	if len(bars) == 0 {
		return nil
	}

	ctx, span := r.tracer.Start(ctx, "bar-repo.upsert-bars")
	defer span.End()
	span.SetAttributes(
		attribute.String("symbol", symbol),
		attribute.String("interval", interval),
		attribute.Int("bars", len(bars)),
	)

	batch := &pgx.Batch{}
	for _, b := range bars {
		batch.Queue(
			`INSERT INTO bars (symbol, interval, open_time, open, high, low, close, volume)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (symbol, interval, open_time) DO UPDATE SET
			     open = EXCLUDED.open,
			     high = EXCLUDED.high,
			     low = EXCLUDED.low,
			     close = EXCLUDED.close,
			     volume = EXCLUDED.volume`,
			symbol, interval, b.Time.UTC(), b.Open, b.High, b.Low, b.Close, b.Volume,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range bars {
		if _, err := br.Exec(); err != nil {
			span.RecordError(err)
			return err
		}
	}
	return nil
}

// RecentBars returns up to limit of the newest archived bars in ascending time order.
func (r *BarRepository) RecentBars(ctx context.Context, symbol, interval string, limit int) (domain.Series, error) {
	ctx, span := r.tracer.Start(ctx, "bar-repo.recent-bars")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT open_time, open, high, low, close, volume
		 FROM bars
		 WHERE symbol = $1 AND interval = $2
		 ORDER BY open_time DESC
		 LIMIT $3`,
		symbol, interval, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bars domain.Series
	for rows.Next() {
		var b domain.Bar
		if err := rows.Scan(&b.Time, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.Reverse(bars)
	return bars, nil
}
