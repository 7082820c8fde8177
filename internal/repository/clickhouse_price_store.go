package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"StockCast/internal/domain/models"
	domrepo "StockCast/internal/domain/repository"
	pkgch "StockCast/pkg/clickhouse"
	applogger "StockCast/pkg/logger"
	"StockCast/pkg/util"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// CHPriceStore implements PriceFetcher over a ClickHouse candles table
// with columns (symbol, bucket, close).
type CHPriceStore struct {
	db     *sql.DB
	table  string
	window util.WindowMode
	now    func() time.Time
	l      *applogger.Logger
}

func NewCHPriceStore(ch *pkgch.Client, table string, window util.WindowMode) (*CHPriceStore, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid clickhouse table name %q", table)
	}
	return &CHPriceStore{db: ch.DB(), table: table, window: window, now: time.Now}, nil
}

var _ domrepo.PriceFetcher = (*CHPriceStore)(nil)

// SetLogger injects a structured logger.
func (s *CHPriceStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHPriceStore) Name() string { return "clickhouse" }

// Fetch returns one close per day (the last bar of the day) within the month window.
func (s *CHPriceStore) Fetch(ctx context.Context, ticker string, month int) (models.PriceSeries, error) {
	start := time.Now()
	from, to, err := util.MonthWindow(s.now().Year(), month, s.window)
	if err != nil {
		return models.PriceSeries{}, fmt.Errorf("%w: %d", models.ErrInvalidMonth, month)
	}

	const qtpl = `
        SELECT toDate(bucket) AS day, argMax(close, bucket) AS close
        FROM %s
        WHERE symbol = ? AND bucket >= ? AND bucket < ?
        GROUP BY day
        ORDER BY day ASC
    `
	q := fmt.Sprintf(qtpl, s.table)
	// window end is inclusive, so query up to the start of the following day
	rows, err := s.db.QueryContext(ctx, q, ticker, from, to.AddDate(0, 0, 1))
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse fetch_closes query error",
				applogger.String("table", s.table),
				applogger.String("ticker", ticker),
				applogger.Error(err),
			)
		}
		return models.PriceSeries{}, fmt.Errorf("clickhouse closes %s: %v: %w", ticker, err, models.ErrSourceUnavailable)
	}
	defer rows.Close()

	points := make([]models.PricePoint, 0, 31)
	for rows.Next() {
		var p models.PricePoint
		if err := rows.Scan(&p.Time, &p.Close); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse fetch_closes scan error",
					applogger.String("table", s.table),
					applogger.String("ticker", ticker),
					applogger.Error(err),
				)
			}
			return models.PriceSeries{}, fmt.Errorf("scan close: %w", err)
		}
		p.Time = util.TruncateDay(p.Time)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return models.PriceSeries{}, fmt.Errorf("rows: %v: %w", err, models.ErrSourceUnavailable)
	}

	if s.l != nil {
		s.l.Info("clickhouse fetch_closes ok",
			applogger.String("table", s.table),
			applogger.String("ticker", ticker),
			applogger.Int("rows", len(points)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return models.NewPriceSeries(ticker, from, to, points), nil
}
