package data

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/jiaming2012/market-stats/src/models"
)

// SeriesLoader reads {dir}/{symbol}_{interval}.csv for a configured source.
// Every call goes to disk; nothing is cached between requests.
type SeriesLoader struct {
	sources models.SourceDirectories
	loads   metric.Int64Counter
	rows    metric.Int64Histogram
}

func NewSeriesLoader(sources models.SourceDirectories) *SeriesLoader {
	meter := otel.GetMeterProvider().Meter("data:loader")

	loads, err := meter.Int64Counter("series.loads", metric.WithDescription("CSV series loads by source and outcome"))
	if err != nil {
		log.Warnf("NewSeriesLoader: series.loads counter: %v", err)
		loads = noop.Int64Counter{}
	}

	rows, err := meter.Int64Histogram("series.rows", metric.WithDescription("Rows per loaded series"))
	if err != nil {
		log.Warnf("NewSeriesLoader: series.rows histogram: %v", err)
		rows = noop.Int64Histogram{}
	}

	return &SeriesLoader{
		sources: sources,
		loads:   loads,
		rows:    rows,
	}
}

func loadOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrInvalidSource):
		return "invalid_source"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrMalformedData):
		return "malformed"
	default:
		return "error"
	}
}

func (l *SeriesLoader) Sources() models.SourceDirectories {
	return l.sources
}

func (l *SeriesLoader) CheckSource(source models.Source) error {
	_, err := l.sources.Directory(source)
	return err
}

// Path returns the file a (symbol, interval, source) triple resolves to.
func (l *SeriesLoader) Path(symbol, interval string, source models.Source) (string, error) {
	dir, err := l.sources.Directory(source)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.csv", symbol, interval)
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %s escapes the source directory", models.ErrNotFound, name)
	}

	return filepath.Join(dir, name), nil
}

func (l *SeriesLoader) Load(ctx context.Context, symbol, interval string, source models.Source) (*models.TimeSeries, error) {
	tracer := otel.GetTracerProvider().Tracer("data:loader")
	ctx, span := tracer.Start(ctx, "SeriesLoader.Load", trace.WithAttributes(
		attribute.String("symbol", symbol),
		attribute.String("interval", interval),
		attribute.String("source", string(source)),
	))
	defer span.End()

	series, err := l.load(ctx, symbol, interval, source)

	sourceAttr := attribute.String("source", string(source))
	l.loads.Add(ctx, 1, metric.WithAttributes(sourceAttr, attribute.String("outcome", loadOutcome(err))))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("rows", series.Len()))
	l.rows.Record(ctx, int64(series.Len()), metric.WithAttributes(sourceAttr))

	return series, nil
}

func (l *SeriesLoader) load(ctx context.Context, symbol, interval string, source models.Source) (*models.TimeSeries, error) {
	path, err := l.Path(symbol, interval, source)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", models.ErrNotFound, path)
		}

		return nil, fmt.Errorf("SeriesLoader: stat %s: %w", path, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", models.ErrNotFound, path)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("SeriesLoader: open %s: %w", path, err)
	}

	defer f.Close()

	records, err := gocsv.DefaultCSVReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrMalformedData, filepath.Base(path), err)
	}

	series, err := models.NewTable(records).ConvertToSeries(symbol, interval, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	log.WithContext(ctx).WithFields(log.Fields{
		"path": path,
		"rows": series.Len(),
	}).Debug("loaded series")

	return series, nil
}
