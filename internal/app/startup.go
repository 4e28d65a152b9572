// Package app loads every dataset and derives the tables the dashboard
// serves. Everything here runs once, before the server listens.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"popdash/internal/aggregate"
	"popdash/internal/config"
	"popdash/internal/dataset"
	"popdash/internal/domain"
	"popdash/internal/handler"
	"popdash/internal/metrics"
	"popdash/internal/trend"
	"popdash/internal/view"
)

// SeriesFetcher downloads an indicator series for a set of countries.
type SeriesFetcher interface {
	FetchPopulationSeries(ctx context.Context, indicator string, codes []string, start, end int) ([]domain.PopulationSeriesPoint, error)
}

// Build loads the three datasets, aggregates them, fits the diagnostic
// trend and returns the dashboard state. Any error is fatal for startup.
func Build(ctx context.Context, cfg *config.Config, fetcher SeriesFetcher) (*handler.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.StartupTimeout)
	defer cancel()

	var (
		countries []domain.CountryRecord
		series    []domain.PopulationSeriesPoint
		county    []domain.CountyDailyRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		countries, err = dataset.LoadWorldBoundaries(cfg.WorldBoundariesPath)
		return err
	})
	g.Go(func() error {
		var err error
		series, err = fetcher.FetchPopulationSeries(gctx, cfg.WorldBankIndicator, cfg.WorldBankCountries, cfg.WorldBankStart, cfg.WorldBankEnd)
		return err
	})
	g.Go(func() error {
		var err error
		county, err = dataset.LoadCountyDaily(cfg.CountyDataPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}

	metrics.DatasetRows.WithLabelValues("world_boundaries").Set(float64(len(countries)))
	metrics.DatasetRows.WithLabelValues("population_series").Set(float64(len(series)))
	metrics.DatasetRows.WithLabelValues("county_daily").Set(float64(len(county)))

	slog.InfoContext(ctx, "datasets loaded",
		"countries", len(countries),
		"world_pop_share_total", aggregate.PopShareTotal(countries),
		"series_points", len(series),
		"county_rows", len(county))

	wide, err := aggregate.PivotToWide(series)
	if err != nil {
		return nil, fmt.Errorf("pivot population series: %w", err)
	}

	tables := view.Tables{
		Countries:  countries,
		Series:     series,
		Wide:       wide,
		Daily:      aggregate.CountyDailySum(county),
		Continents: aggregate.ContinentPopulationSum(countries),
	}

	fit, err := trend.FitLinearTrend(wide, cfg.TrendTarget, trend.PredictorYear)
	if err != nil {
		return nil, fmt.Errorf("fit %s trend: %w", cfg.TrendTarget, err)
	}
	slog.InfoContext(ctx, "trend fitted",
		"target", fit.Target,
		"observations", fit.N,
		"slope", fit.Slope,
		"intercept", fit.Intercept,
		"r_squared", fit.RSquared)
	fmt.Println(fit.Summary())

	slog.InfoContext(ctx, "tables derived",
		"years", len(wide.Years),
		"series_countries", len(wide.Countries),
		"dates", len(tables.Daily.Dates),
		"continents", len(tables.Continents.Continents))

	return &handler.Dashboard{
		Outputs: view.NewModel(tables).Outputs(),
		Tables:  tables,
		Trend:   fit,
	}, nil
}
