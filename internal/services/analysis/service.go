package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/common"
	"github.com/ternarybob/finhealth/internal/interfaces"
	"github.com/ternarybob/finhealth/internal/services/scoring"
	"github.com/ternarybob/finhealth/internal/services/search"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyQuery is returned when no ticker could be read from the query.
var ErrEmptyQuery = errors.New("please select a company to analyze")

// Options bounds the work done per request.
type Options struct {
	Concurrency int
	MaxBatch    int
	Timeout     time.Duration
	Merton      scoring.MertonParams
}

// OptionsFromConfig builds Options from the analysis and merton config sections.
func OptionsFromConfig(config *common.Config) Options {
	return Options{
		Concurrency: config.Analysis.Concurrency,
		MaxBatch:    config.Analysis.MaxBatch,
		Timeout:     common.ParseDuration(config.Analysis.Timeout, 60*time.Second),
		Merton: scoring.MertonParams{
			RiskFreeRate:  config.Merton.RiskFreeRate,
			Horizon:       config.Merton.Horizon,
			MaxIterations: config.Merton.MaxIterations,
			Tolerance:     config.Merton.Tolerance,
		},
	}
}

// BatchRequest is the validated input of AnalyzeBatch.
type BatchRequest struct {
	Tickers []string `json:"tickers" validate:"required,min=1,dive,required"`
}

// Service fetches company data and scores it.
type Service struct {
	provider interfaces.CompanyDataProvider
	options  Options
	validate *validator.Validate
	logger   arbor.ILogger
	now      func() time.Time
}

// NewService creates an analysis service.
func NewService(provider interfaces.CompanyDataProvider, options Options, logger arbor.ILogger) *Service {
	if options.Concurrency < 1 {
		options.Concurrency = 1
	}
	if options.MaxBatch < 1 {
		options.MaxBatch = 20
	}
	return &Service{
		provider: provider,
		options:  options,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// MaxBatch returns the largest batch AnalyzeBatch accepts.
func (s *Service) MaxBatch() int {
	return s.options.MaxBatch
}

// Analyze scores the company named by query, which may be a bare ticker,
// an exchange-qualified ticker or a search suggestion label. Failures are
// reported on the returned Report; Analyze never panics.
func (s *Service) Analyze(ctx context.Context, query string) (report *Report) {
	report = &Report{
		Query:       query,
		Symbol:      strings.ToUpper(search.ParseTicker(query)),
		GeneratedAt: s.now(),
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("query", query).
				Str("panic", fmt.Sprintf("%v", r)).
				Str("stack", common.GetStackTrace()).
				Msg("Recovered from panic during analysis")
			report.fail(fmt.Sprintf("Error analyzing company: %v", r))
		}
	}()

	if report.Symbol == "" {
		report.fail(ErrEmptyQuery.Error())
		return report
	}

	if s.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.Timeout)
		defer cancel()
	}

	data, err := s.provider.FetchCompany(ctx, report.Symbol)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", report.Symbol).Msg("Failed to fetch company data")
		report.fail(fmt.Sprintf("Error analyzing company: %v", err))
		return report
	}

	report.Symbol = data.Symbol
	info := data.Info
	report.Info = &info

	scores := scoring.Scores{
		ZScore: scoring.CalculateZScore(data),
		OScore: scoring.CalculateOScore(data),
		Merton: scoring.CalculateMerton(data, s.options.Merton),
	}
	report.Scores = &scores

	s.logger.Info().
		Str("ticker", report.Symbol).
		Bool("z_score", !scores.ZScore.Absent()).
		Bool("o_score", scores.OScore.Probability != nil).
		Bool("merton", !scores.Merton.Absent()).
		Msg("Analysis completed")

	return report
}

// AnalyzeBatch analyzes tickers concurrently. Reports are returned in input
// order; a failing ticker is reported in its own Report and does not stop the others.
func (s *Service) AnalyzeBatch(ctx context.Context, tickers []string) ([]*Report, error) {
	request := BatchRequest{Tickers: tickers}
	if err := s.validate.Struct(request); err != nil {
		return nil, fmt.Errorf("invalid batch request: %w", err)
	}
	if len(tickers) > s.options.MaxBatch {
		return nil, fmt.Errorf("invalid batch request: %d tickers exceeds the limit of %d", len(tickers), s.options.MaxBatch)
	}

	reports := make([]*Report, len(tickers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.options.Concurrency)

	for i, ticker := range tickers {
		i, ticker := i, ticker
		g.Go(func() error {
			reports[i] = s.Analyze(gctx, ticker)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
