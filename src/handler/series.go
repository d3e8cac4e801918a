package handler

import (
	"context"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/market-stats/src/indicators"
	"github.com/jiaming2012/market-stats/src/models"
)

type SeriesLoader interface {
	CheckSource(source models.Source) error
	Load(ctx context.Context, symbol, interval string, source models.Source) (*models.TimeSeries, error)
}

type SeriesHandler struct {
	loader SeriesLoader
}

func NewSeriesHandler(loader SeriesLoader) *SeriesHandler {
	return &SeriesHandler{
		loader: loader,
	}
}

// serveSeriesRequest runs the shared request pipeline: the source is checked
// before anything else, then parameter errors, then validation, and only then
// does exec load data.
func serveSeriesRequest[Request models.SeriesRequest](loader SeriesLoader, req Request, exec func(context.Context, Request) (interface{}, error), w http.ResponseWriter, r *http.Request) {
	parseErr := req.ParseHTTPRequest(r)

	if err := loader.CheckSource(req.GetSource()); err != nil {
		writeError(r, w, err)
		return
	}

	if parseErr != nil {
		writeError(r, w, models.NewWebError(http.StatusBadRequest, parseErr.Error(), parseErr))
		return
	}

	if err := req.Validate(r); err != nil {
		writeError(r, w, models.NewWebError(http.StatusBadRequest, err.Error(), err))
		return
	}

	result, err := exec(r.Context(), req)
	if err != nil {
		writeError(r, w, err)
		return
	}

	if err := setResponse(result, w); err != nil {
		log.WithContext(r.Context()).Errorf("serveSeriesRequest: failed to set response: %v", err)
	}
}

func (h *SeriesHandler) loadPair(ctx context.Context, base, target, interval string, source models.Source) (*models.TimeSeries, *models.TimeSeries, error) {
	a, err := h.loader.Load(ctx, base, interval, source)
	if err != nil {
		return nil, nil, fmt.Errorf("base %s: %w", base, err)
	}

	b, err := h.loader.Load(ctx, target, interval, source)
	if err != nil {
		return nil, nil, fmt.Errorf("target %s: %w", target, err)
	}

	return a, b, nil
}

func (h *SeriesHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("running"))
}

func (h *SeriesHandler) Price(w http.ResponseWriter, r *http.Request) {
	serveSeriesRequest(h.loader, &models.PriceRequest{}, h.price, w, r)
}

func (h *SeriesHandler) price(ctx context.Context, req *models.PriceRequest) (interface{}, error) {
	ts, err := h.loader.Load(ctx, req.Symbol, req.Interval, req.Source)
	if err != nil {
		return nil, err
	}

	latest, err := indicators.LatestRow(ts)
	if err != nil {
		return nil, err
	}

	return &models.PriceResponse{
		Symbol:   req.Symbol,
		Source:   req.Source,
		Interval: req.Interval,
		Latest:   latest,
	}, nil
}

func (h *SeriesHandler) Average(w http.ResponseWriter, r *http.Request) {
	serveSeriesRequest(h.loader, &models.AverageRequest{}, h.average, w, r)
}

func (h *SeriesHandler) average(ctx context.Context, req *models.AverageRequest) (interface{}, error) {
	ts, err := h.loader.Load(ctx, req.Symbol, req.Interval, req.Source)
	if err != nil {
		return nil, err
	}

	avg, err := indicators.TrailingMean(ts, req.Days)
	if err != nil {
		return nil, err
	}

	return &models.AverageResponse{
		Symbol:       req.Symbol,
		Source:       req.Source,
		Interval:     req.Interval,
		Days:         req.Days,
		AverageClose: indicators.RoundOrNil(avg, 3),
	}, nil
}

func (h *SeriesHandler) Similarity(w http.ResponseWriter, r *http.Request) {
	serveSeriesRequest(h.loader, &models.PairRequest{}, h.similarity, w, r)
}

func (h *SeriesHandler) similarity(ctx context.Context, req *models.PairRequest) (interface{}, error) {
	a, b, err := h.loadPair(ctx, req.Base, req.Target, req.Interval, req.Source)
	if err != nil {
		return nil, err
	}

	result, err := indicators.Correlate(a, b)
	if err != nil {
		return nil, err
	}

	return &models.SimilarityResponse{
		Base:         req.Base,
		Target:       req.Target,
		Source:       req.Source,
		Interval:     req.Interval,
		Correlation:  indicators.RoundOrNil(result.Correlation, 4),
		DaysCompared: result.Days,
	}, nil
}

func (h *SeriesHandler) Surge(w http.ResponseWriter, r *http.Request) {
	serveSeriesRequest(h.loader, &models.SurgeRequest{}, h.surge, w, r)
}

func (h *SeriesHandler) surge(ctx context.Context, req *models.SurgeRequest) (interface{}, error) {
	ts, err := h.loader.Load(ctx, req.Symbol, req.Interval, req.Source)
	if err != nil {
		return nil, err
	}

	records, err := indicators.SurgeFlags(ts, req.Threshold)
	if err != nil {
		return nil, err
	}

	surges := make([]map[string]interface{}, len(records))
	for i, record := range records {
		surges[i] = record.ToMap()
	}

	return &models.SurgeResponse{
		Symbol: req.Symbol,
		Surges: surges,
	}, nil
}

func (h *SeriesHandler) SurgeSimilarity(w http.ResponseWriter, r *http.Request) {
	serveSeriesRequest(h.loader, &models.PairRequest{}, h.surgeSimilarity, w, r)
}

func (h *SeriesHandler) surgeSimilarity(ctx context.Context, req *models.PairRequest) (interface{}, error) {
	a, b, err := h.loadPair(ctx, req.Base, req.Target, req.Interval, req.Source)
	if err != nil {
		return nil, err
	}

	result, err := indicators.SurgeSimilarity(a, b)
	if err != nil {
		return nil, err
	}

	return &models.SurgeSimilarityResponse{
		Base:       req.Base,
		Target:     req.Target,
		Source:     req.Source,
		Interval:   req.Interval,
		Similarity: indicators.OrNil(result.Similarity),
		Days:       result.Days,
	}, nil
}

func (h *SeriesHandler) LeadLag(w http.ResponseWriter, r *http.Request) {
	serveSeriesRequest(h.loader, &models.LeadLagRequest{}, h.leadLag, w, r)
}

func (h *SeriesHandler) leadLag(ctx context.Context, req *models.LeadLagRequest) (interface{}, error) {
	a, b, err := h.loadPair(ctx, req.Base, req.Target, req.Interval, req.Source)
	if err != nil {
		return nil, err
	}

	result, err := indicators.LeadLag(a, b, req.Lag)
	if err != nil {
		return nil, err
	}

	return &models.LeadLagResponse{
		Base:        req.Base,
		Target:      req.Target,
		Source:      req.Source,
		Interval:    req.Interval,
		Lag:         req.Lag,
		Correlation: indicators.RoundOrNil(result.Correlation, 4),
	}, nil
}

func (h *SeriesHandler) Coupling(w http.ResponseWriter, r *http.Request) {
	serveSeriesRequest(h.loader, &models.PairRequest{}, h.coupling, w, r)
}

func (h *SeriesHandler) coupling(ctx context.Context, req *models.PairRequest) (interface{}, error) {
	a, b, err := h.loadPair(ctx, req.Base, req.Target, req.Interval, req.Source)
	if err != nil {
		return nil, err
	}

	result, err := indicators.DecoupledRate(a, b)
	if err != nil {
		return nil, err
	}

	return &models.CouplingResponse{
		Base:          req.Base,
		Target:        req.Target,
		Source:        req.Source,
		Interval:      req.Interval,
		DecoupledRate: indicators.OrNil(result.Rate),
		Days:          result.Days,
	}, nil
}
