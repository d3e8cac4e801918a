package models

import (
	"fmt"
	"net/http"

	"github.com/gorilla/schema"
)

const (
	DefaultInterval  = "daily"
	DefaultDays      = 5
	DefaultThreshold = 0.1
	DefaultLag       = 1
)

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return decoder
}

// SeriesRequest is implemented by every query-string request. ParseHTTPRequest
// fills whatever fields it can even when it returns an error, so the source
// can still be checked first.
type SeriesRequest interface {
	ParseHTTPRequest(r *http.Request) error
	Validate(r *http.Request) error
	GetSource() Source
}

func decodeQuery(dst interface{}, r *http.Request) error {
	if err := queryDecoder.Decode(dst, r.URL.Query()); err != nil {
		return fmt.Errorf("invalid query parameters: %w", err)
	}

	return nil
}

type PriceRequest struct {
	Symbol   string `schema:"symbol"`
	Interval string `schema:"interval"`
	Source   Source `schema:"source"`
}

func (req *PriceRequest) ParseHTTPRequest(r *http.Request) error {
	req.Interval = DefaultInterval
	req.Source = DefaultSource
	return decodeQuery(req, r)
}

func (req *PriceRequest) Validate(r *http.Request) error {
	return nil
}

func (req *PriceRequest) GetSource() Source {
	return req.Source
}

type AverageRequest struct {
	Symbol   string `schema:"symbol"`
	Interval string `schema:"interval"`
	Source   Source `schema:"source"`
	Days     int    `schema:"days"`
}

func (req *AverageRequest) ParseHTTPRequest(r *http.Request) error {
	req.Interval = DefaultInterval
	req.Source = DefaultSource
	req.Days = DefaultDays
	return decodeQuery(req, r)
}

func (req *AverageRequest) Validate(r *http.Request) error {
	if req.Days <= 0 {
		return ErrInvalidWindow
	}

	return nil
}

func (req *AverageRequest) GetSource() Source {
	return req.Source
}

type SurgeRequest struct {
	Symbol    string  `schema:"symbol"`
	Interval  string  `schema:"interval"`
	Source    Source  `schema:"source"`
	Threshold float64 `schema:"threshold"`
}

func (req *SurgeRequest) ParseHTTPRequest(r *http.Request) error {
	req.Interval = DefaultInterval
	req.Source = DefaultSource
	req.Threshold = DefaultThreshold
	return decodeQuery(req, r)
}

func (req *SurgeRequest) Validate(r *http.Request) error {
	return nil
}

func (req *SurgeRequest) GetSource() Source {
	return req.Source
}

// PairRequest compares a base symbol against a target symbol.
type PairRequest struct {
	Base     string `schema:"base"`
	Target   string `schema:"target"`
	Interval string `schema:"interval"`
	Source   Source `schema:"source"`
}

func (req *PairRequest) ParseHTTPRequest(r *http.Request) error {
	req.Interval = DefaultInterval
	req.Source = DefaultSource
	return decodeQuery(req, r)
}

func (req *PairRequest) Validate(r *http.Request) error {
	return nil
}

func (req *PairRequest) GetSource() Source {
	return req.Source
}

type LeadLagRequest struct {
	Base     string `schema:"base"`
	Target   string `schema:"target"`
	Interval string `schema:"interval"`
	Source   Source `schema:"source"`
	Lag      int    `schema:"lag"`
}

func (req *LeadLagRequest) ParseHTTPRequest(r *http.Request) error {
	req.Interval = DefaultInterval
	req.Source = DefaultSource
	req.Lag = DefaultLag
	return decodeQuery(req, r)
}

func (req *LeadLagRequest) Validate(r *http.Request) error {
	return nil
}

func (req *LeadLagRequest) GetSource() Source {
	return req.Source
}
