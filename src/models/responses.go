package models

// Statistics that can be undefined (NaN) are pointers and encode as null.

type ErrorResponse struct {
	Error string `json:"error"`
}

type PriceResponse struct {
	Symbol   string                 `json:"symbol"`
	Source   Source                 `json:"source"`
	Interval string                 `json:"interval"`
	Latest   map[string]interface{} `json:"latest"`
}

type AverageResponse struct {
	Symbol       string   `json:"symbol"`
	Source       Source   `json:"source"`
	Interval     string   `json:"interval"`
	Days         int      `json:"days"`
	AverageClose *float64 `json:"average_close"`
}

type SimilarityResponse struct {
	Base         string   `json:"base"`
	Target       string   `json:"target"`
	Source       Source   `json:"source"`
	Interval     string   `json:"interval"`
	Correlation  *float64 `json:"correlation"`
	DaysCompared int      `json:"days_compared"`
}

type SurgeResponse struct {
	Symbol string                   `json:"symbol"`
	Surges []map[string]interface{} `json:"surges"`
}

type SurgeSimilarityResponse struct {
	Base       string   `json:"base"`
	Target     string   `json:"target"`
	Source     Source   `json:"source"`
	Interval   string   `json:"interval"`
	Similarity *float64 `json:"similarity"`
	Days       int      `json:"days"`
}

type LeadLagResponse struct {
	Base        string   `json:"base"`
	Target      string   `json:"target"`
	Source      Source   `json:"source"`
	Interval    string   `json:"interval"`
	Lag         int      `json:"lag"`
	Correlation *float64 `json:"correlation"`
}

type CouplingResponse struct {
	Base          string   `json:"base"`
	Target        string   `json:"target"`
	Source        Source   `json:"source"`
	Interval      string   `json:"interval"`
	DecoupledRate *float64 `json:"decoupled_rate"`
	Days          int      `json:"days"`
}
