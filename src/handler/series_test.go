package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/market-stats/src/data"
	"github.com/jiaming2012/market-stats/src/models"
)

func writeCSV(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644))
}

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	root := t.TempDir()
	market := filepath.Join(root, "market_data")
	momentum := filepath.Join(root, "Momentum_stock_date")

	writeCSV(t, market, "AAA_daily.csv", "Date,Close,Volume\n2024-01-02,100,1000\n2024-01-03,110,1100\n2024-01-04,90,1200\n2024-01-05,95,1300\n")
	writeCSV(t, market, "BBB_daily.csv", "Date,Close\n2024-01-02,50\n2024-01-03,55\n2024-01-04,45\n2024-01-05,47\n")
	writeCSV(t, market, "FLAT_daily.csv", "Date,Close\n2024-01-02,5\n2024-01-03,5\n2024-01-04,5\n2024-01-05,5\n")
	writeCSV(t, market, "EMPTY_daily.csv", "Date,Close\n")
	writeCSV(t, market, "NOCLOSE_daily.csv", "Date,Open\n2024-01-02,1\n")
	writeCSV(t, market, "GAP_daily.csv", "Date,Open,Close\n2024-01-02,1,10\n2024-01-03,2,12\n2024-01-04,3,\n")
	writeCSV(t, market, "TZ_daily.csv", "\ufeffDate,Close\n2024-01-02 00:00:00-05:00,5\n2024-01-03 00:00:00-05:00,6\n")
	writeCSV(t, momentum, "MOM_daily.csv", "Date,Close\n2024-01-02,7\n")

	sources, err := models.NewSourceDirectories(map[models.Source]string{
		models.SourceMarket:   market,
		models.SourceMomentum: momentum,
	})
	require.NoError(t, err)

	router := mux.NewRouter()
	SetupHandler(router, data.NewSeriesLoader(sources))

	return router
}

func doGet(t *testing.T, router http.Handler, url string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	var body map[string]interface{}
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}

	return rec, body
}

func TestIndex(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doGet(t, router, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "running", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestPrice(t *testing.T) {
	router := newTestRouter(t)

	t.Run("latest row", func(t *testing.T) {
		rec, body := doGet(t, router, "/price?symbol=AAA")
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, "AAA", body["symbol"])
		assert.Equal(t, "market", body["source"])
		assert.Equal(t, "daily", body["interval"])
		assert.Equal(t, map[string]interface{}{"Date": "2024-01-05", "Close": 95.0, "Volume": 1300.0}, body["latest"])
	})

	t.Run("other source", func(t *testing.T) {
		rec, body := doGet(t, router, "/price?symbol=MOM&source=momentum")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "momentum", body["source"])
	})

	t.Run("invalid source", func(t *testing.T) {
		rec, body := doGet(t, router, "/price?symbol=AAA&source=bogus")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, map[string]interface{}{"error": "Invalid source 'bogus'"}, body)
	})

	t.Run("missing file", func(t *testing.T) {
		rec, body := doGet(t, router, "/price?symbol=ZZZ")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, map[string]interface{}{"error": "CSV not found"}, body)
	})

	t.Run("empty series", func(t *testing.T) {
		rec, body := doGet(t, router, "/price?symbol=EMPTY")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, body["error"], "empty series")
	})

	t.Run("blank close in the last row", func(t *testing.T) {
		rec, body := doGet(t, router, "/price?symbol=GAP")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]interface{}{"Date": "2024-01-04", "Open": 3.0, "Close": nil}, body["latest"])
	})

	t.Run("timezone dates and byte order mark", func(t *testing.T) {
		rec, body := doGet(t, router, "/price?symbol=TZ")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]interface{}{"Date": "2024-01-03 00:00:00-05:00", "Close": 6.0}, body["latest"])
	})

	t.Run("only GET", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/price?symbol=AAA", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestAverage(t *testing.T) {
	router := newTestRouter(t)

	t.Run("default days", func(t *testing.T) {
		rec, body := doGet(t, router, "/avg?symbol=AAA")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 5.0, body["days"])
		assert.Equal(t, 98.75, body["average_close"])
	})

	t.Run("trailing days", func(t *testing.T) {
		_, body := doGet(t, router, "/avg?symbol=AAA&days=2")
		assert.Equal(t, 92.5, body["average_close"])
	})

	t.Run("source is checked before other params", func(t *testing.T) {
		rec, body := doGet(t, router, "/avg?symbol=AAA&days=abc&source=bogus")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid source 'bogus'", body["error"])
	})

	t.Run("bad days", func(t *testing.T) {
		rec, body := doGet(t, router, "/avg?symbol=AAA&days=abc")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, body["error"], "invalid query parameters")

		rec, body = doGet(t, router, "/avg?symbol=AAA&days=0")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "days must be greater than 0", body["error"])
	})

	t.Run("blank closes are skipped", func(t *testing.T) {
		rec, body := doGet(t, router, "/avg?symbol=GAP")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 11.0, body["average_close"])

		_, body = doGet(t, router, "/avg?symbol=GAP&days=1")
		assert.Contains(t, body, "average_close")
		assert.Nil(t, body["average_close"])
	})

	t.Run("missing close column", func(t *testing.T) {
		rec, body := doGet(t, router, "/avg?symbol=NOCLOSE")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, body["error"], "malformed data")
	})
}

func TestPairEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("similarity", func(t *testing.T) {
		rec, body := doGet(t, router, "/similarity?base=AAA&target=BBB")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "AAA", body["base"])
		assert.Equal(t, "BBB", body["target"])
		assert.Equal(t, 0.9985, body["correlation"])
		assert.Equal(t, 4.0, body["days_compared"])
	})

	t.Run("similarity with itself", func(t *testing.T) {
		_, body := doGet(t, router, "/similarity?base=AAA&target=AAA")
		assert.Equal(t, 1.0, body["correlation"])
	})

	t.Run("undefined correlation is null", func(t *testing.T) {
		rec, body := doGet(t, router, "/similarity?base=AAA&target=FLAT")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, body, "correlation")
		assert.Nil(t, body["correlation"])
	})

	t.Run("missing target", func(t *testing.T) {
		rec, body := doGet(t, router, "/similarity?base=AAA&target=ZZZ")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "CSV not found", body["error"])
	})

	t.Run("surge similarity", func(t *testing.T) {
		rec, body := doGet(t, router, "/pattern/surge/similarity?base=AAA&target=BBB")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1.0, body["similarity"])
		assert.Equal(t, 4.0, body["days"])
	})

	t.Run("lead lag", func(t *testing.T) {
		_, similarity := doGet(t, router, "/similarity?base=AAA&target=BBB")

		rec, body := doGet(t, router, "/leadlag?base=AAA&target=BBB&lag=0")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 0.0, body["lag"])
		assert.Equal(t, similarity["correlation"], body["correlation"])

		_, body = doGet(t, router, "/leadlag?base=AAA&target=BBB")
		assert.Equal(t, 1.0, body["lag"])

		_, body = doGet(t, router, "/leadlag?base=AAA&target=BBB&lag=10")
		assert.Nil(t, body["correlation"])
	})

	t.Run("coupling", func(t *testing.T) {
		rec, body := doGet(t, router, "/coupling?base=AAA&target=BBB")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 0.0, body["decoupled_rate"])
		assert.Equal(t, 3.0, body["days"])
	})

	t.Run("invalid source", func(t *testing.T) {
		for _, url := range []string{
			"/similarity?base=AAA&target=BBB&source=bogus",
			"/pattern/surge/similarity?base=AAA&target=BBB&source=bogus",
			"/leadlag?base=AAA&target=BBB&lag=x&source=bogus",
			"/coupling?source=bogus",
			"/pattern/surge?symbol=AAA&threshold=x&source=bogus",
		} {
			rec, body := doGet(t, router, url)
			assert.Equal(t, http.StatusBadRequest, rec.Code, url)
			assert.Equal(t, "Invalid source 'bogus'", body["error"], url)
		}
	})
}

func TestSurge(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doGet(t, router, "/pattern/surge?symbol=AAA&threshold=0.05")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AAA", body["symbol"])

	surges, ok := body["surges"].([]interface{})
	require.True(t, ok)
	require.Len(t, surges, 2)

	first := surges[0].(map[string]interface{})
	assert.Equal(t, "2024-01-03", first["Date"])
	assert.Equal(t, 110.0, first["Close"])
	assert.Equal(t, true, first["Surge"])
	assert.InDelta(t, 0.1, first["Return"], 1e-9)

	_, body = doGet(t, router, "/pattern/surge?symbol=AAA&threshold=5")
	assert.Equal(t, []interface{}{}, body["surges"])

	rec, body = doGet(t, router, "/pattern/surge?symbol=ZZZ")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]interface{}{"error": "CSV not found"}, body)

	rec, body = doGet(t, router, "/pattern/surge?symbol=AAA&threshold=high")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "invalid query parameters")
}

type failingLoader struct{}

func (failingLoader) CheckSource(source models.Source) error {
	return nil
}

func (failingLoader) Load(ctx context.Context, symbol, interval string, source models.Source) (*models.TimeSeries, error) {
	return nil, errors.New("read /data/market_data: input/output error")
}

func TestUnexpectedErrors(t *testing.T) {
	router := mux.NewRouter()
	SetupHandler(router, failingLoader{})

	for _, url := range []string{
		"/price?symbol=AAA",
		"/avg?symbol=AAA",
		"/similarity?base=AAA&target=BBB",
		"/pattern/surge?symbol=AAA",
	} {
		rec, body := doGet(t, router, url)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, url)
		assert.Equal(t, map[string]interface{}{"error": "internal server error"}, body, url)
	}
}
