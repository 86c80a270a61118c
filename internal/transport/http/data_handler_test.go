package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heatcli/internal/dataprocessing"
	apierrors "heatcli/internal/errors"
	"heatcli/internal/lookup"
	"heatcli/internal/services"
)

type fakeDataService struct {
	summaries []services.TableSummary
	table     *services.TableResponse
	stats     *dataprocessing.TableStats
	match     *lookup.ExchangerMatch
	stepValue float64
	err       error
}

func (f *fakeDataService) TableSummaries(ctx context.Context) []services.TableSummary {
	return f.summaries
}

func (f *fakeDataService) GetTable(ctx context.Context, name string) (*services.TableResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

func (f *fakeDataService) TableStats(ctx context.Context, name string) (*dataprocessing.TableStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

func (f *fakeDataService) ParseValues(ctx context.Context, inputs []string) []services.ParsedValue {
	results := make([]services.ParsedValue, len(inputs))
	for i, in := range inputs {
		results[i] = services.ParsedValue{Input: in, Value: float64(i + 1)}
	}
	return results
}

func (f *fakeDataService) ExchangerLookup(ctx context.Context, power, t1, tempDiff, approach float64) (*lookup.ExchangerMatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.match, nil
}

func (f *fakeDataService) StepLookup(ctx context.Context, tableName, lookupColumn, returnColumn string, value float64) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.stepValue, nil
}

func newDataTestServer(svc DataServiceInterface) *httptest.Server {
	logger := slog.Default()
	handler := NewDataHandler(svc, logger, apierrors.NewErrorHandler(logger, false))
	return httptest.NewServer(handler.Routes())
}

func TestListTables(t *testing.T) {
	srv := newDataTestServer(&fakeDataService{
		summaries: []services.TableSummary{
			{Name: "ALLHX", Rows: 10, Columns: []string{"wha", "T1"}},
		},
	})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/tables")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(1), body["count"])
}

func TestGetTableNotFound(t *testing.T) {
	srv := newDataTestServer(&fakeDataService{
		err: apierrors.NewNotFoundError("table MISSING"),
	})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/tables/MISSING")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/problem+json")
}

func TestTableStats(t *testing.T) {
	srv := newDataTestServer(&fakeDataService{
		stats: &dataprocessing.TableStats{
			Table: "RATES",
			Rows:  3,
			Columns: []dataprocessing.ColumnStats{
				{Column: "price", Count: 3, Zeros: 1, Max: 1234.56},
			},
		},
	})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/tables/RATES/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data dataprocessing.TableStats `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "RATES", body.Data.Table)
	require.Len(t, body.Data.Columns, 1)
	assert.InDelta(t, 1234.56, body.Data.Columns[0].Max, 1e-9)
}

func TestParseValues(t *testing.T) {
	srv := newDataTestServer(&fakeDataService{})
	defer srv.Close()

	payload, _ := json.Marshal(ParseRequest{Values: []string{"1,5", "2.5"}})
	resp, err := http.Post(srv.URL+"/parse", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(2), body["count"])
}

func TestParseValuesRejectsEmptyBatch(t *testing.T) {
	srv := newDataTestServer(&fakeDataService{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/parse", "application/json", bytes.NewReader([]byte(`{"values":[]}`)))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestParseValuesRejectsBadJSON(t *testing.T) {
	srv := newDataTestServer(&fakeDataService{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/parse", "application/json", bytes.NewReader([]byte(`{not json`)))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExchangerLookup(t *testing.T) {
	srv := newDataTestServer(&fakeDataService{
		match: &lookup.ExchangerMatch{PowerMW: 1.0, F1: 1.493},
	})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/exchangers/lookup?power=1&t1=20&temp_diff=10&approach=5")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data lookup.ExchangerMatch `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.InDelta(t, 1.493, body.Data.F1, 1e-9)
}

func TestExchangerLookupRejectsNonNumeric(t *testing.T) {
	srv := newDataTestServer(&fakeDataService{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/exchangers/lookup?power=abc&t1=20&temp_diff=10&approach=5")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStepLookup(t *testing.T) {
	srv := newDataTestServer(&fakeDataService{stepValue: 110})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/step?table=SIZING&lookup_column=flow&return_column=diameter&value=1200")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(110), body.Data["result"])
}
