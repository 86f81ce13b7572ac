package usgs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seriesJSON(site, param, unit, value, dateTime string) string {
	return fmt.Sprintf(`{
		"sourceInfo": {"siteCode": [{"value": %q}]},
		"variable": {
			"variableCode": [{"value": %q}],
			"unit": {"unitCode": %q}
		},
		"values": [{"value": [{"value": %q, "dateTime": %q}]}]
	}`, site, param, unit, value, dateTime)
}

func TestFetchInstantaneous(t *testing.T) {
	var gotQuery, gotAccept, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		gotAgent = r.Header.Get("User-Agent")
		fmt.Fprintf(w, `{"value": {"timeSeries": [%s, %s]}}`,
			seriesJSON("07067000", ParamGageHeight, "ft", "4.52", "2026-08-30T10:15:00.000-05:00"),
			seriesJSON("07067000", ParamDischarge, "ft3/s", "1350", "2026-08-30T10:15:00.000-05:00"),
		)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, 10, testLogger())
	readings, err := client.FetchInstantaneous(context.Background(),
		[]string{"07067000", "07066000"}, []string{ParamGageHeight, ParamDischarge})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "format=json")
	assert.Contains(t, gotQuery, "sites=07067000%2C07066000")
	assert.Contains(t, gotQuery, "parameterCd=00065%2C00060")
	assert.Contains(t, gotQuery, "siteStatus=all")
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "MissouriFloatTrips/1.0", gotAgent)

	require.Len(t, readings, 2)
	assert.Equal(t, Reading{
		SiteCode:     "07067000",
		VariableCode: ParamGageHeight,
		Unit:         "ft",
		Value:        4.52,
		DateTime:     "2026-08-30T10:15:00.000-05:00",
	}, readings[0])
	assert.Equal(t, 1350.0, readings[1].Value)
}

func TestFetchInstantaneous_NoSites(t *testing.T) {
	client := NewClient("http://example.invalid", time.Second, 10, testLogger())
	readings, err := client.FetchInstantaneous(context.Background(), nil, []string{ParamGageHeight})
	require.NoError(t, err)
	assert.Nil(t, readings)
}

func TestFetchInstantaneous_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, 10, testLogger())
	_, err := client.FetchInstantaneous(context.Background(), []string{"07067000"}, []string{ParamGageHeight})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "service unavailable")
}

func TestFetchInstantaneous_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "<html>not json</html>") //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, 10, testLogger())
	_, err := client.FetchInstantaneous(context.Background(), []string{"07067000"}, []string{ParamGageHeight})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestFetchInstantaneous_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond, 10, testLogger())
	_, err := client.FetchInstantaneous(context.Background(), []string{"07067000"}, []string{ParamGageHeight})
	require.Error(t, err)
}

func TestFetchInstantaneous_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("http://example.invalid", time.Second, 10, testLogger())
	_, err := client.FetchInstantaneous(ctx, []string{"07067000"}, []string{ParamGageHeight})
	require.Error(t, err)
}

func TestResponseReadings_SkipsBrokenSeries(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty timeSeries", `{"value": {"timeSeries": []}}`, 0},
		{"missing value key entirely", `{}`, 0},
		{
			"missing site code",
			`{"value": {"timeSeries": [{
				"sourceInfo": {"siteCode": []},
				"variable": {"variableCode": [{"value": "00065"}], "unit": {"unitCode": "ft"}},
				"values": [{"value": [{"value": "4.5", "dateTime": "t"}]}]
			}]}}`,
			0,
		},
		{
			"no values",
			`{"value": {"timeSeries": [{
				"sourceInfo": {"siteCode": [{"value": "07067000"}]},
				"variable": {"variableCode": [{"value": "00065"}], "unit": {"unitCode": "ft"}},
				"values": []
			}]}}`,
			0,
		},
		{
			"unparsable value",
			fmt.Sprintf(`{"value": {"timeSeries": [%s]}}`,
				seriesJSON("07067000", ParamGageHeight, "ft", "Ice", "t")),
			0,
		},
		{
			"one good one broken",
			fmt.Sprintf(`{"value": {"timeSeries": [%s, %s]}}`,
				seriesJSON("07067000", ParamGageHeight, "ft", "Ice", "t"),
				seriesJSON("07066000", ParamGageHeight, "ft", "3.2", "t")),
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				io.WriteString(w, tt.body) //nolint:errcheck
			}))
			defer server.Close()

			client := NewClient(server.URL, 5*time.Second, 10, testLogger())
			readings, err := client.FetchInstantaneous(context.Background(),
				[]string{"07067000"}, []string{ParamGageHeight})
			require.NoError(t, err)
			assert.Len(t, readings, tt.want)
		})
	}
}
