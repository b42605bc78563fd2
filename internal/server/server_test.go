package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Zuo-Peng/karte/internal/config"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, logBuf *bytes.Buffer) *echo.Echo {
	t.Helper()
	cfg := &config.Config{MinInputChars: 5, MaxInputChars: 20}
	return New(cfg, zerolog.New(logBuf))
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestParseChart(t *testing.T) {
	e := newTestServer(t, &bytes.Buffer{})
	body := "2025/04/18(金)（入院 1 日目）\n内科　　波部　孝弘　　国保　　12:41\nS >\n咳が続く\n"
	rec := do(e, http.MethodPost, "/api/chart/parse", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Entries []map[string]interface{} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "2025/04/18(金)", got.Entries[0]["date"])
	assert.Equal(t, float64(1), got.Entries[0]["days_in_hospital"])
	assert.Equal(t, "波部　孝弘", got.Entries[0]["doctor"])
	assert.Equal(t, "S", got.Entries[0]["soap_section"])
	assert.Equal(t, "咳が続く", got.Entries[0]["content"])
}

func TestParseChart_EmptyBodyGivesEmptyList(t *testing.T) {
	e := newTestServer(t, &bytes.Buffer{})
	rec := do(e, http.MethodPost, "/api/chart/parse", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"entries":[]}`, rec.Body.String())
}

func TestParseSummary(t *testing.T) {
	e := newTestServer(t, &bytes.Buffer{})
	rec := do(e, http.MethodPost, "/api/summary/parse", "**入院期間:** 2023年1月1日～\n# 現病歴: 発熱\n")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Cleaned  string            `json:"cleaned"`
		Sections map[string]string `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "入院期間:2023年1月1日～\n現病歴:発熱\n", got.Cleaned)
	assert.Equal(t, "2023年1月1日～", got.Sections["入院期間"])
	assert.Equal(t, "発熱", got.Sections["現病歴"])
	assert.Len(t, got.Sections, 6)

	// keys come back in layout order
	assert.Less(t, strings.Index(rec.Body.String(), "入院期間"), strings.Index(rec.Body.String(), "禁忌/アレルギー"))
}

func TestCheckInput(t *testing.T) {
	e := newTestServer(t, &bytes.Buffer{})
	cases := []struct {
		body string
		want string
	}{
		{"   ", `{"length":0,"ok":false,"status":"empty"}`},
		{"abc", `{"length":3,"ok":false,"status":"too_short"}`},
		{"あいうえおかき", `{"length":7,"ok":true,"status":"ok"}`},
		{strings.Repeat("x", 21), `{"length":21,"ok":false,"status":"too_long"}`},
	}
	for _, tc := range cases {
		rec := do(e, http.MethodPost, "/api/input/check", tc.body)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, tc.want, rec.Body.String())
	}
}

func TestHealthzAndRequestLog(t *testing.T) {
	var logBuf bytes.Buffer
	e := newTestServer(t, &logBuf)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "rid-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rid-1", rec.Header().Get(RequestIDHeader))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(logBuf.Bytes(), &entry))
	assert.Equal(t, "rid-1", entry["request_id"])
	assert.Equal(t, "/healthz", entry["path"])
	assert.Equal(t, float64(200), entry["status"])
}

func TestRequestIDGenerated(t *testing.T) {
	e := newTestServer(t, &bytes.Buffer{})
	rec := do(e, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestUnknownRouteLogsStatus(t *testing.T) {
	var logBuf bytes.Buffer
	e := newTestServer(t, &logBuf)
	rec := do(e, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, logBuf.String(), `"status":404`)
}

func TestRecovery(t *testing.T) {
	var logBuf bytes.Buffer
	e := newTestServer(t, &logBuf)
	e.GET("/boom", func(c echo.Context) error { panic("boom") })

	rec := do(e, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logBuf.String(), "panic recovered")
}
