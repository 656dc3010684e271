package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykhdr/rainbow-hash/cracker/internal/hashcrack"
	"github.com/ykhdr/rainbow-hash/cracker/internal/hashcrack/strategy"
	"github.com/ykhdr/rainbow-hash/pkg/messages"
	"github.com/ykhdr/rainbow-hash/pkg/record"
	"github.com/ykhdr/rainbow-hash/pkg/set"
)

// sha1("password") and sha1("abcpassword")
const (
	plainDigest  = "5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8"
	saltedDigest = "403e4a4698de0d54c867b5cfaf4227eecb48d5da"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := record.New(
		record.Mapping{"password": set.New(plainDigest)},
		record.Mapping{"password": set.New(plainDigest, saltedDigest)},
	)
	s, err := strategy.NewStrategy(strategy.ScanStrategyType, strategy.Sources{Record: r})
	require.NoError(t, err)
	reg := NewRegistry()
	srv := NewServer("", hashcrack.NewCracker(s, time.Second, hashcrack.NewMetrics(reg)), reg)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func decode(t *testing.T, resp *http.Response) messages.CrackHashResponse {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var out messages.CrackHashResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCrackQuery(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/hash/crack?hash=" + saltedDigest + "&salted=true")
	require.NoError(t, err)
	out := decode(t, resp)
	assert.Equal(t, []string{"password"}, out.Found)
	assert.Equal(t, "salted", out.Mode)
	assert.True(t, out.Complete)
}

func TestCrackQueryNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/hash/crack?hash=" + saltedDigest)
	require.NoError(t, err)
	out := decode(t, resp)
	assert.Empty(t, out.Found)
	assert.Equal(t, messages.NotFoundMessage, out.Message)
}

func TestCrackQueryBadRequest(t *testing.T) {
	ts := newTestServer(t)

	for _, query := range []string{"", "?hash=", "?hash=abc&salted=maybe"} {
		resp, err := http.Get(ts.URL + "/api/hash/crack" + query)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
	}
}

func TestCrackBody(t *testing.T) {
	ts := newTestServer(t)

	body := bytes.NewBufferString(`{"hash":"` + strings.ToUpper(plainDigest) + `","useSalts":false}`)
	resp, err := http.Post(ts.URL+"/api/hash/crack", "application/json", body)
	require.NoError(t, err)
	out := decode(t, resp)
	assert.Equal(t, []string{"password"}, out.Found)
	assert.Equal(t, plainDigest, out.Hash)
	assert.NotEmpty(t, out.RequestId)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/hash/crack?hash=" + plainDigest)
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `rainbow_cracks_total{mode="unsalted",outcome="found"} 1`)
	assert.Contains(t, string(data), `rainbow_http_requests_total{method="GET",route="/api/health",status="200"} 1`)
}
