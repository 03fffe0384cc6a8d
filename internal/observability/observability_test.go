package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	var r Recorder

	before := testutil.ToFloat64(ImportsTotal.WithLabelValues("ok"))
	r.ImportFinished("ok", 1500*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(ImportsTotal.WithLabelValues("ok")))

	before = testutil.ToFloat64(StageResults.WithLabelValues("json_ld", "usable"))
	r.StageResult("json_ld", "usable")
	assert.Equal(t, before+1, testutil.ToFloat64(StageResults.WithLabelValues("json_ld", "usable")))

	before = testutil.ToFloat64(FetchAttempts.WithLabelValues("retry"))
	r.FetchAttempt("retry")
	r.FetchAttempt("retry")
	assert.Equal(t, before+2, testutil.ToFloat64(FetchAttempts.WithLabelValues("retry")))

	before = testutil.ToFloat64(BatchItems.WithLabelValues("skipped"))
	r.BatchItem("skipped")
	assert.Equal(t, before+1, testutil.ToFloat64(BatchItems.WithLabelValues("skipped")))
}

func TestServerHandler(t *testing.T) {
	Recorder{}.FetchAttempt("ok")

	ts := httptest.NewServer(NewServer(":0", nil).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "recipe_fetch_attempts_total")
}
