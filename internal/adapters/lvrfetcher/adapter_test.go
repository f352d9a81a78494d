package lvrfetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/traditionalchinese"

	"lvr-ingest/internal/core/domain"
)

var testRegion = domain.Region{Code: "A", Name: "臺北市"}

func newTestAdapter(baseURL string, timeout time.Duration) *LVRFetcherAdapter {
	return NewLVRFetcherAdapter(baseURL, "test-agent", timeout, zerolog.Nop())
}

func TestFetchRegionRows_UTF8Payload(t *testing.T) {
	var gotPath, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		gotAgent = r.UserAgent()
		fmt.Fprint(w, "鄉鎮市區,交易年月日,總價元\n中正區,1140115,100\n")
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL, 5*time.Second)
	rows, encoding, err := a.FetchRegionRows(context.Background(), testRegion, "114S1")
	require.NoError(t, err)

	assert.Equal(t, "/DownloadSeason?season=114S1&fileName=a_lvr_land_a.csv", gotPath)
	assert.Equal(t, "test-agent", gotAgent)
	assert.Equal(t, EncodingUTF8, encoding)
	require.Len(t, rows, 1)
	assert.Equal(t, "中正區", rows[0]["鄉鎮市區"])
}

func TestFetchRegionRows_Big5Payload(t *testing.T) {
	payload, err := traditionalchinese.Big5.NewEncoder().Bytes(
		[]byte("鄉鎮市區,總價元\n板橋區,200\n"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL, 5*time.Second)
	rows, encoding, err := a.FetchRegionRows(context.Background(), testRegion, "105S3")
	require.NoError(t, err)
	assert.Equal(t, EncodingBig5, encoding)
	require.Len(t, rows, 1)
	assert.Equal(t, "板橋區", rows[0]["鄉鎮市區"])
}

func TestFetchRegionRows_FollowsRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/DownloadSeason" {
			http.Redirect(w, r, "/moved", http.StatusFound)
			return
		}
		fmt.Fprint(w, "a,b\n1,2\n")
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL, 5*time.Second)
	rows, _, err := a.FetchRegionRows(context.Background(), testRegion, "114S1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["a"])
}

func TestFetchRegionRows_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL, 5*time.Second)
	_, _, err := a.FetchRegionRows(context.Background(), testRegion, "114S1")
	require.Error(t, err)
	assert.Equal(t, KindHTTPStatus, KindOf(err))

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusNotFound, fe.Status)
}

func TestFetchRegionRows_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		fmt.Fprint(w, "a\n1\n")
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL, 50*time.Millisecond)
	_, _, err := a.FetchRegionRows(context.Background(), testRegion, "114S1")
	require.Error(t, err)
	assert.Equal(t, KindTimeout, KindOf(err))
}

func TestFetchRegionRows_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	a := newTestAdapter(srv.URL, time.Second)
	_, _, err := a.FetchRegionRows(context.Background(), testRegion, "114S1")
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestFetchRegionRows_SameSeasonTwice(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, "a\n1\n")
	}))
	defer srv.Close()

	// Re-running ingestion hits the identical URL; the visited-URL cache
	// must not swallow the second request.
	a := newTestAdapter(srv.URL, 5*time.Second)
	_, _, err := a.FetchRegionRows(context.Background(), testRegion, "114S1")
	require.NoError(t, err)
	_, _, err = a.FetchRegionRows(context.Background(), testRegion, "114S1")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetchRegionRows_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newTestAdapter("http://127.0.0.1:0", time.Second)
	_, _, err := a.FetchRegionRows(ctx, testRegion, "114S1")
	assert.ErrorIs(t, err, context.Canceled)
}
