package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/fetch"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/httputil"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

func newsClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logger.NewNop()
	return NewClient(Config{
		NewsBaseURL:    server.URL,
		RequestsPerSec: 1000,
	}, httputil.New(log), log)
}

func TestNews_CountsAndScoresHeadlines(t *testing.T) {
	client := newsClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote/AAPL/news", r.URL.Path)
		w.Write([]byte(`<html><body>
			<h3>Apple shares surge after record quarter</h3>
			<h3>Analysts raise Apple targets on strong iPhone growth</h3>
			<h3>Apple faces lawsuit over battery claims</h3>
			<h3>Apple opens new campus</h3>
		</body></html>`))
	})

	summary, err := client.News(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Count7D)
	// Positive keyword hits outnumber the single lawsuit mention.
	assert.Greater(t, summary.Sentiment, 0.0)
	assert.LessOrEqual(t, summary.Sentiment, 1.0)
}

func TestNews_NoCoverageIsNeutral(t *testing.T) {
	client := newsClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>nothing here</p></body></html>`))
	})

	summary, err := client.News(context.Background(), "XYZ")
	require.NoError(t, err)

	assert.Zero(t, summary.Count7D)
	assert.Zero(t, summary.Sentiment)
}

func TestNews_ServerErrorIsTransient(t *testing.T) {
	client := newsClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.News(context.Background(), "AAPL")
	require.Error(t, err)
	assert.True(t, fetch.IsRetryable(err), "5xx must be retryable upstream")
}

func TestNews_ClientErrorIsPermanent(t *testing.T) {
	client := newsClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.News(context.Background(), "AAPL")
	require.Error(t, err)
	assert.False(t, fetch.IsRetryable(err))
}

func TestScoreHeadline(t *testing.T) {
	pos, neg := scoreHeadline("Shares surge to record high despite lawsuit")
	assert.Equal(t, 2, pos)
	assert.Equal(t, 1, neg)

	pos, neg = scoreHeadline("Quarterly filing published")
	assert.Zero(t, pos)
	assert.Zero(t, neg)

	// Whole-word matching: "cutting" must not hit the "cut" keyword.
	pos, neg = scoreHeadline("Cutting-edge chips unveiled")
	assert.Zero(t, pos)
	assert.Zero(t, neg, "substring hits must not count")
}
