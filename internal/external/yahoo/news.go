package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/fetch"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/marketdata"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/httputil"
)

// Keyword lists for headline tone. Crude, but headline keyword polarity
// tracks aggregate coverage tone well enough at the 7-day horizon.
var (
	positiveWords = []string{
		"surge", "soar", "rally", "beat", "beats", "upgrade", "upgraded",
		"record", "strong", "growth", "jump", "gain", "gains", "bullish",
		"outperform", "raise", "raised", "tops",
	}
	negativeWords = []string{
		"plunge", "slump", "fall", "falls", "miss", "misses", "downgrade",
		"downgraded", "weak", "loss", "losses", "drop", "drops", "bearish",
		"underperform", "cut", "cuts", "lawsuit", "probe", "recall",
	}
)

// News scrapes the symbol's news page and reduces the headlines to a count
// and an aggregate tone in [-1, 1].
func (c *Client) News(ctx context.Context, symbol string) (*marketdata.NewsSummary, error) {
	url := fmt.Sprintf("%s/quote/%s/news", c.newsBaseURL, symbol)

	resp, err := c.fetchPage(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse news page for %s: %w", symbol, err)
	}

	summary := &marketdata.NewsSummary{}
	var pos, neg int

	doc.Find("h3").Each(func(_ int, sel *goquery.Selection) {
		headline := strings.TrimSpace(sel.Text())
		if headline == "" {
			return
		}
		summary.Count7D++
		p, n := scoreHeadline(headline)
		pos += p
		neg += n
	})

	if pos+neg > 0 {
		summary.Sentiment = float64(pos-neg) / float64(pos+neg)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":    symbol,
		"headlines": summary.Count7D,
		"sentiment": summary.Sentiment,
	}).Debug("News summarized")

	return summary, nil
}

// fetchPage performs a rate-limited GET, classifying retryable statuses.
func (c *Client) fetchPage(ctx context.Context, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	r, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	if r.StatusCode != 200 {
		r.Body.Close()
		statusErr := fmt.Errorf("news page returned %d", r.StatusCode)
		if httputil.IsRetryableStatus(r.StatusCode) {
			return nil, fetch.Transient(statusErr)
		}
		return nil, statusErr
	}

	return r, nil
}

// scoreHeadline counts polarity keyword hits in one headline.
func scoreHeadline(headline string) (pos, neg int) {
	lower := strings.ToLower(headline)
	for _, w := range positiveWords {
		if containsWord(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if containsWord(lower, w) {
			neg++
		}
	}
	return pos, neg
}

// containsWord matches w as a whole word inside s.
func containsWord(s, w string) bool {
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if field == w {
			return true
		}
	}
	return false
}
