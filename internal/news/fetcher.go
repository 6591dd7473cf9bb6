package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"crisiswatch/internal/news/models"
)

const (
	googleNewsURL     = "https://news.google.com/rss/search"
	maxDescriptionLen = 300
)

// Fetcher pulls crisis headlines from the Google News RSS search feed. A
// shared rate limiter keeps cache-miss bursts from hammering the upstream.
type Fetcher struct {
	parser  *gofeed.Parser
	limiter *rate.Limiter
	baseURL string
}

func NewFetcher(timeout time.Duration) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = "crisiswatch/1.0"
	return &Fetcher{
		parser:  parser,
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		baseURL: googleNewsURL,
	}
}

// Fetch runs a feed search for the query and returns up to limit normalized
// articles; the feed itself decides how many are available below that.
func (f *Fetcher) Fetch(ctx context.Context, query string, limit int) ([]models.Article, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	feed, err := f.parser.ParseURLWithContext(f.searchURL(query), ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch news feed: %w", err)
	}

	articles := make([]models.Article, 0, limit)
	for _, item := range feed.Items {
		if len(articles) == limit {
			break
		}
		articles = append(articles, toArticle(item))
	}
	return articles, nil
}

func (f *Fetcher) searchURL(query string) string {
	q := url.Values{}
	q.Set("q", query)
	q.Set("hl", "en-US")
	q.Set("gl", "US")
	q.Set("ceid", "US:en")
	return f.baseURL + "?" + q.Encode()
}

// toArticle normalizes a feed item. Google News appends the publisher to the
// title after a final " - " separator, so the source is split off there.
func toArticle(item *gofeed.Item) models.Article {
	title := item.Title
	source := "Google News"
	if idx := strings.LastIndex(item.Title, " - "); idx > 0 {
		title = item.Title[:idx]
		source = item.Title[idx+3:]
	}

	return models.Article{
		Title:       title,
		Link:        item.Link,
		Published:   item.Published,
		Source:      source,
		Description: truncate(stripTags(item.Description), maxDescriptionLen),
	}
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// stripTags removes markup from feed descriptions; the Google News feed
// wraps every summary in anchor and font tags.
func stripTags(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
