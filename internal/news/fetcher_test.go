package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type FetcherSuite struct {
	suite.Suite
}

func TestFetcherSuite(t *testing.T) {
	suite.Run(t, new(FetcherSuite))
}

func rssFeed(itemCount int) string {
	items := ""
	for i := 0; i < itemCount; i++ {
		items += fmt.Sprintf(`<item>
			<title>Headline %d - Publisher %d</title>
			<link>https://example.com/%d</link>
			<pubDate>Mon, 31 Aug 2026 10:00:00 GMT</pubDate>
			<description>Body %d</description>
		</item>`, i, i, i, i)
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
		<rss version="2.0"><channel><title>search</title>` + items + `</channel></rss>`
}

func (s *FetcherSuite) newFetcher(srv *httptest.Server) *Fetcher {
	f := NewFetcher(5 * time.Second)
	f.baseURL = srv.URL
	return f
}

func (s *FetcherSuite) TestFetchNormalizesItems() {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFeed(2))
	}))
	defer srv.Close()

	articles, err := s.newFetcher(srv).Fetch(context.Background(), "Argentina economic crisis", 20)
	s.Require().NoError(err)
	s.Equal("Argentina economic crisis", gotQuery)

	s.Require().Len(articles, 2)
	s.Equal("Headline 0", articles[0].Title)
	s.Equal("Publisher 0", articles[0].Source)
	s.Equal("https://example.com/0", articles[0].Link)
	s.Equal("Body 0", articles[0].Description)
	s.NotEmpty(articles[0].Published)
}

func (s *FetcherSuite) TestFetchHonorsRequestedLimit() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed(12))
	}))
	defer srv.Close()

	f := s.newFetcher(srv)

	articles, err := f.Fetch(context.Background(), "query", 5)
	s.Require().NoError(err)
	s.Len(articles, 5)

	articles, err = f.Fetch(context.Background(), "query", 30)
	s.Require().NoError(err)
	s.Len(articles, 12, "a limit beyond the feed size returns everything")
}

func (s *FetcherSuite) TestFetchUpstreamError() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := s.newFetcher(srv).Fetch(context.Background(), "query", 20)
	s.Error(err)
}

func (s *FetcherSuite) TestTitleWithoutPublisherSuffix() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
			<rss version="2.0"><channel><title>search</title>
			<item><title>Bare headline</title><link>https://example.com</link></item>
			</channel></rss>`)
	}))
	defer srv.Close()

	articles, err := s.newFetcher(srv).Fetch(context.Background(), "query", 20)
	s.Require().NoError(err)
	s.Require().Len(articles, 1)
	s.Equal("Bare headline", articles[0].Title)
	s.Equal("Google News", articles[0].Source)
}

func (s *FetcherSuite) TestDescriptionTagsStripped() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
			<rss version="2.0"><channel><title>search</title>
			<item>
				<title>Headline - Publisher</title>
				<link>https://example.com</link>
				<description>&lt;a href="https://example.com"&gt;Peso slides&lt;/a&gt;&lt;font&gt; as inflation bites&lt;/font&gt;</description>
			</item>
			</channel></rss>`)
	}))
	defer srv.Close()

	articles, err := s.newFetcher(srv).Fetch(context.Background(), "query", 20)
	s.Require().NoError(err)
	s.Require().Len(articles, 1)
	s.Equal("Peso slides as inflation bites", articles[0].Description)
}

func (s *FetcherSuite) TestTruncate() {
	s.Equal("short", truncate("short", 300))

	long := ""
	for i := 0; i < 40; i++ {
		long += "0123456789"
	}
	got := truncate(long, 300)
	s.Len([]rune(got), 303)
	s.Equal("...", got[len(got)-3:])
}
