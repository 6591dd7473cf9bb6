// Package models defines the news feature's wire types.
package models

import "time"

// Article is one crisis-related news item, normalized from an RSS entry.
type Article struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Published   string `json:"published"`
	Source      string `json:"source"`
	Description string `json:"description"`
}

// Response is the payload for news queries. Cached reports whether the
// response came from the cache rather than a live fetch; FetchedAt is the
// time of the fetch that produced it, so a cached response keeps the
// original timestamp.
type Response struct {
	Country      string    `json:"country,omitempty"`
	CrisisType   string    `json:"type"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
	FetchedAt    time.Time `json:"fetchedAt"`
	Cached       bool      `json:"cached"`
	Demo         bool      `json:"demo,omitempty"`
}
