package testutil

import (
	apprivals "github.com/rivalwatch/rival-watch-service/internal/app/rivals"
	"github.com/rivalwatch/rival-watch-service/internal/events"
	"github.com/rivalwatch/rival-watch-service/internal/rivals"
	"github.com/rivalwatch/rival-watch-service/internal/store"
)

// NewFeedStore builds an in-memory store preloaded with feed.
func NewFeedStore(feed events.Feed) *store.MemoryStore {
	ms := store.NewMemoryStore()
	ms.SetFeed(feed)
	return ms
}

// NewRivalService builds a rivals service over an in-memory set.
func NewRivalService(initial ...string) (*apprivals.Service, *rivals.MemoryStore) {
	rs := rivals.NewMemoryStore(initial...)
	return apprivals.NewService(rs), rs
}
