// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

/*
Package cache provides a thread-safe in-memory cache with TTL expiration.

The API uses it for the statistics endpoints. Aggregations over the whole
catalog are computed once per TTL and the cache is cleared whenever a
write request succeeds, so a client never reads totals older than its own
last write.

	statsCache := cache.New(30 * time.Second)
	key := cache.GenerateKey(r.URL.Path, r.URL.Query())
	if data, ok := statsCache.Get(key); ok {
	    // serve cached result
	}
	statsCache.Set(key, result)

Values are stored as interface{}; callers assert back to the type they
stored. Hit, miss and eviction counts are available through GetStats and
HitRate.
*/
package cache
