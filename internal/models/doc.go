// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

/*
Package models defines the data structures shared by the store, the
recommendation engine and the HTTP layer.

Catalog structs carry both db tags (for sqlx row mapping) and json tags
(for the API projection). Derived fields such as songs_count or
singer_name are computed by the store queries, not persisted.

Model Categories:

1. Catalog:
  - User, Singer, Album, Song, Genre
  - SongGenre, Favorite, Playlist, PlaylistSong

2. Aggregates:
  - StatsOverview, TopSinger, TopSong, GenreCount, DailyActivity, NationalityCount
  - GenreAffinity, SingerAffinity (recommendation inputs)

3. API envelope:
  - APIResponse, Metadata, APIError
*/
package models
