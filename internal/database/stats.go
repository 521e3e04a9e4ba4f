// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/musicdb/internal/models"
)

// Ranking sizes for the statistics endpoints.
const (
	TopSingersLimit     = 10
	TopSongsLimit       = 10
	PopularSingersLimit = 5
	ActivityDays        = 7
)

// utcMidnight returns 00:00 UTC of the day containing t.
func utcMidnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// GetStatsOverview returns total row counts and rows created today (UTC).
func (db *DB) GetStatsOverview(ctx context.Context) (overview *models.StatsOverview, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "stats_overview", start, err) }(time.Now())

	var out models.StatsOverview
	totals := []struct {
		table string
		dest  *int64
	}{
		{"users", &out.BasicStats.Users},
		{"singers", &out.BasicStats.Singers},
		{"albums", &out.BasicStats.Albums},
		{"songs", &out.BasicStats.Songs},
		{"favorites", &out.BasicStats.Favorites},
		{"playlists", &out.BasicStats.Playlists},
	}
	for _, t := range totals {
		if err = db.conn.GetContext(ctx, t.dest, "SELECT COUNT(*) FROM "+t.table); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", t.table, err)
		}
	}

	from := utcMidnight(time.Now())
	to := from.Add(24 * time.Hour)
	today := []struct {
		table string
		dest  *int64
	}{
		{"users", &out.TodayStats.Users},
		{"songs", &out.TodayStats.Songs},
		{"favorites", &out.TodayStats.Favorites},
	}
	for _, t := range today {
		if *t.dest, err = countWhere(ctx, db.conn, t.table, "created_at >= ? AND created_at < ?", from, to); err != nil {
			return nil, err
		}
	}

	return &out, nil
}

// GetTopSingers ranks every singer by favorites on their songs, including
// singers without any.
func (db *DB) GetTopSingers(ctx context.Context) (singers []models.TopSinger, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "stats_top_singers", start, err) }(time.Now())

	singers = []models.TopSinger{}
	err = db.conn.SelectContext(ctx, &singers, `
		SELECT s.id, s.name, s.avatar, COUNT(f.id) AS favorite_count
		FROM singers s
		LEFT JOIN songs so ON so.singer_id = s.id
		LEFT JOIN favorites f ON f.song_id = so.id
		GROUP BY s.id, s.name, s.avatar
		ORDER BY favorite_count DESC, s.id ASC
		LIMIT ?`, TopSingersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank singers: %w", err)
	}
	return singers, nil
}

// GetTopSongs ranks songs by favorite count.
func (db *DB) GetTopSongs(ctx context.Context) (songs []models.TopSong, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "stats_top_songs", start, err) }(time.Now())

	songs = []models.TopSong{}
	err = db.conn.SelectContext(ctx, &songs, `
		SELECT so.id, so.name, so.duration, si.name AS singer_name, al.name AS album_name,
			COUNT(f.id) AS favorite_count
		FROM songs so
		JOIN singers si ON si.id = so.singer_id
		LEFT JOIN albums al ON al.id = so.album_id
		LEFT JOIN favorites f ON f.song_id = so.id
		GROUP BY so.id, so.name, so.duration, si.name, al.name
		ORDER BY favorite_count DESC, so.id ASC
		LIMIT ?`, TopSongsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank songs: %w", err)
	}
	return songs, nil
}

// GetGenreDistribution counts linked songs for every genre.
func (db *DB) GetGenreDistribution(ctx context.Context) (genres []models.GenreCount, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "stats_genres", start, err) }(time.Now())

	genres = []models.GenreCount{}
	err = db.conn.SelectContext(ctx, &genres, `
		SELECT g.name, COUNT(sg.id) AS song_count
		FROM genres g
		LEFT JOIN song_genres sg ON sg.genre_id = g.id
		GROUP BY g.id, g.name
		ORDER BY song_count DESC, g.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute genre distribution: %w", err)
	}
	return genres, nil
}

// GetUserActivity returns favorites per UTC day for the last seven days,
// oldest first, today included.
func (db *DB) GetUserActivity(ctx context.Context) (days []models.DailyActivity, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "stats_activity", start, err) }(time.Now())

	today := utcMidnight(time.Now())
	from := today.AddDate(0, 0, -(ActivityDays - 1))
	to := today.AddDate(0, 0, 1)

	var stamps []time.Time
	if err = db.conn.SelectContext(ctx, &stamps,
		`SELECT created_at FROM favorites WHERE created_at >= ? AND created_at < ?`, from, to); err != nil {
		return nil, fmt.Errorf("failed to load recent favorites: %w", err)
	}

	days = make([]models.DailyActivity, ActivityDays)
	index := make(map[string]int, ActivityDays)
	for i := range days {
		date := from.AddDate(0, 0, i).Format(models.DateLayout)
		days[i] = models.DailyActivity{Date: date}
		index[date] = i
	}
	for _, ts := range stamps {
		if i, ok := index[ts.UTC().Format(models.DateLayout)]; ok {
			days[i].Favorites++
		}
	}
	return days, nil
}

// GetSingerNationality counts singers per non-empty nationality.
func (db *DB) GetSingerNationality(ctx context.Context) (rows []models.NationalityCount, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "stats_nationality", start, err) }(time.Now())

	rows = []models.NationalityCount{}
	err = db.conn.SelectContext(ctx, &rows, `
		SELECT nationality, COUNT(*) AS singer_count
		FROM singers
		WHERE nationality IS NOT NULL AND nationality <> ''
		GROUP BY nationality
		ORDER BY singer_count DESC, nationality ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to compute nationality distribution: %w", err)
	}
	return rows, nil
}

// GetPopularSingers returns the singers with the most favorited songs.
// Singers without favorites are excluded.
func (db *DB) GetPopularSingers(ctx context.Context) (singers []models.PopularSinger, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "stats_popular_singers", start, err) }(time.Now())

	singers = []models.PopularSinger{}
	err = db.conn.SelectContext(ctx, &singers, `
		SELECT s.id, s.name, s.avatar, s.nationality, COUNT(f.id) AS favorite_count
		FROM singers s
		JOIN songs so ON so.singer_id = s.id
		JOIN favorites f ON f.song_id = so.id
		GROUP BY s.id, s.name, s.avatar, s.nationality
		ORDER BY favorite_count DESC, s.id ASC
		LIMIT ?`, PopularSingersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank popular singers: %w", err)
	}
	return singers, nil
}
