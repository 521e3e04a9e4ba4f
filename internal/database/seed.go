// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/musicdb/internal/logging"
	"github.com/tomtom215/musicdb/internal/models"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "123456"

// PasswordHasher hashes a plaintext password for storage.
type PasswordHasher func(password string) (string, error)

// SeedResult reports what Seed created.
type SeedResult struct {
	Skipped   bool `json:"skipped"`
	Users     int  `json:"users"`
	Singers   int  `json:"singers"`
	Albums    int  `json:"albums"`
	Genres    int  `json:"genres"`
	Songs     int  `json:"songs"`
	Favorites int  `json:"favorites"`
	Playlists int  `json:"playlists"`
}

type seedSinger struct {
	name        string
	nationality string
	birthDate   string
	albums      []seedAlbum
}

type seedAlbum struct {
	name        string
	releaseDate string
	songs       []seedSong
}

type seedSong struct {
	name     string
	duration int64
	genres   []string
}

var seedGenres = []struct{ name, description string }{
	{"Pop", "Popular music"},
	{"Rock", "Rock music"},
	{"R&B", "Rhythm and blues"},
	{"Hip-Hop", "Hip-hop and rap"},
	{"Folk", "Folk and acoustic"},
	{"Electronic", "Electronic dance music"},
}

var seedCatalog = []seedSinger{
	{"Jay Chou", "China", "1979-01-18", []seedAlbum{
		{"Fantasy", "2001-09-14", []seedSong{
			{"Simple Love", 270, []string{"Pop", "R&B"}},
			{"Nunchucks", 274, []string{"Hip-Hop"}},
		}},
		{"Common Jasmine Orange", "2004-08-03", []seedSong{
			{"Qi Li Xiang", 299, []string{"Pop"}},
		}},
	}},
	{"JJ Lin", "Singapore", "1981-03-27", []seedAlbum{
		{"Little Big Man", "2007-06-08", []seedSong{
			{"Jiang Nan", 268, []string{"Pop"}},
			{"Cao Cao", 242, []string{"Pop", "Rock"}},
		}},
	}},
	{"Taylor Swift", "United States", "1989-12-13", []seedAlbum{
		{"1989", "2014-10-27", []seedSong{
			{"Blank Space", 231, []string{"Pop"}},
			{"Shake It Off", 219, []string{"Pop", "Electronic"}},
		}},
		{"Folklore", "2020-07-24", []seedSong{
			{"Cardigan", 239, []string{"Folk"}},
		}},
	}},
	{"Ed Sheeran", "United Kingdom", "1991-02-17", []seedAlbum{
		{"Divide", "2017-03-03", []seedSong{
			{"Shape of You", 233, []string{"Pop", "Electronic"}},
			{"Perfect", 263, []string{"Pop", "Folk"}},
		}},
	}},
	{"Beyond", "China", "", []seedAlbum{
		{"Life Contact", "1993-05-01", []seedSong{
			{"Boundless Oceans, Vast Skies", 323, []string{"Rock"}},
		}},
	}},
	{"IU", "South Korea", "1993-05-16", []seedAlbum{
		{"Palette", "2017-04-21", []seedSong{
			{"Palette", 217, []string{"Pop", "R&B"}},
		}},
	}},
}

// Seed populates an empty catalog with sample data: an admin account
// (admin / 123456), two regular users, singers with albums and songs,
// genres, favorites and a playlist. A catalog that already has users is
// left untouched. Everything is written in one transaction, so a failed or
// canceled seed leaves the catalog as it was.
func (db *DB) Seed(ctx context.Context, hash PasswordHasher) (*SeedResult, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	n, err := countWhere(ctx, db.conn, "users", "1 = 1")
	if err != nil {
		return nil, err
	}
	if n > 0 {
		logging.Info().Int64("users", n).Msg("Catalog already populated, skipping seed")
		return &SeedResult{Skipped: true}, nil
	}

	passwordHash, err := hash(SeedPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	var res *SeedResult
	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		res, err = seedCatalogTx(ctx, tx, passwordHash)
		return err
	})
	if err != nil {
		return nil, err
	}

	logging.Info().
		Int("users", res.Users).
		Int("singers", res.Singers).
		Int("songs", res.Songs).
		Int("favorites", res.Favorites).
		Msg("Catalog seeded")

	return res, nil
}

func seedCatalogTx(ctx context.Context, tx *sqlx.Tx, passwordHash string) (*SeedResult, error) {
	res := &SeedResult{}

	var userIDs []int64
	for _, u := range []models.NewUser{
		{Username: "admin", Email: "admin@music.com", Avatar: "/avatars/admin.jpg", Role: models.RoleAdmin},
		{Username: "user2", Email: "user2@music.com", Avatar: "/avatars/user2.jpg", Role: models.RoleUser},
		{Username: "user3", Email: "user3@music.com", Avatar: "/avatars/user3.jpg", Role: models.RoleUser},
	} {
		u.PasswordHash = passwordHash
		created, err := createUser(ctx, tx, u)
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", u.Username, err)
		}
		userIDs = append(userIDs, created.ID)
		res.Users++
	}

	genreIDs := make(map[string]int64, len(seedGenres))
	for _, g := range seedGenres {
		desc := g.description
		created, err := createGenre(ctx, tx, models.NewGenre{Name: g.name, Description: &desc})
		if err != nil {
			return nil, fmt.Errorf("failed to seed genre %s: %w", g.name, err)
		}
		genreIDs[g.name] = created.ID
		res.Genres++
	}

	var songIDs []int64
	for _, s := range seedCatalog {
		singer, err := createSinger(ctx, tx, seedSingerInput(s))
		if err != nil {
			return nil, fmt.Errorf("failed to seed singer %s: %w", s.name, err)
		}
		res.Singers++

		for _, a := range s.albums {
			release := a.releaseDate
			cover := fmt.Sprintf("/albums/%s.jpg", a.name)
			album, err := createAlbum(ctx, tx, models.NewAlbum{
				Name:        a.name,
				Cover:       &cover,
				ReleaseDate: &release,
				SingerID:    singer.ID,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to seed album %s: %w", a.name, err)
			}
			res.Albums++

			for _, song := range a.songs {
				duration := song.duration
				ids := make([]int64, 0, len(song.genres))
				for _, name := range song.genres {
					ids = append(ids, genreIDs[name])
				}
				created, err := createSong(ctx, tx, models.NewSong{
					Name:        song.name,
					Duration:    &duration,
					ReleaseDate: &release,
					SingerID:    singer.ID,
					AlbumID:     &album.ID,
					GenreIDs:    ids,
				})
				if err != nil {
					return nil, fmt.Errorf("failed to seed song %s: %w", song.name, err)
				}
				songIDs = append(songIDs, created.ID)
				res.Songs++
			}
		}
	}

	// user2 favors the first four songs, user3 every third song.
	favorites := map[int64][]int64{userIDs[1]: songIDs[:4]}
	for i := 0; i < len(songIDs); i += 3 {
		favorites[userIDs[2]] = append(favorites[userIDs[2]], songIDs[i])
	}
	for _, userID := range userIDs[1:] {
		for _, songID := range favorites[userID] {
			if _, err := createFavorite(ctx, tx, userID, songID); err != nil {
				return nil, fmt.Errorf("failed to seed favorite: %w", err)
			}
			res.Favorites++
		}
	}

	desc := "Songs for a rainy afternoon"
	playlist, err := createPlaylist(ctx, tx, models.NewPlaylist{
		Name:        "Chill Mix",
		Description: &desc,
		UserID:      userIDs[1],
		IsPublic:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed playlist: %w", err)
	}
	res.Playlists++
	for _, songID := range songIDs[len(songIDs)-3:] {
		if _, err := addPlaylistSong(ctx, tx, playlist.ID, songID); err != nil {
			return nil, fmt.Errorf("failed to seed playlist entry: %w", err)
		}
	}

	return res, nil
}

func seedSingerInput(s seedSinger) models.NewSinger {
	avatar := fmt.Sprintf("/singers/%s.jpg", s.name)
	desc := fmt.Sprintf("About %s", s.name)
	nationality := s.nationality
	in := models.NewSinger{
		Name:        s.name,
		Avatar:      &avatar,
		Description: &desc,
		Nationality: &nationality,
	}
	if s.birthDate != "" {
		birth := s.birthDate
		in.BirthDate = &birth
	}
	return in
}
