// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

/*
Package recommend provides rule-based song recommendations.

The engine runs a fixed, prioritised sequence of catalog lookups for a
user and concatenates the results:

 1. Songs of the genre most common among the user's favorites
 2. Songs of each of the user's most favorited singers
 3. Songs of the next ranked genres, while the list is short
 4. The newest songs, while the list is still short

Favorited songs are never suggested and no song appears twice. Users with
no favorites receive the newest songs. All caps come from Config.

# Usage

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger, store)
	if err != nil {
	    return err
	}
	result, err := engine.Recommend(ctx, userID)

The DataProvider interface keeps this package free of any dependency on the
database package; *database.DB implements it.
*/
package recommend
