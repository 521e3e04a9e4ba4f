// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/musicdb/internal/models"
)

const userSelect = `
SELECT u.id, u.username, u.email, u.password_hash, u.avatar, u.role, u.created_at, u.updated_at,
	(SELECT COUNT(*) FROM favorites f WHERE f.user_id = u.id) AS favorites_count
FROM users u`

func getUser(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.User, error) {
	var u models.User
	err := sqlx.GetContext(ctx, q, &u, userSelect+` WHERE u.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &u, nil
}

// ListUsers returns every non-admin user ordered by id.
func (db *DB) ListUsers(ctx context.Context) (users []models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "users", start, err) }(time.Now())

	users = []models.User{}
	if err = db.conn.SelectContext(ctx, &users, userSelect+` WHERE u.role <> ? ORDER BY u.id`, models.RoleAdmin); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser returns one user by id.
func (db *DB) GetUser(ctx context.Context, id int64) (u *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "users", start, err) }(time.Now())

	return getUser(ctx, db.conn, id)
}

// GetUserByUsername returns the user with an exact username match,
// including the password hash for credential checks.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (u *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("select", "users", start, err) }(time.Now())

	var user models.User
	err = db.conn.GetContext(ctx, &user, userSelect+` WHERE u.username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a user after checking username and email uniqueness.
func (db *DB) CreateUser(ctx context.Context, in models.NewUser) (u *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("insert", "users", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		u, err = createUser(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func createUser(ctx context.Context, tx *sqlx.Tx, in models.NewUser) (*models.User, error) {
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if err := checkUserUnique(ctx, tx, in.Username, in.Email, 0); err != nil {
		return nil, err
	}

	now := nowUTC()
	id, err := insertReturningID(ctx, tx, `
		INSERT INTO users (username, email, password_hash, avatar, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		in.Username, in.Email, in.PasswordHash, in.Avatar, in.Role, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return getUser(ctx, tx, id)
}

// checkUserUnique rejects a username or email already held by a user other
// than exceptID.
func checkUserUnique(ctx context.Context, q sqlx.QueryerContext, username, email string, exceptID int64) error {
	n, err := countWhere(ctx, q, "users", "username = ? AND id <> ?", username, exceptID)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflict("Username already exists")
	}

	n, err = countWhere(ctx, q, "users", "email = ? AND id <> ?", email, exceptID)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflict("Email already in use")
	}
	return nil
}

// UpdateUser applies a partial update and refreshes updated_at.
func (db *DB) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (u *models.User, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("update", "users", start, err) }(time.Now())

	err = db.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := getUser(ctx, tx, id)
		if err != nil {
			return err
		}

		if patch.Username != nil {
			current.Username = *patch.Username
		}
		if patch.Email != nil {
			current.Email = *patch.Email
		}
		if patch.PasswordHash != nil {
			current.PasswordHash = *patch.PasswordHash
		}
		if patch.Avatar != nil {
			current.Avatar = *patch.Avatar
		}

		if err := checkUserUnique(ctx, tx, current.Username, current.Email, id); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE users SET username = ?, email = ?, password_hash = ?, avatar = ?, updated_at = ?
			WHERE id = ?`,
			current.Username, current.Email, current.PasswordHash, current.Avatar, nowUTC(), id); err != nil {
			return fmt.Errorf("failed to update user %d: %w", id, err)
		}

		u, err = getUser(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes a user together with their favorites, their playlists
// and the entries of those playlists.
func (db *DB) DeleteUser(ctx context.Context, id int64) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer func(start time.Time) { observe("delete", "users", start, err) }(time.Now())

	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		ok, err := rowExists(ctx, tx, "users", id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("User not found")
		}

		for _, stmt := range []string{
			`DELETE FROM favorites WHERE user_id = ?`,
			`DELETE FROM playlist_songs WHERE playlist_id IN (SELECT id FROM playlists WHERE user_id = ?)`,
			`DELETE FROM playlists WHERE user_id = ?`,
			`DELETE FROM users WHERE id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("failed to delete user %d: %w", id, err)
			}
		}
		return nil
	})
}
