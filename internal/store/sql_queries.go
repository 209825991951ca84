// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-bookmarks/models"
	sq "github.com/Masterminds/squirrel"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	userColumns = []string{
		"user_id",
		"username",
		"email",
		"password_hash",
		"is_active",
		"created_at",
		"updated_at",
	}

	refreshTokenColumns = []string{
		"id",
		"user_id",
		"token",
		"expires_at",
		"created_at",
	}
)

var (
	usersTable         = models.User{}.TableName()
	refreshTokensTable = models.RefreshToken{}.TableName()
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func toSQL(b sq.Sqlizer) (string, []any, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildCreateUserQuery(user models.User) (string, []any, error) {
	return toSQL(psql.
		Insert(usersTable).
		Columns("username", "email", "password_hash").
		Values(user.Username, user.Email, user.PasswordHash).
		Suffix(returning(userColumns)))
}

func buildFindUserByUsernameQuery(username string) (string, []any, error) {
	return toSQL(psql.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"username": username}))
}

func buildFindActiveUserByIDQuery(userID int64) (string, []any, error) {
	return toSQL(psql.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"is_active": true}))
}

func buildUpdateUserEmailQuery(userID int64, email string, now time.Time) (string, []any, error) {
	return toSQL(psql.
		Update(usersTable).
		Set("email", email).
		Set("updated_at", now).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"is_active": true}).
		Suffix(returning(userColumns)))
}

func buildUpdateUserPasswordQuery(userID int64, passwordHash string, now time.Time) (string, []any, error) {
	return toSQL(psql.
		Update(usersTable).
		Set("password_hash", passwordHash).
		Set("updated_at", now).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"is_active": true}))
}

func buildDeactivateUserQuery(userID int64, now time.Time) (string, []any, error) {
	return toSQL(psql.
		Update(usersTable).
		Set("is_active", false).
		Set("updated_at", now).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"is_active": true}))
}

// ── refresh tokens ────────────────────────────────────────────────────────────

func buildSaveRefreshTokenQuery(token models.RefreshToken) (string, []any, error) {
	return toSQL(psql.
		Insert(refreshTokensTable).
		Columns("user_id", "token", "expires_at", "created_at").
		Values(token.UserID, token.Token, token.ExpiresAt, token.CreatedAt).
		Suffix("ON CONFLICT (user_id, token) DO NOTHING"))
}

func buildFindValidRefreshTokenQuery(token string, now time.Time) (string, []any, error) {
	return toSQL(psql.
		Select(refreshTokenColumns...).
		From(refreshTokensTable).
		Where(sq.Eq{"token": token}).
		Where(sq.Gt{"expires_at": now}).
		OrderBy("expires_at DESC").
		Limit(1))
}

func buildDeleteRefreshTokenQuery(token string) (string, []any, error) {
	return toSQL(psql.
		Delete(refreshTokensTable).
		Where(sq.Eq{"token": token}))
}

func buildDeleteUserRefreshTokensQuery(userID int64) (string, []any, error) {
	return toSQL(psql.
		Delete(refreshTokensTable).
		Where(sq.Eq{"user_id": userID}))
}

func buildDeleteExpiredRefreshTokensQuery(now time.Time) (string, []any, error) {
	return toSQL(psql.
		Delete(refreshTokensTable).
		Where(sq.Lt{"expires_at": now}))
}
