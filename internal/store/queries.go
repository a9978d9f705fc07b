// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// authorizedSecretPredicate embeds the dominance and role-whitelist
// intersection algebra (spec.md §4.4, §4.8) directly in the WHERE clause,
// so an unauthorized row is filtered out by Postgres before it ever
// reaches application code. This is what makes ErrNotFound existence-
// opaque (P7): there is no separate "found but forbidden" branch to leak
// through a timing or error-shape side channel.
func authorizedSecretPredicate(caller Caller) sq.Sqlizer {
	return sq.And{
		sq.Expr("access_level <= ?", caller.AccessLevel),
		sq.Or{
			sq.Expr("cardinality(role_whitelist) = 0"),
			sq.Expr("role_whitelist && ?", caller.Roles),
		},
	}
}

func buildCreateSecretQuery(key string, nonce uint64, ciphertext []byte, tags, roleWhitelist []string, accessLevel int32) (string, []any, error) {
	return psql.Insert("secrets").
		Columns("key", "nonce", "ciphertext", "tags", "role_whitelist", "access_level").
		Values(key, nonce, ciphertext, tags, roleWhitelist, accessLevel).
		ToSql()
}

func buildUpdateTagsQuery(caller Caller, key string, tags []string) (string, []any, error) {
	return psql.Update("secrets").
		Set("tags", tags).
		Where(sq.Eq{"key": key}).
		Where(authorizedSecretPredicate(caller)).
		ToSql()
}

func buildDeleteSecretQuery(caller Caller, key string) (string, []any, error) {
	return psql.Delete("secrets").
		Where(sq.Eq{"key": key}).
		Where(authorizedSecretPredicate(caller)).
		ToSql()
}

func buildViewPlainSecretQuery(caller Caller, key string) (string, []any, error) {
	return psql.Select("key", "nonce", "ciphertext", "tags", "access_level", "role_whitelist", "created_at").
		From("secrets").
		Where(sq.Eq{"key": key}).
		Where(authorizedSecretPredicate(caller)).
		ToSql()
}

func buildListByCallerQuery(caller Caller, tagFilter string) (string, []any, error) {
	builder := psql.Select("key", "tags", "access_level", "role_whitelist", "created_at").
		From("secrets").
		Where(authorizedSecretPredicate(caller)).
		OrderBy("key")

	if tagFilter != "" {
		builder = builder.Where(sq.Expr("? = ANY(tags)", tagFilter))
	}
	return builder.ToSql()
}

func buildListAllAdminQuery() (string, []any, error) {
	return psql.Select("key", "nonce", "ciphertext", "tags", "access_level", "role_whitelist", "created_at").
		From("secrets").
		OrderBy("key").
		ToSql()
}

func buildRekeyRowQuery(key string, nonce uint64, ciphertext []byte) (string, []any, error) {
	return psql.Update("secrets").
		Set("nonce", nonce).
		Set("ciphertext", ciphertext).
		Where(sq.Eq{"key": key}).
		ToSql()
}

func buildCreateUserQuery(username, passwordHash string, accessLevel int32, roles []string) (string, []any, error) {
	return psql.Insert("users").
		Columns("username", "password_hash", "access_level", "roles").
		Values(username, passwordHash, accessLevel, roles).
		Suffix("RETURNING id, created_at").
		ToSql()
}

func buildGetUserQuery(username string) (string, []any, error) {
	return psql.Select("id", "username", "password_hash", "access_level", "roles", "created_at").
		From("users").
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildUpdateUserQuery(username string, accessLevel *int32, roles []string) (string, []any, error) {
	builder := psql.Update("users").Where(sq.Eq{"username": username})
	if accessLevel != nil {
		builder = builder.Set("access_level", *accessLevel)
	}
	if roles != nil {
		builder = builder.Set("roles", roles)
	}
	return builder.Suffix("RETURNING id, username, password_hash, access_level, roles, created_at").ToSql()
}

func buildDeleteUserQuery(username string) (string, []any, error) {
	return psql.Delete("users").
		Where(sq.Eq{"username": username}).
		ToSql()
}
