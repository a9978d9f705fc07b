// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package authz implements the access-level dominance and role-whitelist
// intersection algebra that gates every secret read and write (spec.md
// §4.4, §4.8, P4). It exists as a pure, independently testable mirror of
// the predicate embedded directly in store's SQL queries — the database
// is still the enforcement point, but unit tests against this package
// pin down the algebra's truth table without needing a live Postgres
// instance.
package authz

// Dominates reports whether a caller at callerLevel may act on a row
// whose access level is rowLevel. Higher numbers are more privileged
// (spec.md §3 GLOSSARY); the caller dominates the row when its level is
// at least as privileged as the row requires, i.e. callerLevel >= rowLevel.
func Dominates(callerLevel, rowLevel int32) bool {
	return callerLevel >= rowLevel
}

// RoleIntersects reports whether callerRoles and rowWhitelist share at
// least one role. An empty rowWhitelist means the row carries no role
// restriction and is visible to any caller who dominates it (spec.md
// §4.4: "an empty whitelist imposes no role restriction").
func RoleIntersects(callerRoles, rowWhitelist []string) bool {
	if len(rowWhitelist) == 0 {
		return true
	}
	allowed := make(map[string]struct{}, len(rowWhitelist))
	for _, role := range rowWhitelist {
		allowed[role] = struct{}{}
	}
	for _, role := range callerRoles {
		if _, ok := allowed[role]; ok {
			return true
		}
	}
	return false
}

// Allows is the full authorization predicate: a caller may act on a row
// only when it both dominates the row's access level and intersects its
// role whitelist. Both the Postgres query builders in store and the
// in-memory backend evaluate exactly this algebra, so behavior is
// identical across storage backends (spec.md §9).
func Allows(callerLevel int32, callerRoles []string, rowLevel int32, rowWhitelist []string) bool {
	return Dominates(callerLevel, rowLevel) && RoleIntersects(callerRoles, rowWhitelist)
}
