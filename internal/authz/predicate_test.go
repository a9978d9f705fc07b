// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authz

import "testing"

func TestDominates(t *testing.T) {
	cases := []struct {
		name        string
		callerLevel int32
		rowLevel    int32
		want        bool
	}{
		{"caller more privileged", 5, 0, true},
		{"caller equally privileged", 5, 5, true},
		{"caller less privileged", 0, 5, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Dominates(tc.callerLevel, tc.rowLevel); got != tc.want {
				t.Errorf("Dominates(%d, %d) = %v, want %v", tc.callerLevel, tc.rowLevel, got, tc.want)
			}
		})
	}
}

func TestRoleIntersects(t *testing.T) {
	cases := []struct {
		name         string
		callerRoles  []string
		rowWhitelist []string
		want         bool
	}{
		{"empty whitelist allows anyone", []string{"intern"}, nil, true},
		{"disjoint roles denied", []string{"intern"}, []string{"admin", "ops"}, false},
		{"shared role allowed", []string{"intern", "ops"}, []string{"admin", "ops"}, true},
		{"caller has no roles, whitelist non-empty", nil, []string{"admin"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RoleIntersects(tc.callerRoles, tc.rowWhitelist); got != tc.want {
				t.Errorf("RoleIntersects(%v, %v) = %v, want %v", tc.callerRoles, tc.rowWhitelist, got, tc.want)
			}
		})
	}
}

func TestAllows(t *testing.T) {
	cases := []struct {
		name         string
		callerLevel  int32
		callerRoles  []string
		rowLevel     int32
		rowWhitelist []string
		want         bool
	}{
		{"dominates and no whitelist", 10, nil, 5, nil, true},
		{"dominates but wrong role", 10, []string{"intern"}, 5, []string{"admin"}, false},
		{"right role but does not dominate", 1, []string{"admin"}, 5, []string{"admin"}, false},
		{"dominates and matching role", 10, []string{"admin"}, 5, []string{"admin"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Allows(tc.callerLevel, tc.callerRoles, tc.rowLevel, tc.rowWhitelist)
			if got != tc.want {
				t.Errorf("Allows(...) = %v, want %v", got, tc.want)
			}
		})
	}
}
