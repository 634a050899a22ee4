// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestNew(t *testing.T) {
	info := New("v1.0.0", "abc1234", "2026-01-30T12:00:00Z")

	if info.Version != "v1.0.0" {
		t.Errorf("Version = %q, want %q", info.Version, "v1.0.0")
	}
	if info.GitCommit != "abc1234" {
		t.Errorf("GitCommit = %q, want %q", info.GitCommit, "abc1234")
	}
	if info.BuildTime != "2026-01-30T12:00:00Z" {
		t.Errorf("BuildTime = %q, want %q", info.BuildTime, "2026-01-30T12:00:00Z")
	}
}

func TestNew_Defaults(t *testing.T) {
	info := New("", "", "")

	if info.Version != "dev" {
		t.Errorf("Version = %q, want dev", info.Version)
	}
	if info.GitCommit != "unknown" || info.BuildTime != "unknown" {
		t.Errorf("unexpected defaults: %+v", info)
	}
}

func TestInfo_String(t *testing.T) {
	got := New("v1.2.3", "abc1234", "2026-01-30T12:00:00Z").String()
	want := "v1.2.3 (commit: abc1234, built: 2026-01-30T12:00:00Z)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
