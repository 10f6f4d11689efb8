// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"errors"
	"testing"
)

func TestApplyRemote_WinsOnceOverDefault(t *testing.T) {
	p := New("dark", nil, nil)

	if !p.ApplyRemote("light") {
		t.Fatal("first remote value did not apply")
	}
	if p.Theme() != "light" {
		t.Errorf("theme = %q, want light", p.Theme())
	}
	// A second remote value (stale refetch) does not churn the theme.
	if p.ApplyRemote("solarized") {
		t.Error("second remote value applied")
	}
	if p.Theme() != "light" {
		t.Errorf("theme = %q after stale refetch", p.Theme())
	}
}

func TestApplyRemote_NeverOverridesUserChoice(t *testing.T) {
	p := New("dark", nil, nil)
	p.Set("light")

	if p.ApplyRemote("dark") {
		t.Error("remote value overrode explicit choice")
	}
	if p.Theme() != "light" {
		t.Errorf("theme = %q, want light", p.Theme())
	}
}

func TestSet_WriteThroughFailureIsNonFatal(t *testing.T) {
	var saved []string
	failing := func(theme string) error {
		saved = append(saved, theme)
		return errors.New("backend down")
	}
	p := New("dark", failing, nil)

	p.Set("light")
	if len(saved) != 1 || saved[0] != "light" {
		t.Errorf("write-through calls = %v", saved)
	}
	// Local value sticks despite the failure.
	if p.Theme() != "light" {
		t.Errorf("theme = %q, want light", p.Theme())
	}
}
