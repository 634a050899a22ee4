// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/olegiv/shopkit/internal/auth"
)

func TestPrintPasswordHash(t *testing.T) {
	var out bytes.Buffer
	if err := printPasswordHash(strings.NewReader("correct horse\n"), &out); err != nil {
		t.Fatalf("printPasswordHash: %v", err)
	}

	hash := strings.TrimSpace(out.String())
	ok, err := auth.VerifyArgon2("correct horse", hash)
	if err != nil {
		t.Fatalf("VerifyArgon2: %v", err)
	}
	if !ok {
		t.Error("printed hash does not verify the password")
	}
}

func TestPrintPasswordHash_NoTrailingNewline(t *testing.T) {
	var out bytes.Buffer
	if err := printPasswordHash(strings.NewReader("s3cret"), &out); err != nil {
		t.Fatalf("printPasswordHash: %v", err)
	}
	if ok, _ := auth.VerifyArgon2("s3cret", strings.TrimSpace(out.String())); !ok {
		t.Error("printed hash does not verify the password")
	}
}

func TestPrintPasswordHash_Empty(t *testing.T) {
	var out bytes.Buffer
	if err := printPasswordHash(strings.NewReader("\n"), &out); err == nil {
		t.Error("expected error for empty password")
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}
