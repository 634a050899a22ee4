// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMerge_PartialTopLevel(t *testing.T) {
	got, err := Merge([]byte(`{"businessName":"Brew Bar"}`), Default())
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	want := Default()
	want.BusinessName = "Brew Bar"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merged record mismatch (-want +got):\n%s", diff)
	}
	if got.Contact.Email != "hello@yourcoffeeshop.com" {
		t.Errorf("contact.email = %q, want default", got.Contact.Email)
	}
}

func TestMerge_EmptyObjectYieldsDefaults(t *testing.T) {
	got, err := Merge([]byte(`{}`), Default())
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_ScalarTypes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"string overlays", `{"tagline":"Hello"}`, "Hello"},
		{"empty string honored", `{"tagline":""}`, ""},
		{"null keeps default", `{"tagline":null}`, Default().Tagline},
		{"number keeps default", `{"tagline":42}`, Default().Tagline},
		{"object keeps default", `{"tagline":{"a":"b"}}`, Default().Tagline},
		{"array keeps default", `{"tagline":["x"]}`, Default().Tagline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Merge([]byte(tt.doc), Default())
			if err != nil {
				t.Fatalf("Merge: %v", err)
			}
			if got.Tagline != tt.want {
				t.Errorf("Tagline = %q, want %q", got.Tagline, tt.want)
			}
		})
	}
}

func TestMerge_NestedFieldByField(t *testing.T) {
	doc := `{
		"contact": {"phone": "+63 912 345 6789"},
		"theme": {"accent": "#112233", "primary": 7},
		"socialLinks": "not an object"
	}`
	got, err := Merge([]byte(doc), Default())
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	def := Default()
	wantContact := def.Contact
	wantContact.Phone = "+63 912 345 6789"
	if diff := cmp.Diff(wantContact, got.Contact); diff != "" {
		t.Errorf("contact mismatch (-want +got):\n%s", diff)
	}
	if got.Theme.Primary != def.Theme.Primary {
		t.Errorf("theme.primary = %q, want default %q", got.Theme.Primary, def.Theme.Primary)
	}
	if got.Theme.Accent != "#112233" {
		t.Errorf("theme.accent = %q, want #112233", got.Theme.Accent)
	}
	if diff := cmp.Diff(def.SocialLinks, got.SocialLinks); diff != "" {
		t.Errorf("socialLinks should stay default (-want +got):\n%s", diff)
	}
}

func TestMerge_SequencesWholeReplaceOrDefault(t *testing.T) {
	def := Default()

	tests := []struct {
		name     string
		doc      string
		features []string
		items    []MenuItem
		hours    []HoursEntry
	}{
		{
			name:     "missing",
			doc:      `{}`,
			features: def.Features, items: def.MenuItems, hours: def.Hours,
		},
		{
			name:     "null",
			doc:      `{"features":null,"menuItems":null,"hours":null}`,
			features: def.Features, items: def.MenuItems, hours: def.Hours,
		},
		{
			name:     "empty",
			doc:      `{"features":[],"menuItems":[],"hours":[]}`,
			features: def.Features, items: def.MenuItems, hours: def.Hours,
		},
		{
			name:     "wrong type",
			doc:      `{"features":"a","menuItems":{"name":"x"},"hours":3}`,
			features: def.Features, items: def.MenuItems, hours: def.Hours,
		},
		{
			name:     "one malformed element",
			doc:      `{"features":["ok",1],"menuItems":[{"name":"A","price":"1"},"bad"],"hours":[{"day":"Mon"},null]}`,
			features: def.Features, items: def.MenuItems, hours: def.Hours,
		},
		{
			name:     "well formed replaces in full",
			doc:      `{"features":["Wifi"],"menuItems":[{"name":"Tea","price":"₱90"}],"hours":[{"day":"Daily","time":"9-5"}]}`,
			features: []string{"Wifi"},
			items:    []MenuItem{{Name: "Tea", Price: "₱90"}},
			hours:    []HoursEntry{{Day: "Daily", Time: "9-5"}},
		},
		{
			name:     "non-string item fields become empty",
			doc:      `{"menuItems":[{"name":"Tea","price":90,"image":null}]}`,
			features: def.Features,
			items:    []MenuItem{{Name: "Tea"}},
			hours:    def.Hours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Merge([]byte(tt.doc), Default())
			if err != nil {
				t.Fatalf("Merge: %v", err)
			}
			if diff := cmp.Diff(tt.features, got.Features); diff != "" {
				t.Errorf("features (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.items, got.MenuItems); diff != "" {
				t.Errorf("menuItems (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.hours, got.Hours); diff != "" {
				t.Errorf("hours (-want +got):\n%s", diff)
			}
		})
	}
}

// Sequences are replaced as a unit while nested records merge per field.
// A stored single menu item does not pick up the remaining default items,
// but a stored single contact field does keep the other contact defaults.
func TestMerge_AsymmetricSequencesAndNestedRecords(t *testing.T) {
	doc := `{"menuItems":[{"name":"Only","price":"₱1"}],"contact":{"email":"a@b.c"}}`
	got, err := Merge([]byte(doc), Default())
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	if len(got.MenuItems) != 1 {
		t.Errorf("len(menuItems) = %d, want 1", len(got.MenuItems))
	}
	if got.Contact.Address != Default().Contact.Address {
		t.Errorf("contact.address = %q, want default", got.Contact.Address)
	}
	if got.Contact.Email != "a@b.c" {
		t.Errorf("contact.email = %q, want a@b.c", got.Contact.Email)
	}
}

func TestMerge_UnknownKeysIgnored(t *testing.T) {
	got, err := Merge([]byte(`{"version":3,"extra":{"x":1},"businessName":"Kiosk"}`), Default())
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if got.BusinessName != "Kiosk" {
		t.Errorf("BusinessName = %q", got.BusinessName)
	}
}

func TestMerge_Corrupt(t *testing.T) {
	for _, doc := range []string{`not json`, `null`, `[1,2]`, `"text"`, `{"a":`} {
		t.Run(doc, func(t *testing.T) {
			got, err := Merge([]byte(doc), Default())
			if !errors.Is(err, ErrCorruptDocument) {
				t.Fatalf("err = %v, want ErrCorruptDocument", err)
			}
			if diff := cmp.Diff(Default(), got); diff != "" {
				t.Errorf("corrupt document should yield defaults (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMerge_DoesNotAliasDefaults(t *testing.T) {
	def := Default()
	got, err := Merge([]byte(`{}`), def)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	got.MenuItems[0].Name = "changed"
	got.Features[0] = "changed"
	if def.MenuItems[0].Name == "changed" || def.Features[0] == "changed" {
		t.Error("Merge result shares sequences with the defaults")
	}
}

// Random subsets of top-level fields always produce a fully populated record.
func TestMerge_RandomSubsetsFullyPopulated(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	base := Default()
	paths := base.TextFields()

	for i := 0; i < 200; i++ {
		doc := map[string]any{}
		nested := map[string]map[string]any{}
		for _, f := range paths {
			if rng.Intn(2) == 0 {
				continue
			}
			value := "v" + strings.Repeat("x", rng.Intn(5)+1)
			group, name, ok := strings.Cut(f.Path, ".")
			if !ok {
				doc[group] = value
				continue
			}
			if nested[group] == nil {
				nested[group] = map[string]any{}
			}
			nested[group][name] = value
		}
		for g, m := range nested {
			doc[g] = m
		}

		raw, err := json.Marshal(doc)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		got, err := Merge(raw, Default())
		if err != nil {
			t.Fatalf("Merge(%s): %v", raw, err)
		}

		for _, f := range got.TextFields() {
			if *f.Value == "" {
				t.Fatalf("case %d: %s is empty after merging %s", i, f.Path, raw)
			}
		}
		if len(got.Features) == 0 || len(got.MenuItems) == 0 || len(got.Hours) == 0 {
			t.Fatalf("case %d: empty sequence after merging %s", i, raw)
		}
	}
}
