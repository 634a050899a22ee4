// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrCorruptDocument is returned by Merge when the stored bytes are not a JSON object.
var ErrCorruptDocument = errors.New("stored document is not a JSON object")

// Merge completes a possibly partial stored document with defaults.
//
// Top-level and nested string fields (contact, socialLinks, theme) overlay the
// defaults one field at a time when the stored value is a JSON string. The
// features, menuItems and hours sequences are atomic: a non-empty array whose
// every element has the right shape replaces the default in full, anything
// else keeps the whole default sequence.
//
// When raw is not a JSON object, Merge returns a copy of defaults together
// with an error wrapping ErrCorruptDocument.
func Merge(raw []byte, defaults Record) (Record, error) {
	out := defaults.Clone()

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return out, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if doc == nil {
		return out, ErrCorruptDocument
	}

	groups := make(map[string]map[string]json.RawMessage)
	for _, f := range out.TextFields() {
		group, name, nested := strings.Cut(f.Path, ".")
		if !nested {
			overlayString(doc[group], f.Value)
			continue
		}
		obj, seen := groups[group]
		if !seen {
			obj = decodeObject(doc[group])
			groups[group] = obj
		}
		if obj != nil {
			overlayString(obj[name], f.Value)
		}
	}

	if features, ok := decodeFeatures(doc["features"]); ok {
		out.Features = features
	}
	if items, ok := decodeMenuItems(doc["menuItems"]); ok {
		out.MenuItems = items
	}
	if hours, ok := decodeHours(doc["hours"]); ok {
		out.Hours = hours
	}

	return out, nil
}

// overlayString writes raw into dst when raw holds a JSON string.
func overlayString(raw json.RawMessage, dst *string) {
	if len(raw) == 0 || isNull(raw) {
		return
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return
	}
	*dst = s
}

// decodeObject returns the members of raw, or nil when raw is not an object.
func decodeObject(raw json.RawMessage) map[string]json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

// decodeArray returns the elements of a non-empty JSON array.
func decodeArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || len(elems) == 0 {
		return nil, false
	}
	return elems, true
}

func decodeFeatures(raw json.RawMessage) ([]string, bool) {
	elems, ok := decodeArray(raw)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if isNull(e) {
			return nil, false
		}
		var s string
		if err := json.Unmarshal(e, &s); err != nil {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func decodeMenuItems(raw json.RawMessage) ([]MenuItem, bool) {
	elems, ok := decodeArray(raw)
	if !ok {
		return nil, false
	}
	out := make([]MenuItem, 0, len(elems))
	for _, e := range elems {
		obj := decodeObject(e)
		if obj == nil {
			return nil, false
		}
		var item MenuItem
		overlayString(obj["name"], &item.Name)
		overlayString(obj["description"], &item.Description)
		overlayString(obj["price"], &item.Price)
		overlayString(obj["image"], &item.Image)
		out = append(out, item)
	}
	return out, true
}

func decodeHours(raw json.RawMessage) ([]HoursEntry, bool) {
	elems, ok := decodeArray(raw)
	if !ok {
		return nil, false
	}
	out := make([]HoursEntry, 0, len(elems))
	for _, e := range elems {
		obj := decodeObject(e)
		if obj == nil {
			return nil, false
		}
		var entry HoursEntry
		overlayString(obj["day"], &entry.Day)
		overlayString(obj["time"], &entry.Time)
		out = append(out, entry)
	}
	return out, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
