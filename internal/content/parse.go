// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"strings"
)

// Placeholders for half-filled hours lines.
const (
	DefaultHoursDay  = "Day"
	DefaultHoursTime = "Closed"
)

// ParseFeatures turns textarea text into a feature list: one entry per
// non-blank line, trimmed, in order.
func ParseFeatures(text string) []string {
	features := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			features = append(features, line)
		}
	}
	return features
}

// FormatFeatures is the inverse of ParseFeatures.
func FormatFeatures(features []string) string {
	return strings.Join(features, "\n")
}

// ParseHours turns "day | time" lines into entries. Each line splits once on
// the first "|"; a blank day becomes "Day" and a blank or missing time
// becomes "Closed".
func ParseHours(text string) []HoursEntry {
	hours := []HoursEntry{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		day, tm, _ := strings.Cut(line, "|")
		entry := HoursEntry{
			Day:  strings.TrimSpace(day),
			Time: strings.TrimSpace(tm),
		}
		if entry.Day == "" {
			entry.Day = DefaultHoursDay
		}
		if entry.Time == "" {
			entry.Time = DefaultHoursTime
		}
		hours = append(hours, entry)
	}
	return hours
}

// FormatHours renders entries as "day | time" lines.
func FormatHours(hours []HoursEntry) string {
	lines := make([]string, len(hours))
	for i, h := range hours {
		lines[i] = h.Day + " | " + h.Time
	}
	return strings.Join(lines, "\n")
}

// CollectMenuItems trims every field of every row and keeps the rows that
// have at least one non-empty field.
func CollectMenuItems(rows []MenuItem) []MenuItem {
	items, _ := CollectMenuRows(rows)
	return items
}

// CollectMenuRows is CollectMenuItems that also returns, for each kept item,
// the index of the row it came from.
func CollectMenuRows(rows []MenuItem) ([]MenuItem, []int) {
	items := []MenuItem{}
	var from []int
	for i, row := range rows {
		item := MenuItem{
			Name:        strings.TrimSpace(row.Name),
			Description: strings.TrimSpace(row.Description),
			Price:       strings.TrimSpace(row.Price),
			Image:       strings.TrimSpace(row.Image),
		}
		if item == (MenuItem{}) {
			continue
		}
		items = append(items, item)
		from = append(from, i)
	}
	return items, from
}
