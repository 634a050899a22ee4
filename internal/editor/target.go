// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import (
	"fmt"
	"strconv"
	"strings"
)

// ImageTarget names an image field by its form input name.
type ImageTarget string

// Fixed image targets. Menu rows use MenuItemTarget.
const (
	TargetLogo        ImageTarget = "logoImage"
	TargetHero        ImageTarget = "heroImage"
	TargetMenuSection ImageTarget = "menuSectionImage"
)

// MenuItemTarget returns the image target of menu row i.
func MenuItemTarget(i int) ImageTarget {
	return ImageTarget(rowField(i, "image"))
}

// ParseImageTarget validates s as an image target name.
func ParseImageTarget(s string) (ImageTarget, error) {
	switch t := ImageTarget(s); t {
	case TargetLogo, TargetHero, TargetMenuSection:
		return t, nil
	}
	if i, sub, ok := parseRowField(s); ok && sub == "image" {
		return MenuItemTarget(i), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}

// Row reports the menu row of a row image target.
func (t ImageTarget) Row() (int, bool) {
	i, sub, ok := parseRowField(string(t))
	return i, ok && sub == "image"
}

func rowField(i int, sub string) string {
	return "menuItems[" + strconv.Itoa(i) + "]." + sub
}

// parseRowField splits "menuItems[3].price" into 3 and "price".
func parseRowField(name string) (int, string, bool) {
	rest, ok := strings.CutPrefix(name, "menuItems[")
	if !ok {
		return 0, "", false
	}
	idx, sub, ok := strings.Cut(rest, "].")
	if !ok {
		return 0, "", false
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 {
		return 0, "", false
	}
	switch sub {
	case "name", "description", "price", "image":
		return i, sub, true
	}
	return 0, "", false
}
