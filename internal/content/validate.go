// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"errors"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validation messages.
const (
	MsgMenuItems = "Add at least one menu item with both name and price."
	MsgHours     = "Add at least one opening hours entry."
	MsgFixFields = "Please fix the highlighted fields and try again."
)

// fieldMessages maps a field key to its message, and "key|tag" to a
// tag-specific message where one field carries more than one rule.
var fieldMessages = map[string]string{
	"businessName":          "Enter a business name.",
	"heroTitle":             "Enter a hero title.",
	"heroSubtitle":          "Enter a longer hero subtitle.",
	"logoImage":             "Use a valid logo image path, URL, or upload.",
	"heroImage":             "Use a valid hero image path, URL, or upload.",
	"menuSectionImage":      "Use a valid menu image path, URL, or upload.",
	"contact.messengerUrl":  "Messenger link must be a valid URL.",
	"socialLinks.facebook":  "Facebook link must be a valid URL.",
	"socialLinks.instagram": "Instagram link must be a valid URL.",
	"socialLinks.tiktok":    "TikTok link must be a valid URL.",
	"mapEmbedUrl|httpurl":   "Map embed URL must be a valid URL.",
	"mapEmbedUrl|mapsembed": "Use a Google Maps embed URL.",
	"hours":                 MsgHours,
}

var mapsEmbedPattern = regexp.MustCompile(`(?i)google\.[^/]+/maps|output=embed|pb=!`)

// ValidationError reports every failed rule of a candidate record.
type ValidationError struct {
	// Fields maps field keys ("heroTitle", "contact.messengerUrl",
	// "menuItems[1].price") to messages.
	Fields  map[string]string
	Summary string
}

func (e *ValidationError) Error() string {
	return e.Summary
}

// Has reports whether key has a field error.
func (e *ValidationError) Has(key string) bool {
	_, ok := e.Fields[key]
	return ok
}

var recordValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		return IsValidURL(fl.Field().String())
	}))
	must(v.RegisterValidation("imageref", func(fl validator.FieldLevel) bool {
		return IsValidImageReference(fl.Field().String())
	}))
	must(v.RegisterValidation("mapsembed", func(fl validator.FieldLevel) bool {
		return IsMapsEmbed(fl.Field().String())
	}))
	return v
})

// Validate checks r against the save-time rules and returns nil when r may be
// persisted.
func Validate(r Record) *ValidationError {
	err := recordValidator().Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: map[string]string{}, Summary: MsgFixFields}
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	menuFailed, hoursFailed := false, false
	for _, fe := range verrs {
		key := fieldKey(fe.Namespace())
		switch {
		case strings.HasPrefix(key, "menuItems"):
			menuFailed = true
			out.Fields[key] = MsgMenuItems
		case key == "hours":
			hoursFailed = true
			out.Fields[key] = MsgHours
		default:
			out.Fields[key] = messageFor(key, fe.Tag())
		}
	}

	switch {
	case menuFailed:
		out.Summary = MsgMenuItems
	case hoursFailed:
		out.Summary = MsgHours
	default:
		out.Summary = MsgFixFields
	}
	return out
}

// fieldKey drops the root struct name from a validator namespace.
func fieldKey(ns string) string {
	_, key, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}
	return key
}

func messageFor(key, tag string) string {
	if msg, ok := fieldMessages[key+"|"+tag]; ok {
		return msg
	}
	if msg, ok := fieldMessages[key]; ok {
		return msg
	}
	return MsgFixFields
}

// IsValidURL reports whether s is an absolute http or https URL with a host.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidImageReference reports whether s can be used as an image source:
// a data:image/ payload, a relative path under images/, ./ or ../, or an
// http(s) URL.
func IsValidImageReference(s string) bool {
	if s == "" {
		return false
	}
	for _, prefix := range []string{"data:image/", "images/", "./", "../"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return IsValidURL(s)
}

// IsMapsEmbed reports whether s looks like an embeddable Google Maps URL.
func IsMapsEmbed(s string) bool {
	return mapsEmbedPattern.MatchString(s)
}
