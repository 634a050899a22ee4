// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DefaultsPass(t *testing.T) {
	assert.Nil(t, Validate(Default()))
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
		key    string
		msg    string
	}{
		{"short business name", func(r *Record) { r.BusinessName = "A" }, "businessName", "Enter a business name."},
		{"short hero title", func(r *Record) { r.HeroTitle = "" }, "heroTitle", "Enter a hero title."},
		{"short subtitle", func(r *Record) { r.HeroSubtitle = "abc" }, "heroSubtitle", "Enter a longer hero subtitle."},
		{"empty logo", func(r *Record) { r.LogoImage = "" }, "logoImage", "Use a valid logo image path, URL, or upload."},
		{"bad hero image", func(r *Record) { r.HeroImage = "coffee.jpg" }, "heroImage", "Use a valid hero image path, URL, or upload."},
		{"bad menu image", func(r *Record) { r.MenuSectionImage = "ftp://x/y.png" }, "menuSectionImage", "Use a valid menu image path, URL, or upload."},
		{"bad messenger", func(r *Record) { r.Contact.MessengerURL = "m.me/shop" }, "contact.messengerUrl", "Messenger link must be a valid URL."},
		{"bad facebook", func(r *Record) { r.SocialLinks.Facebook = "" }, "socialLinks.facebook", "Facebook link must be a valid URL."},
		{"bad instagram", func(r *Record) { r.SocialLinks.Instagram = "javascript:alert(1)" }, "socialLinks.instagram", "Instagram link must be a valid URL."},
		{"bad tiktok", func(r *Record) { r.SocialLinks.TikTok = "tiktok" }, "socialLinks.tiktok", "TikTok link must be a valid URL."},
		{"map not a url", func(r *Record) { r.MapEmbedURL = "maps" }, "mapEmbedUrl", "Map embed URL must be a valid URL."},
		{"map not embeddable", func(r *Record) { r.MapEmbedURL = "https://example.com" }, "mapEmbedUrl", "Use a Google Maps embed URL."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Default()
			tt.mutate(&r)

			verr := Validate(r)
			require.NotNil(t, verr)
			assert.Equal(t, tt.msg, verr.Fields[tt.key])
			assert.Len(t, verr.Fields, 1)
			assert.Equal(t, MsgFixFields, verr.Summary)
		})
	}
}

func TestValidate_MenuItems(t *testing.T) {
	r := Default()
	r.MenuItems = nil
	verr := Validate(r)
	require.NotNil(t, verr)
	assert.Equal(t, MsgMenuItems, verr.Summary)
	assert.True(t, verr.Has("menuItems"))

	r = Default()
	r.MenuItems[2].Price = ""
	verr = Validate(r)
	require.NotNil(t, verr)
	assert.Equal(t, MsgMenuItems, verr.Summary)
	assert.True(t, verr.Has("menuItems[2].price"))
}

func TestValidate_SummaryPriority(t *testing.T) {
	r := Default()
	r.BusinessName = ""
	r.Hours = []HoursEntry{}
	verr := Validate(r)
	require.NotNil(t, verr)
	assert.Equal(t, MsgHours, verr.Summary)
	assert.True(t, verr.Has("businessName"))

	r.MenuItems = []MenuItem{}
	verr = Validate(r)
	require.NotNil(t, verr)
	assert.Equal(t, MsgMenuItems, verr.Summary)
	assert.Equal(t, MsgMenuItems, verr.Error())
}

func TestValidate_NoBlankRowsAfterCollect(t *testing.T) {
	r := Default()
	r.MenuItems = CollectMenuItems([]MenuItem{{}, {Name: "  "}})
	verr := Validate(r)
	require.NotNil(t, verr)
	assert.Equal(t, "Add at least one menu item with both name and price.", verr.Summary)
}

func TestIsValidURL(t *testing.T) {
	tests := map[string]bool{
		"https://example.com":      true,
		"http://example.com/a?b=c": true,
		"HTTPS://EXAMPLE.COM":      true,
		"ftp://example.com":        false,
		"example.com":              false,
		"https://":                 false,
		"":                         false,
		"mailto:a@b.c":             false,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsValidURL(in), in)
	}
}

func TestIsValidImageReference(t *testing.T) {
	tests := map[string]bool{
		"data:image/png;base64,AAAA":    true,
		"images/logo.jpg":               true,
		"./logo.png":                    true,
		"../assets/logo.png":            true,
		"https://cdn.example.com/a.jpg": true,
		"logo.jpg":                      false,
		"/images/logo.jpg":              false,
		"":                              false,
		"data:text/html,hi":             false,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsValidImageReference(in), in)
	}
}

func TestIsMapsEmbed(t *testing.T) {
	assert.True(t, IsMapsEmbed("https://www.google.com/maps?q=x&output=embed"))
	assert.True(t, IsMapsEmbed("https://www.GOOGLE.com.ph/maps/place/x"))
	assert.True(t, IsMapsEmbed("https://maps.example.org/?pb=!1m18"))
	assert.False(t, IsMapsEmbed("https://example.com"))
}
