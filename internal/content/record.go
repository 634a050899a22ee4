// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content defines the site content record, its compiled-in defaults,
// the merge-with-defaults loader, the save-time validation rules, and the
// Model that persists the record as one JSON document in a key-value store.
package content

// Record is the single aggregate of all editable site content.
// JSON names are the keys of the stored document.
type Record struct {
	BusinessName        string `json:"businessName" validate:"min=2"`
	Tagline             string `json:"tagline"`
	LogoImage           string `json:"logoImage" validate:"imageref"`
	HeroEyebrow         string `json:"heroEyebrow"`
	HeroTitle           string `json:"heroTitle" validate:"min=2"`
	HeroSubtitle        string `json:"heroSubtitle" validate:"min=4"`
	HeroImage           string `json:"heroImage" validate:"imageref"`
	MenuSectionImage    string `json:"menuSectionImage" validate:"imageref"`
	MenuSectionTitle    string `json:"menuSectionTitle"`
	MenuSectionSubtitle string `json:"menuSectionSubtitle"`
	Announcement        string `json:"announcement"`
	AboutTitle          string `json:"aboutTitle"`
	AboutText           string `json:"aboutText"`
	FeatureTitle        string `json:"featureTitle"`
	HoursTitle          string `json:"hoursTitle"`
	LocationTitle       string `json:"locationTitle"`
	LocationText        string `json:"locationText"`
	MapEmbedURL         string `json:"mapEmbedUrl" validate:"httpurl,mapsembed"`
	ContactTitle        string `json:"contactTitle"`
	CTATitle            string `json:"cmsCtaTitle"`
	CTAText             string `json:"cmsCtaText"`
	CTAButton           string `json:"cmsCtaButton"`
	MenuCTAButton       string `json:"menuCtaButton"`
	VisitCTAButton      string `json:"visitCtaButton"`

	Features  []string     `json:"features"`
	MenuItems []MenuItem   `json:"menuItems" validate:"min=1,dive"`
	Hours     []HoursEntry `json:"hours" validate:"min=1"`

	Contact     Contact     `json:"contact"`
	SocialLinks SocialLinks `json:"socialLinks"`
	Theme       Theme       `json:"theme"`
}

// MenuItem is one product card. Items have no identity beyond their position.
type MenuItem struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       string `json:"price" validate:"required"`
	Image       string `json:"image"`
}

// HoursEntry is one opening-hours line.
type HoursEntry struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// Contact holds the storefront contact block.
type Contact struct {
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	MessengerURL string `json:"messengerUrl" validate:"httpurl"`
}

// SocialLinks holds the footer social profile links.
type SocialLinks struct {
	Facebook  string `json:"facebook" validate:"httpurl"`
	Instagram string `json:"instagram" validate:"httpurl"`
	TikTok    string `json:"tiktok" validate:"httpurl"`
}

// Theme holds the two brand colors applied as CSS custom properties.
type Theme struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
}

// Clone returns a deep copy of r so that callers can mutate sequences freely.
func (r Record) Clone() Record {
	c := r
	if r.Features != nil {
		c.Features = append([]string(nil), r.Features...)
	}
	if r.MenuItems != nil {
		c.MenuItems = append([]MenuItem(nil), r.MenuItems...)
	}
	if r.Hours != nil {
		c.Hours = append([]HoursEntry(nil), r.Hours...)
	}
	return c
}

// TextField addresses one string field of a Record by its document path.
// Nested fields use a dotted path such as "contact.email".
type TextField struct {
	Path  string
	Value *string
}

// TextFields returns every string field of r in form order. The pointers
// refer into r, so writes through them update the record.
func (r *Record) TextFields() []TextField {
	return []TextField{
		{"businessName", &r.BusinessName},
		{"tagline", &r.Tagline},
		{"logoImage", &r.LogoImage},
		{"heroEyebrow", &r.HeroEyebrow},
		{"heroTitle", &r.HeroTitle},
		{"heroSubtitle", &r.HeroSubtitle},
		{"heroImage", &r.HeroImage},
		{"menuSectionImage", &r.MenuSectionImage},
		{"menuSectionTitle", &r.MenuSectionTitle},
		{"menuSectionSubtitle", &r.MenuSectionSubtitle},
		{"announcement", &r.Announcement},
		{"aboutTitle", &r.AboutTitle},
		{"aboutText", &r.AboutText},
		{"featureTitle", &r.FeatureTitle},
		{"hoursTitle", &r.HoursTitle},
		{"locationTitle", &r.LocationTitle},
		{"locationText", &r.LocationText},
		{"mapEmbedUrl", &r.MapEmbedURL},
		{"contactTitle", &r.ContactTitle},
		{"cmsCtaTitle", &r.CTATitle},
		{"cmsCtaText", &r.CTAText},
		{"cmsCtaButton", &r.CTAButton},
		{"menuCtaButton", &r.MenuCTAButton},
		{"visitCtaButton", &r.VisitCTAButton},
		{"contact.address", &r.Contact.Address},
		{"contact.phone", &r.Contact.Phone},
		{"contact.email", &r.Contact.Email},
		{"contact.messengerUrl", &r.Contact.MessengerURL},
		{"socialLinks.facebook", &r.SocialLinks.Facebook},
		{"socialLinks.instagram", &r.SocialLinks.Instagram},
		{"socialLinks.tiktok", &r.SocialLinks.TikTok},
		{"theme.primary", &r.Theme.Primary},
		{"theme.accent", &r.Theme.Accent},
	}
}
