// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package storefront projects the content record into the view model of the
// public page. Project is pure; the site/storefront template renders its result.
package storefront

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/olegiv/shopkit/internal/content"
)

// Fixed storefront strings.
const (
	TitleSuffix      = " | Coffee Shop"
	EmptyMenuMessage = "No menu items yet. Add some from CMS."
	UntitledItem     = "Untitled item"
	FallbackImage    = "images/coffee.jpg"
	FullMenuTitle    = "Full Menu"
	FullMenuCard     = "View Full Menu"
	inertHref        = "#"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Image is an img src/alt pair.
type Image struct {
	Src template.URL
	Alt string
}

// MenuCard is one product card.
type MenuCard struct {
	Name        string
	Description string
	Price       string
	Image       Image
}

// HoursCard is one opening-hours card.
type HoursCard struct {
	Day  string
	Time string
}

// Social holds the footer social links.
type Social struct {
	Facebook  template.URL
	Instagram template.URL
	TikTok    template.URL
}

// Theme holds the CSS custom property values.
type Theme struct {
	Primary template.CSS
	Accent  template.CSS
}

// Modal is the full-menu image dialog.
type Modal struct {
	Title     string
	CardLabel string
	Image     Image
}

// Page is the complete storefront view model.
type Page struct {
	Title        string
	BusinessName string
	Tagline      string
	Logo         Image
	Announcement string

	HeroEyebrow  string
	HeroTitle    string
	HeroSubtitle string
	Hero         Image

	MenuSectionTitle    string
	MenuSectionSubtitle string
	MenuImage           Image
	MenuItems           []MenuCard
	// MenuEmpty is set only when there are no menu items.
	MenuEmpty string
	Modal     Modal

	AboutTitle   string
	AboutText    string
	FeatureTitle string
	Features     []string
	HoursTitle   string
	Hours        []HoursCard

	LocationTitle string
	LocationText  string
	MapURL        template.URL

	ContactTitle  string
	Address       string
	Phone         string
	PhoneHref     template.URL
	Email         string
	EmailHref     template.URL
	MessengerHref template.URL
	Social        Social

	CTATitle       string
	CTAText        string
	CTAButton      string
	MenuCTAButton  string
	VisitCTAButton string

	Theme     Theme
	Copyright string
}

// Project maps r to the storefront view model. now supplies the copyright year.
func Project(r content.Record, now time.Time) Page {
	name := r.BusinessName
	menuAlt := name + " full menu image"
	menuImage := Image{Src: imageSrc(r.MenuSectionImage, ""), Alt: menuAlt}

	p := Page{
		Title:        name + TitleSuffix,
		BusinessName: name,
		Tagline:      r.Tagline,
		Logo:         Image{Src: imageSrc(r.LogoImage, ""), Alt: name + " logo"},
		Announcement: r.Announcement,

		HeroEyebrow:  r.HeroEyebrow,
		HeroTitle:    r.HeroTitle,
		HeroSubtitle: r.HeroSubtitle,
		Hero:         Image{Src: imageSrc(r.HeroImage, ""), Alt: name + " hero image"},

		MenuSectionTitle:    r.MenuSectionTitle,
		MenuSectionSubtitle: r.MenuSectionSubtitle,
		MenuImage:           menuImage,
		Modal: Modal{
			Title:     FullMenuTitle,
			CardLabel: FullMenuCard,
			Image:     menuImage,
		},

		AboutTitle:   r.AboutTitle,
		AboutText:    r.AboutText,
		FeatureTitle: r.FeatureTitle,
		Features:     append([]string(nil), r.Features...),
		HoursTitle:   r.HoursTitle,

		LocationTitle: r.LocationTitle,
		LocationText:  r.LocationText,
		MapURL:        httpHref(r.MapEmbedURL, "about:blank"),

		ContactTitle:  r.ContactTitle,
		Address:       r.Contact.Address,
		Phone:         r.Contact.Phone,
		PhoneHref:     PhoneHref(r.Contact.Phone),
		Email:         r.Contact.Email,
		EmailHref:     EmailHref(r.Contact.Email),
		MessengerHref: httpHref(r.Contact.MessengerURL, inertHref),
		Social: Social{
			Facebook:  httpHref(r.SocialLinks.Facebook, inertHref),
			Instagram: httpHref(r.SocialLinks.Instagram, inertHref),
			TikTok:    httpHref(r.SocialLinks.TikTok, inertHref),
		},

		CTATitle:       r.CTATitle,
		CTAText:        r.CTAText,
		CTAButton:      r.CTAButton,
		MenuCTAButton:  r.MenuCTAButton,
		VisitCTAButton: r.VisitCTAButton,

		Theme:     themeOf(r.Theme),
		Copyright: fmt.Sprintf("© %d %s. All rights reserved.", now.Year(), name),
	}

	for _, item := range r.MenuItems {
		card := MenuCard{
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
		}
		if card.Name == "" {
			card.Name = UntitledItem
		}
		card.Image = Image{Src: imageSrc(item.Image, FallbackImage), Alt: card.Name}
		p.MenuItems = append(p.MenuItems, card)
	}
	if len(p.MenuItems) == 0 {
		p.MenuEmpty = EmptyMenuMessage
	}

	for _, h := range r.Hours {
		card := HoursCard{Day: h.Day, Time: h.Time}
		if card.Day == "" {
			card.Day = content.DefaultHoursDay
		}
		if card.Time == "" {
			card.Time = content.DefaultHoursTime
		}
		p.Hours = append(p.Hours, card)
	}

	return p
}

// PhoneHref returns a tel: link with all whitespace removed, or "#" for an empty number.
func PhoneHref(phone string) template.URL {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
	if compact == "" {
		return inertHref
	}
	return template.URL("tel:" + compact)
}

// EmailHref returns a mailto: link, or "#" for an empty address.
func EmailHref(email string) template.URL {
	if email == "" {
		return inertHref
	}
	return template.URL("mailto:" + email)
}

// httpHref returns s when it is an http(s) URL and fallback otherwise.
func httpHref(s string, fallback template.URL) template.URL {
	if !content.IsValidURL(s) {
		return fallback
	}
	return template.URL(s)
}

// imageSrc returns s when it is a usable image reference and fallback otherwise.
func imageSrc(s, fallback string) template.URL {
	if !content.IsValidImageReference(s) {
		return template.URL(fallback)
	}
	return template.URL(s)
}

func themeOf(t content.Theme) Theme {
	def := content.Default().Theme
	primary, accent := t.Primary, t.Accent
	if !hexColor.MatchString(primary) {
		primary = def.Primary
	}
	if !hexColor.MatchString(accent) {
		accent = def.Accent
	}
	return Theme{Primary: template.CSS(primary), Accent: template.CSS(accent)}
}
