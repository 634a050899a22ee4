// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

// DefaultStorageKey is the document key used when none is configured.
const DefaultStorageKey = "coffeeShopCMSData"

// Default returns a fresh, fully populated record. Every call allocates new
// sequences, so the result can be modified without affecting later calls.
func Default() Record {
	return Record{
		BusinessName:        "Your Coffee Shop",
		Tagline:             "Fresh brews, welcoming space, every day.",
		LogoImage:           "images/logo.jpg",
		HeroEyebrow:         "Crafted daily",
		HeroTitle:           "Welcome to Your Coffee Shop",
		HeroSubtitle:        "Customize this website easily with the built-in CMS.",
		HeroImage:           "images/coffee.jpg",
		MenuSectionImage:    "images/menu.jpg",
		MenuSectionTitle:    "Featured Menu",
		MenuSectionSubtitle: "Update items anytime from the CMS panel.",
		Announcement:        "Open daily • Fresh pastries • Friendly service",
		AboutTitle:          "About Our Shop",
		AboutText:           "Share your story, highlight your specialties, and keep your website updated anytime.",
		FeatureTitle:        "Why Customers Love Us",
		HoursTitle:          "Opening Hours",
		LocationTitle:       "Location Guide",
		LocationText:        "Use the map below to find us easily and plan your visit.",
		MapEmbedURL:         "https://www.google.com/maps?q=coffee%20shop&output=embed",
		ContactTitle:        "Contact",
		CTATitle:            "Need changes?",
		CTAText:             "Use the built-in CMS to edit this website in minutes.",
		CTAButton:           "Manage Content",
		MenuCTAButton:       "View Menu",
		VisitCTAButton:      "Visit Us",
		Features: []string{
			"Single-page storefront layout",
			"CMS editor for non-technical staff",
			"Custom colors and branding",
			"Flexible menu and schedule",
		},
		MenuItems: []MenuItem{
			{
				Name:        "Cappuccino",
				Description: "Velvety milk foam with rich espresso",
				Price:       "₱120",
				Image:       "images/cappucinno.jpg",
			},
			{
				Name:        "Matcha Latte",
				Description: "Ceremonial matcha, lightly sweetened",
				Price:       "₱150",
				Image:       "images/matcha_latte.jpg",
			},
			{
				Name:        "Iced Americano",
				Description: "Bold espresso over cold water and ice",
				Price:       "₱110",
				Image:       "images/iced_americano.jpg",
			},
			{
				Name:        "Blueberry Muffin",
				Description: "Baked fresh daily with real blueberries",
				Price:       "₱110",
				Image:       "images/blueberry_muffin.jpg",
			},
		},
		Hours: []HoursEntry{
			{Day: "Monday - Friday", Time: "7:00 AM - 8:00 PM"},
			{Day: "Saturday", Time: "8:00 AM - 9:00 PM"},
			{Day: "Sunday", Time: "8:00 AM - 6:00 PM"},
		},
		Contact: Contact{
			Address:      "123 Main Street, Your City",
			Phone:        "+00 000 000 0000",
			Email:        "hello@yourcoffeeshop.com",
			MessengerURL: "https://m.me/yourcoffeeshop",
		},
		SocialLinks: SocialLinks{
			Facebook:  "https://facebook.com",
			Instagram: "https://instagram.com",
			TikTok:    "https://tiktok.com",
		},
		Theme: Theme{
			Primary: "#6a3f27",
			Accent:  "#c17c47",
		},
	}
}
