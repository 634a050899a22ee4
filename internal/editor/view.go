// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import (
	"strings"
)

// Upload button labels.
const (
	LabelUpload = "Upload Image"
	LabelChange = "Change Selected Image"
)

// Input kinds rendered by the editor template.
const (
	KindText     = "text"
	KindTextarea = "textarea"
	KindURL      = "url"
	KindEmail    = "email"
	KindTel      = "tel"
	KindColor    = "color"
	KindImage    = "image"
)

// View is the data rendered by the editor template.
type View struct {
	Sections  []Section
	Rows      []RowView
	Status    Status
	Errors    map[string]string
	Unsaved   bool
	MaxRows   int
	CanAddRow bool
}

// Section is one fieldset of the editor form.
type Section struct {
	Title  string
	Fields []FieldView
	// Menu marks the section that also renders the menu rows.
	Menu bool
}

// FieldView is one labelled input.
type FieldView struct {
	Name  string
	Label string
	Kind  string
	Value string
	Help  string
	Error string
	Image *ImageView
}

// ImageView holds the preview and upload state of an image field.
type ImageView struct {
	Target      ImageTarget
	Preview     string
	PreviewAlt  string
	FileName    string
	UploadLabel string
}

// RowView is one menu row of the form.
type RowView struct {
	Index       int
	Name        FieldView
	Description FieldView
	Price       FieldView
	Image       FieldView
}

type fieldSpec struct {
	name, label, kind, help string
	previewAlt              string
}

type sectionSpec struct {
	title  string
	menu   bool
	fields []fieldSpec
}

var layout = []sectionSpec{
	{title: "Business", fields: []fieldSpec{
		{name: "businessName", label: "Business name", kind: KindText},
		{name: "tagline", label: "Tagline", kind: KindText},
		{name: "logoImage", label: "Logo image path/URL", kind: KindImage, previewAlt: "Logo preview"},
	}},
	{title: "Hero", fields: []fieldSpec{
		{name: "heroEyebrow", label: "Eyebrow", kind: KindText},
		{name: "heroTitle", label: "Hero title", kind: KindText},
		{name: "heroSubtitle", label: "Hero subtitle", kind: KindTextarea},
		{name: "heroImage", label: "Hero image path/URL", kind: KindImage, previewAlt: "Hero preview"},
	}},
	{title: "Story", fields: []fieldSpec{
		{name: "announcement", label: "Announcement bar", kind: KindText},
		{name: "aboutTitle", label: "About title", kind: KindText},
		{name: "aboutText", label: "About text", kind: KindTextarea},
	}},
	{title: "Menu", menu: true, fields: []fieldSpec{
		{name: "menuSectionTitle", label: "Menu title", kind: KindText},
		{name: "menuSectionSubtitle", label: "Menu subtitle", kind: KindText},
		{name: "menuSectionImage", label: "Full menu image path/URL", kind: KindImage, previewAlt: "Menu section preview"},
	}},
	{title: "Features", fields: []fieldSpec{
		{name: "featureTitle", label: "Features title", kind: KindText},
		{name: FieldFeatures, label: "Features", kind: KindTextarea, help: "One feature per line."},
	}},
	{title: "Opening hours", fields: []fieldSpec{
		{name: "hoursTitle", label: "Hours title", kind: KindText},
		{name: FieldHours, label: "Hours", kind: KindTextarea, help: "One entry per line, for example: Monday - Friday | 7:00 AM - 8:00 PM"},
	}},
	{title: "Location", fields: []fieldSpec{
		{name: "locationTitle", label: "Location title", kind: KindText},
		{name: "locationText", label: "Location text", kind: KindTextarea},
		{name: "mapEmbedUrl", label: "Google Maps embed URL", kind: KindURL},
	}},
	{title: "Contact", fields: []fieldSpec{
		{name: "contactTitle", label: "Contact title", kind: KindText},
		{name: "contact.address", label: "Address", kind: KindText},
		{name: "contact.phone", label: "Phone", kind: KindTel},
		{name: "contact.email", label: "Email", kind: KindEmail},
		{name: "contact.messengerUrl", label: "Messenger link", kind: KindURL},
	}},
	{title: "Social links", fields: []fieldSpec{
		{name: "socialLinks.facebook", label: "Facebook", kind: KindURL},
		{name: "socialLinks.instagram", label: "Instagram", kind: KindURL},
		{name: "socialLinks.tiktok", label: "TikTok", kind: KindURL},
	}},
	{title: "Theme", fields: []fieldSpec{
		{name: "theme.primary", label: "Primary color", kind: KindColor},
		{name: "theme.accent", label: "Accent color", kind: KindColor},
	}},
	{title: "Section labels", fields: []fieldSpec{
		{name: "menuCtaButton", label: "Menu button", kind: KindText},
		{name: "visitCtaButton", label: "Visit button", kind: KindText},
		{name: "cmsCtaTitle", label: "Call to action title", kind: KindText},
		{name: "cmsCtaText", label: "Call to action text", kind: KindText},
		{name: "cmsCtaButton", label: "Call to action button", kind: KindText},
	}},
}

// View returns the template data for the current state.
func (e *Editor) View() View {
	v := View{
		Status:    e.status,
		Errors:    e.errors,
		Unsaved:   e.dirty,
		MaxRows:   e.opts.MaxMenuRows,
		CanAddRow: len(e.rows) < e.opts.MaxMenuRows,
	}

	for _, s := range layout {
		sec := Section{Title: s.title, Menu: s.menu}
		for _, f := range s.fields {
			fv := FieldView{
				Name:  f.name,
				Label: f.label,
				Kind:  f.kind,
				Value: e.fieldValue(f.name),
				Help:  f.help,
				Error: e.errors[f.name],
			}
			if f.kind == KindImage {
				fv.Image = e.imageView(ImageTarget(f.name), fv.Value, f.previewAlt)
			}
			sec.Fields = append(sec.Fields, fv)
		}
		v.Sections = append(v.Sections, sec)
	}

	for i, row := range e.rows {
		v.Rows = append(v.Rows, RowView{
			Index:       i,
			Name:        e.rowField(i, "name", "Name", KindText, row.Name),
			Description: e.rowField(i, "description", "Description", KindText, row.Description),
			Price:       e.rowField(i, "price", "Price", KindText, row.Price),
			Image: FieldView{
				Name:  rowField(i, "image"),
				Label: "Image path/URL",
				Kind:  KindImage,
				Value: row.Image,
				Image: e.imageView(MenuItemTarget(i), row.Image, "Menu item image preview"),
			},
		})
	}

	return v
}

func (e *Editor) fieldValue(name string) string {
	switch name {
	case FieldFeatures:
		return e.features
	case FieldHours:
		return e.hours
	}
	return e.values[name]
}

func (e *Editor) rowField(i int, sub, label, kind, value string) FieldView {
	name := rowField(i, sub)
	return FieldView{
		Name:  name,
		Label: label,
		Kind:  kind,
		Value: value,
		Error: e.errors[name],
	}
}

func (e *Editor) imageView(target ImageTarget, value, alt string) *ImageView {
	preview := strings.TrimSpace(value)
	label := LabelUpload
	if preview != "" {
		label = LabelChange
	}
	return &ImageView{
		Target:      target,
		Preview:     preview,
		PreviewAlt:  alt,
		FileName:    e.files[target],
		UploadLabel: label,
	}
}
