// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers of the storefront, the content
// editor and the health endpoint.
package handler

// Route pattern constants for chi router registration.
const (
	RouteRoot        = "/"
	RouteAdmin       = "/admin"
	RouteAdminReset  = "/admin/reset"
	RouteHealth      = "/health"
	RouteStatic      = "/static/*"
	RouteImages      = "/images/*"
	RouteStaticStrip = "/static/"
	RouteImagesStrip = "/images/"
)

// Template names.
const (
	TemplateEditor     = "admin/editor"
	TemplateStorefront = "site/storefront"
)

// Form field names of the editor form besides the content fields.
const (
	FormAction = "action"
	// FormFilePrefix prefixes the file input of an image target.
	FormFilePrefix = "file:"
)

// Editor actions. Parameterised actions carry their argument after the colon.
const (
	ActionSave      = "save"
	ActionAddRow    = "add-row"
	ActionRemoveRow = "remove-row:"
	ActionUpload    = "upload:"
	ActionClear     = "clear:"
)

// sessionKeyDraft holds the JSON-encoded editor draft.
const sessionKeyDraft = "editor_draft"

// Default multipart memory for editor forms; larger files spill to disk.
const defaultMultipartMemory = 32 << 20

// Flash messages.
const (
	msgDraftDiscarded = "Your previous draft could not be restored and was discarded."
	msgUploadTooLarge = "The selected file is too large."
	msgCrossOrigin    = "That change was sent from another site and was not applied."
)
