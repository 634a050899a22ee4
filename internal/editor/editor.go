// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package editor holds the state of one content editing session: the form
// values, the menu rows, pending image uploads, field errors, the status
// line and the unsaved-changes flag. An Editor is rebuilt from a Draft on
// every request and saved back into the session afterwards.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/olegiv/shopkit/internal/content"
)

// DefaultMaxMenuRows is the menu row limit when Options.MaxMenuRows is unset.
const DefaultMaxMenuRows = 8

// Field names of the two multi-line inputs.
const (
	FieldFeatures = "features"
	FieldHours    = "hours"
)

// Errors returned by Editor operations.
var (
	ErrTooManyRows     = errors.New("menu row limit reached")
	ErrNoSuchRow       = errors.New("no such menu row")
	ErrUnknownField    = errors.New("unknown field")
	ErrUnknownTarget   = errors.New("unknown image target")
	ErrImageUnreadable = errors.New("image could not be read")
)

// Status messages.
const (
	MsgReady         = "Ready to edit."
	MsgUnsaved       = "You have unsaved changes."
	MsgRowAdded      = "Menu item row added."
	MsgRowRemoved    = "Menu item removed."
	MsgImageUploaded = "Image uploaded. Save to apply changes to the website."
	MsgImageFailed   = "Could not read the selected image. Please try another file."
	MsgImageCleared  = "Image cleared."
	MsgRowImageSet   = "Menu item image selected. Save to apply changes."
	MsgRowImageFail  = "Could not read selected menu image."
	MsgRowImageClear = "Menu item image cleared."
	MsgSaveFailed    = "Save failed. Storage might be full or unavailable."
	MsgSaved         = "Saved successfully. Open the website to see your updates."
	MsgReset         = "Reset to default content."
	MsgResetFailed   = "Reset failed. Please refresh and try again."
)

// StatusKind classifies a status message.
type StatusKind string

// Status kinds.
const (
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the editor status line.
type Status struct {
	Message string     `json:"message"`
	Kind    StatusKind `json:"kind"`
}

// ImageEncoder converts an uploaded file into a data URL.
type ImageEncoder interface {
	DataURL(r io.Reader) (string, error)
}

// Options configures an Editor.
type Options struct {
	MaxMenuRows int
	Logger      *slog.Logger
}

// Draft is the serializable editor state kept in the session between requests.
type Draft struct {
	Values   map[string]string      `json:"values"`
	Features string                 `json:"features"`
	Hours    string                 `json:"hours"`
	Rows     []content.MenuItem     `json:"rows"`
	Files    map[ImageTarget]string `json:"files,omitempty"`
	Errors   map[string]string      `json:"errors,omitempty"`
	Dirty    bool                   `json:"dirty"`
	Status   Status                 `json:"status"`
}

// Editor is the controller of one editing session.
type Editor struct {
	model  *content.Model
	images ImageEncoder
	opts   Options

	values   map[string]string
	features string
	hours    string
	rows     []content.MenuItem
	files    map[ImageTarget]string
	errors   map[string]string
	dirty    bool
	status   Status
}

// New creates an empty Editor. Call Open to hydrate it from the store.
func New(m *content.Model, images ImageEncoder, opts Options) *Editor {
	if opts.MaxMenuRows <= 0 {
		opts.MaxMenuRows = DefaultMaxMenuRows
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	e := &Editor{
		model:  m,
		images: images,
		opts:   opts,
		files:  make(map[ImageTarget]string),
	}
	e.hydrate(m.Defaults())
	return e
}

// Restore rebuilds an Editor from a session draft.
func Restore(m *content.Model, images ImageEncoder, opts Options, d Draft) *Editor {
	e := New(m, images, opts)
	for _, f := range scalarPaths() {
		e.values[f] = d.Values[f]
	}
	e.features = d.Features
	e.hours = d.Hours
	e.rows = append([]content.MenuItem(nil), d.Rows...)
	if len(e.rows) > e.opts.MaxMenuRows {
		e.rows = e.rows[:e.opts.MaxMenuRows]
	}
	for t, name := range d.Files {
		e.files[t] = name
	}
	if len(d.Errors) > 0 {
		e.errors = make(map[string]string, len(d.Errors))
		for k, v := range d.Errors {
			e.errors[k] = v
		}
	}
	e.dirty = d.Dirty
	e.status = d.Status
	return e
}

// Open hydrates the form from the live record and clears all session state.
func (e *Editor) Open(ctx context.Context) {
	e.hydrate(e.model.Load(ctx))
	e.files = make(map[ImageTarget]string)
	e.errors = nil
	e.dirty = false
	e.setStatus(MsgReady, StatusInfo)
}

// hydrate fills the form from r. A record without menu items gets one empty row.
func (e *Editor) hydrate(r content.Record) {
	e.values = make(map[string]string)
	for _, f := range r.TextFields() {
		e.values[f.Path] = *f.Value
	}
	e.features = content.FormatFeatures(r.Features)
	e.hours = content.FormatHours(r.Hours)
	e.rows = append([]content.MenuItem(nil), r.MenuItems...)
	if len(e.rows) == 0 {
		e.rows = []content.MenuItem{{}}
	}
}

// Apply binds submitted form values. Keys that are not editor fields and
// rows that do not exist are ignored. Any change marks the editor dirty.
func (e *Editor) Apply(values map[string]string) {
	changed := false
	for name, value := range values {
		ok, err := e.set(name, value)
		if err != nil {
			continue
		}
		changed = changed || ok
	}
	if changed {
		e.dirty = true
		e.setStatus(MsgUnsaved, StatusInfo)
	}
}

// SetField sets one form field by name.
func (e *Editor) SetField(name, value string) error {
	changed, err := e.set(name, value)
	if err != nil {
		return err
	}
	if changed {
		e.dirty = true
		e.setStatus(MsgUnsaved, StatusInfo)
	}
	return nil
}

// set assigns a field and reports whether its value changed.
func (e *Editor) set(name, value string) (bool, error) {
	switch name {
	case FieldFeatures:
		return swap(&e.features, value), nil
	case FieldHours:
		return swap(&e.hours, value), nil
	}
	if i, sub, ok := parseRowField(name); ok {
		if i >= len(e.rows) {
			return false, fmt.Errorf("%w: %d", ErrNoSuchRow, i)
		}
		row := &e.rows[i]
		switch sub {
		case "name":
			return swap(&row.Name, value), nil
		case "description":
			return swap(&row.Description, value), nil
		case "price":
			return swap(&row.Price, value), nil
		default:
			return swap(&row.Image, value), nil
		}
	}
	old, ok := e.values[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	e.values[name] = value
	return old != value, nil
}

func swap(dst *string, value string) bool {
	if *dst == value {
		return false
	}
	*dst = value
	return true
}

// AddMenuRow appends an empty menu row unless the row limit is reached.
func (e *Editor) AddMenuRow() error {
	if len(e.rows) >= e.opts.MaxMenuRows {
		e.setStatus(fmt.Sprintf("Maximum of %d menu items allowed.", e.opts.MaxMenuRows), StatusError)
		return ErrTooManyRows
	}
	e.rows = append(e.rows, content.MenuItem{})
	e.dirty = true
	e.setStatus(MsgRowAdded, StatusInfo)
	return nil
}

// RemoveMenuRow deletes row i. Pending file names of later rows move with them.
func (e *Editor) RemoveMenuRow(i int) error {
	if i < 0 || i >= len(e.rows) {
		return fmt.Errorf("%w: %d", ErrNoSuchRow, i)
	}
	e.rows = append(e.rows[:i], e.rows[i+1:]...)

	files := make(map[ImageTarget]string, len(e.files))
	for t, name := range e.files {
		row, ok := t.Row()
		switch {
		case !ok:
			files[t] = name
		case row < i:
			files[t] = name
		case row > i:
			files[MenuItemTarget(row-1)] = name
		}
	}
	e.files = files

	e.dirty = true
	e.setStatus(MsgRowRemoved, StatusInfo)
	return nil
}

// RowCount returns the number of menu rows in the form.
func (e *Editor) RowCount() int {
	return len(e.rows)
}

// UploadImage encodes the uploaded file and stores it in the target field.
// On failure the field keeps its previous value.
func (e *Editor) UploadImage(_ context.Context, target ImageTarget, filename string, r io.Reader) error {
	row, isRow := target.Row()
	if err := e.checkTarget(target); err != nil {
		return err
	}

	dataURL, err := e.images.DataURL(r)
	if err != nil {
		e.opts.Logger.Info("image upload rejected", "target", string(target), "file", filename, "error", err)
		if isRow {
			e.setStatus(MsgRowImageFail, StatusError)
		} else {
			e.setStatus(MsgImageFailed, StatusError)
		}
		return fmt.Errorf("%w: %w", ErrImageUnreadable, err)
	}

	if isRow {
		e.rows[row].Image = dataURL
		e.setStatus(MsgRowImageSet, StatusInfo)
	} else {
		e.values[string(target)] = dataURL
		e.setStatus(MsgImageUploaded, StatusInfo)
	}
	e.files[target] = filename
	e.dirty = true
	return nil
}

// ClearImage empties the target field and forgets its pending file.
func (e *Editor) ClearImage(target ImageTarget) error {
	if err := e.checkTarget(target); err != nil {
		return err
	}
	if row, ok := target.Row(); ok {
		e.rows[row].Image = ""
		e.setStatus(MsgRowImageClear, StatusInfo)
	} else {
		e.values[string(target)] = ""
		e.setStatus(MsgImageCleared, StatusInfo)
	}
	delete(e.files, target)
	e.dirty = true
	return nil
}

func (e *Editor) checkTarget(target ImageTarget) error {
	if row, ok := target.Row(); ok {
		if row >= len(e.rows) {
			return fmt.Errorf("%w: %d", ErrNoSuchRow, row)
		}
		return nil
	}
	switch target {
	case TargetLogo, TargetHero, TargetMenuSection:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownTarget, target)
}

// Candidate builds the record that Save would persist from the current form.
func (e *Editor) Candidate() content.Record {
	r, _ := e.candidate()
	return r
}

// candidate builds the record and reports which form row each menu item came from.
func (e *Editor) candidate() (content.Record, []int) {
	var r content.Record
	for _, f := range r.TextFields() {
		*f.Value = strings.TrimSpace(e.values[f.Path])
	}
	r.Features = content.ParseFeatures(e.features)
	r.Hours = content.ParseHours(e.hours)
	var rowOf []int
	r.MenuItems, rowOf = content.CollectMenuRows(e.rows)
	return r, rowOf
}

// Save validates the candidate record and persists it. On a validation
// failure it returns the *content.ValidationError and storage is untouched.
func (e *Editor) Save(ctx context.Context) error {
	candidate, rowOf := e.candidate()

	if verr := content.Validate(candidate); verr != nil {
		e.errors = formErrors(verr.Fields, rowOf)
		e.setStatus(verr.Summary, StatusError)
		return verr
	}

	if err := e.model.Save(ctx, candidate); err != nil {
		e.opts.Logger.Error("saving content failed", "category", "storage", "error", err)
		e.setStatus(MsgSaveFailed, StatusError)
		return err
	}

	e.errors = nil
	e.files = make(map[ImageTarget]string)
	e.dirty = false
	e.setStatus(MsgSaved, StatusSuccess)
	return nil
}

// formErrors re-keys menu item errors from record positions to form rows,
// which differ once blank rows are dropped.
func formErrors(fields map[string]string, rowOf []int) map[string]string {
	out := make(map[string]string, len(fields))
	for key, msg := range fields {
		if i, sub, ok := parseRowField(key); ok && i < len(rowOf) {
			key = rowField(rowOf[i], sub)
		}
		out[key] = msg
	}
	return out
}

// Reset deletes the stored document and reloads the defaults into the form.
func (e *Editor) Reset(ctx context.Context) error {
	if err := e.model.Reset(ctx); err != nil {
		e.opts.Logger.Error("resetting content failed", "category", "storage", "error", err)
		e.setStatus(MsgResetFailed, StatusError)
		return err
	}

	e.hydrate(e.model.Defaults())
	e.files = make(map[ImageTarget]string)
	e.errors = nil
	e.dirty = false
	e.setStatus(MsgReset, StatusSuccess)
	return nil
}

// HasUnsavedChanges reports whether the form differs from what was last saved or loaded.
func (e *Editor) HasUnsavedChanges() bool {
	return e.dirty
}

// Status returns the current status line.
func (e *Editor) Status() Status {
	return e.status
}

// FieldErrors returns the field errors of the last failed save.
func (e *Editor) FieldErrors() map[string]string {
	return e.errors
}

// Draft returns a copy of the session state.
func (e *Editor) Draft() Draft {
	d := Draft{
		Values:   make(map[string]string, len(e.values)),
		Features: e.features,
		Hours:    e.hours,
		Rows:     append([]content.MenuItem(nil), e.rows...),
		Dirty:    e.dirty,
		Status:   e.status,
	}
	for k, v := range e.values {
		d.Values[k] = v
	}
	if len(e.files) > 0 {
		d.Files = make(map[ImageTarget]string, len(e.files))
		for k, v := range e.files {
			d.Files[k] = v
		}
	}
	if len(e.errors) > 0 {
		d.Errors = make(map[string]string, len(e.errors))
		for k, v := range e.errors {
			d.Errors[k] = v
		}
	}
	return d
}

func (e *Editor) setStatus(msg string, kind StatusKind) {
	e.status = Status{Message: msg, Kind: kind}
}

// scalarPaths lists the form names of all single-line and nested text fields.
func scalarPaths() []string {
	var r content.Record
	fields := r.TextFields()
	paths := make([]string, len(fields))
	for i, f := range fields {
		paths[i] = f.Path
	}
	return paths
}
