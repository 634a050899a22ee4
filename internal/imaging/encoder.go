// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging turns uploaded image files into self-contained data URLs.
// Uploads are decoded, rotated according to their EXIF orientation, fit
// within a bounding box and re-encoded, which also strips their metadata.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Errors returned by DataURL.
var (
	ErrEmpty             = errors.New("image file is empty")
	ErrTooLarge          = errors.New("image file is too large")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Encoder defaults.
const (
	DefaultMaxDimension = 1600
	DefaultMaxBytes     = 10 << 20
	DefaultQuality      = 85
)

// Encoder converts image uploads into data URLs.
type Encoder struct {
	// MaxDimension bounds the width and height of the output (0 = keep size).
	MaxDimension int
	// MaxBytes limits the size of the uploaded file.
	MaxBytes int64
	// Quality is the JPEG quality used for JPEG and WebP input.
	Quality int
}

// NewEncoder returns an Encoder with the given limits. A negative
// maxDimension or a non-positive maxBytes selects the default.
func NewEncoder(maxDimension int, maxBytes int64) *Encoder {
	if maxDimension < 0 {
		maxDimension = DefaultMaxDimension
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Encoder{
		MaxDimension: maxDimension,
		MaxBytes:     maxBytes,
		Quality:      DefaultQuality,
	}
}

// DataURL reads an image from r and returns it as a base64 data URL.
func (e *Encoder) DataURL(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, e.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading image data: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if int64(len(data)) > e.MaxBytes {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, e.MaxBytes)
	}

	format := detectFormat(data)
	if format == "" {
		return "", ErrUnsupportedFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	if e.MaxDimension > 0 {
		b := img.Bounds()
		if b.Dx() > e.MaxDimension || b.Dy() > e.MaxDimension {
			img = imaging.Fit(img, e.MaxDimension, e.MaxDimension, imaging.Lanczos)
		}
	}

	quality := e.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	encoded, mimeType, err := encodeImage(img, format, quality)
	if err != nil {
		return "", fmt.Errorf("encoding image: %w", err)
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(encoded), nil
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation undoes the EXIF orientation so the pixels display upright.
// Orientation values:
// 1: Normal
// 2: Flip horizontal
// 3: Rotate 180°
// 4: Flip vertical
// 5: Rotate 90° CW + flip horizontal
// 6: Rotate 90° CW
// 7: Rotate 90° CCW + flip horizontal
// 8: Rotate 90° CCW
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage encodes img in the output format for the detected input format
// and returns the bytes with their MIME type. WebP has no pure Go encoder and
// is written as JPEG.
func encodeImage(img image.Image, format string, quality int) ([]byte, string, error) {
	var buf bytes.Buffer

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/gif", nil
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}

// detectFormat detects the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// TIFF is rejected outright (CVE-2023-36308 in disintegration/imaging).
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}
