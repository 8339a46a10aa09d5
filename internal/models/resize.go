package models

import "strings"

// OutputFormat is the encoding requested for a transformed image.
type OutputFormat string

const (
	FormatWebP OutputFormat = "webp"
	FormatPNG  OutputFormat = "png"
	FormatJPEG OutputFormat = "jpeg"
	FormatAuto OutputFormat = "auto"
)

const DefaultQuality = 80

// ResizeRequest holds the transform parameters of an image delivery request.
// Nil fields were absent or unparseable. A zero value counts as unset, so
// r=0 alone still redirects. Non-positive dimensions leave that side
// unconstrained, and only a positive radius rounds.
type ResizeRequest struct {
	Width   *int
	Height  *int
	Radius  *int
	Quality int
	Format  OutputFormat
}

// ParseOutputFormat maps a free-text format to a known format. Anything
// unrecognized, including the empty string, is FormatAuto.
func ParseOutputFormat(value string) OutputFormat {
	switch f := OutputFormat(strings.ToLower(value)); f {
	case FormatWebP, FormatPNG, FormatJPEG:
		return f
	default:
		return FormatAuto
	}
}

// IsPassThrough reports whether the request asks for no transformation at all.
func (r *ResizeRequest) IsPassThrough() bool {
	return !isSet(r.Width) && !isSet(r.Height) && !isSet(r.Radius)
}

func (r *ResizeRequest) HasResize() bool {
	return (r.Width != nil && *r.Width > 0) || (r.Height != nil && *r.Height > 0)
}

func (r *ResizeRequest) HasRounding() bool {
	return r.Radius != nil && *r.Radius > 0
}

// ResolveFormat picks the concrete output format. Rounded images need an
// alpha channel, so auto falls back to png for them.
func (r *ResizeRequest) ResolveFormat() OutputFormat {
	if r.Format != FormatAuto && r.Format != "" {
		return r.Format
	}
	if r.HasRounding() {
		return FormatPNG
	}
	return FormatWebP
}

func isSet(v *int) bool {
	return v != nil && *v != 0
}

func (f OutputFormat) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	default:
		return "image/webp"
	}
}
