package render

import (
	"context"
	"errors"
	"image"

	"flyerapi/internal/flyer"
	"flyerapi/internal/model"
)

// Package render turns a composed flyer document into PDF bytes. The pipeline
// is a two-step sequence: a Rasterizer captures the document as a bitmap at a
// fixed oversampling factor, then a Packager places that bitmap on a fixed A4
// page and serializes the PDF. The fixed-page strategy is applied on every
// path; the layout tier table guarantees the content fits, so nothing is ever
// clipped.

var (
	// ErrNilDocument is returned when the pipeline is invoked without a
	// document to capture.
	ErrNilDocument = errors.New("render: no document to capture")

	// ErrCapture wraps rasterizer failures.
	ErrCapture = errors.New("render: capture failed")

	// ErrPackaging wraps PDF serialization failures.
	ErrPackaging = errors.New("render: packaging failed")

	// ErrExportInFlight is returned when an export for the same region is
	// already running. Concurrent exports are rejected, not queued; the
	// caller re-triggers manually.
	ErrExportInFlight = errors.New("render: export already in flight for region")
)

// Rasterizer captures a composed document as an opaque bitmap.
type Rasterizer interface {
	Capture(ctx context.Context, doc *flyer.Document) (image.Image, error)
}

// Packager places a captured bitmap on an A4 page and serializes the
// document. It either returns complete PDF bytes or an error, never a
// partial artifact.
type Packager interface {
	Package(img image.Image) ([]byte, error)
}

// Notifier observes the export lifecycle. Implementations must not block;
// the pipeline never consumes a return value from them.
type Notifier interface {
	ExportStarted(region model.Region)
	ExportSucceeded(region model.Region, size int)
	ExportFailed(region model.Region, err error)
}

// NopNotifier discards all lifecycle events.
type NopNotifier struct{}

func (NopNotifier) ExportStarted(model.Region)        {}
func (NopNotifier) ExportSucceeded(model.Region, int) {}
func (NopNotifier) ExportFailed(model.Region, error)  {}
