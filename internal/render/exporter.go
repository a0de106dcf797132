package render

import (
	"context"
	"fmt"
	"sync"

	"flyerapi/internal/flyer"
	"flyerapi/internal/model"
)

// Exporter orchestrates the rasterize-then-package sequence. It is safe for
// concurrent use; a second export for a region whose export is still running
// is rejected with ErrExportInFlight. Abandoning an export through context
// cancellation releases the region slot, so later exports are unaffected.
type Exporter struct {
	rasterizer Rasterizer
	packager   Packager
	notifier   Notifier

	mu       sync.Mutex
	inFlight map[model.Region]bool
}

// NewExporter wires the pipeline. A nil notifier falls back to NopNotifier.
func NewExporter(r Rasterizer, p Packager, n Notifier) *Exporter {
	if n == nil {
		n = NopNotifier{}
	}
	return &Exporter{
		rasterizer: r,
		packager:   p,
		notifier:   n,
		inFlight:   make(map[model.Region]bool),
	}
}

// Export renders doc to PDF bytes. On any failure exactly one failure
// notification is emitted and no bytes are returned; there is no partial
// artifact and no automatic retry.
func (e *Exporter) Export(ctx context.Context, doc *flyer.Document) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	if !e.acquire(doc.Region) {
		return nil, fmt.Errorf("%w: %s", ErrExportInFlight, doc.Region)
	}
	defer e.release(doc.Region)

	e.notifier.ExportStarted(doc.Region)

	img, err := e.rasterizer.Capture(ctx, doc)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrCapture, err)
		e.notifier.ExportFailed(doc.Region, err)
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		e.notifier.ExportFailed(doc.Region, err)
		return nil, err
	}

	out, err := e.packager.Package(img)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrPackaging, err)
		e.notifier.ExportFailed(doc.Region, err)
		return nil, err
	}

	e.notifier.ExportSucceeded(doc.Region, len(out))
	return out, nil
}

func (e *Exporter) acquire(region model.Region) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight[region] {
		return false
	}
	e.inFlight[region] = true
	return true
}

func (e *Exporter) release(region model.Region) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, region)
}
