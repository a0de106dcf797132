package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"flyerapi/internal/flyer"
)

// Fixed vertical extents for the brand band, heading block and footer, in mm.
// Only the card grid area scales with the layout config.
const (
	brandBandHeight    = 36.0
	headingBlockHeight = 14.0
	footerHeight       = 24.0
)

// systemFontCandidates are tried in order when no font bytes are injected.
var systemFontCandidates = []string{
	"Liberation Sans",
	"DejaVu Sans",
	"Arial",
	"Helvetica",
	"sans-serif",
}

// RasterizerOptions configures the canvas rasterizer.
type RasterizerOptions struct {
	// Scale is the oversampling factor over the 96 DPI base resolution.
	// Zero means the default print-quality factor of 2.
	Scale float64
	// FontRegular and FontBold are optional TTF/OTF blobs. When absent the
	// rasterizer falls back to a system sans-serif font, so captures never
	// depend on assets fetched at render time.
	FontRegular []byte
	FontBold    []byte
}

// CanvasRasterizer draws a flyer document onto a vector canvas and rasterizes
// it at a fixed oversampling factor against the opaque brand background.
// Safe for concurrent use once constructed.
type CanvasRasterizer struct {
	scale  float64
	family *canvas.FontFamily
}

var _ Rasterizer = (*CanvasRasterizer)(nil)

// NewCanvasRasterizer loads fonts eagerly so that Capture can only fail on
// drawing, never on missing assets.
func NewCanvasRasterizer(opts RasterizerOptions) (*CanvasRasterizer, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 2
	}

	family := canvas.NewFontFamily("flyer")
	if len(opts.FontRegular) > 0 {
		if err := family.LoadFont(opts.FontRegular, 0, canvas.FontRegular); err != nil {
			return nil, fmt.Errorf("load regular font: %w", err)
		}
		if len(opts.FontBold) > 0 {
			if err := family.LoadFont(opts.FontBold, 0, canvas.FontBold); err != nil {
				return nil, fmt.Errorf("load bold font: %w", err)
			}
		}
		return &CanvasRasterizer{scale: scale, family: family}, nil
	}

	var lastErr error
	for _, name := range systemFontCandidates {
		if err := family.LoadSystemFont(name, canvas.FontRegular); err != nil {
			lastErr = err
			continue
		}
		// Bold is optional; canvas substitutes a faux-bold face.
		_ = family.LoadSystemFont(name, canvas.FontBold)
		return &CanvasRasterizer{scale: scale, family: family}, nil
	}
	return nil, fmt.Errorf("no usable sans-serif font found: %w", lastErr)
}

// Capture renders doc to an opaque RGBA bitmap at exactly
// scale × (794×1123) pixels, the A4 @ 96 DPI base dimensions.
func (r *CanvasRasterizer) Capture(ctx context.Context, doc *flyer.Document) (image.Image, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := canvas.New(flyer.PageWidthMM, flyer.PageHeightMM)
	cc := canvas.NewContext(c)
	cc.SetCoordSystem(canvas.CartesianIV) // top-left origin, y grows downward

	r.drawBackground(cc)
	r.drawBrandBand(cc, doc.Header)
	r.drawHeading(cc, doc.Header, doc.Layout)
	r.drawCards(cc, doc)
	r.drawFooter(cc, doc.Footer)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dpmm := float64(flyer.BasePixelWidth) * r.scale / flyer.PageWidthMM
	return rasterizer.Draw(c, canvas.DPMM(dpmm), canvas.DefaultColorSpace), nil
}

func (r *CanvasRasterizer) drawBackground(cc *canvas.Context) {
	cc.SetFillColor(canvas.Hex(flyer.BackgroundColor))
	cc.SetStrokeColor(canvas.Transparent)
	cc.DrawPath(0, 0, canvas.Rectangle(flyer.PageWidthMM, flyer.PageHeightMM))
}

func (r *CanvasRasterizer) drawBrandBand(cc *canvas.Context, h flyer.Header) {
	cc.SetFillColor(canvas.Hex(flyer.AccentColor))
	cc.SetStrokeColor(canvas.Transparent)
	cc.DrawPath(0, 0, canvas.Rectangle(flyer.PageWidthMM, brandBandHeight))

	center := flyer.PageWidthMM / 2
	title := r.face(26, canvas.White, canvas.FontBold)
	subtitle := r.face(13, canvas.White, canvas.FontBold)
	badge := r.face(9, canvas.Hex(flyer.BackgroundColor), canvas.FontRegular)

	cc.DrawText(center, 14, canvas.NewTextLine(title, h.Title, canvas.Center))
	cc.DrawText(center, 23, canvas.NewTextLine(subtitle, h.Subtitle, canvas.Center))
	cc.DrawText(center, 31, canvas.NewTextLine(badge, h.Badge, canvas.Center))
}

func (r *CanvasRasterizer) drawHeading(cc *canvas.Context, h flyer.Header, cfg flyer.LayoutConfig) {
	center := flyer.PageWidthMM / 2
	top := brandBandHeight + cfg.OuterPadding/2

	heading := r.face(15, canvas.Hex(flyer.AccentColor), canvas.FontBold)
	cc.DrawText(center, top+7, canvas.NewTextLine(heading, h.Heading, canvas.Center))

	// Accent underline bar beneath the heading.
	const barWidth, barHeight = 32.0, 1.0
	cc.SetFillColor(canvas.Hex(flyer.AccentColor))
	cc.SetStrokeColor(canvas.Transparent)
	cc.DrawPath(center-barWidth/2, top+10, canvas.Rectangle(barWidth, barHeight))
}

func (r *CanvasRasterizer) drawCards(cc *canvas.Context, doc *flyer.Document) {
	cfg := doc.Layout
	if len(doc.Cards) == 0 {
		return
	}

	gridTop := brandBandHeight + headingBlockHeight + cfg.OuterPadding
	gridBottom := flyer.PageHeightMM - footerHeight - cfg.OuterPadding
	cols := cfg.ColumnCount
	rows := cfg.EstimatedRowCount

	cardW := (flyer.PageWidthMM - 2*cfg.OuterPadding - float64(cols-1)*cfg.GridGap) / float64(cols)

	// Stretch cards to fill the grid area, bounded below by the tier's
	// minimum and above by a sanity cap so sparse pages don't balloon.
	availH := gridBottom - gridTop
	cardH := (availH - float64(rows-1)*cfg.GridGap) / float64(rows)
	if cardH < cfg.CardMinHeight {
		cardH = cfg.CardMinHeight
	}
	const maxCardHeight = 44.0
	if cardH > maxCardHeight {
		cardH = maxCardHeight
	}

	for i, card := range doc.Cards {
		col := i % cols
		row := i / cols
		x := cfg.OuterPadding + float64(col)*(cardW+cfg.GridGap)
		y := gridTop + float64(row)*(cardH+cfg.GridGap)
		r.drawCard(cc, card, cfg, x, y, cardW, cardH)
	}
}

func (r *CanvasRasterizer) drawCard(cc *canvas.Context, card flyer.Card, cfg flyer.LayoutConfig, x, y, w, h float64) {
	cc.SetFillColor(canvas.White)
	cc.SetStrokeColor(canvas.Hex(flyer.CardBorderColor))
	cc.SetStrokeWidth(0.4)
	cc.DrawPath(x, y, canvas.RoundedRectangle(w, h, 1.5))

	pad := cfg.CardPadding
	innerX := x + pad
	innerW := w - 2*pad
	cursorY := y + pad

	city := r.face(cfg.TitleFontSize, canvas.Hex(flyer.AccentColor), canvas.FontBold)
	cursorY = r.drawWrapped(cc, city, card.City, innerX, cursorY, innerW, 1)

	address := r.face(cfg.CardFontSize, canvas.Hex("#374151"), canvas.FontRegular)
	cursorY = r.drawWrapped(cc, address, card.Address, innerX, cursorY, innerW, 2)
	cursorY += pad / 2

	phone := r.face(cfg.ContactFontSize, canvas.Hex(flyer.AccentColor), canvas.FontBold)
	cursorY = r.drawContactRow(cc, phone, canvas.Hex(flyer.AccentColor), card.Phone, innerX, cursorY, cfg.IconSize)

	whatsapp := r.face(cfg.ContactFontSize, canvas.Hex("#15803D"), canvas.FontBold)
	r.drawContactRow(cc, whatsapp, canvas.Hex("#22C55E"), card.WhatsApp, innerX, cursorY, cfg.IconSize)
}

// drawContactRow renders a colored icon dot followed by the contact text and
// returns the y coordinate below the row.
func (r *CanvasRasterizer) drawContactRow(cc *canvas.Context, face *canvas.FontFace, iconColor color.Color, text string, x, y, iconSize float64) float64 {
	m := face.Metrics()
	lineH := m.LineHeight

	radius := iconSize / 2
	cc.SetFillColor(iconColor)
	cc.SetStrokeColor(canvas.Transparent)
	cc.DrawPath(x, y+lineH/2-radius, canvas.Circle(radius))

	cc.DrawText(x+iconSize+1.5, y+m.Ascent, canvas.NewTextLine(face, text, canvas.Left))
	return y + lineH
}

func (r *CanvasRasterizer) drawFooter(cc *canvas.Context, f flyer.Footer) {
	center := flyer.PageWidthMM / 2
	top := flyer.PageHeightMM - footerHeight

	cc.SetFillColor(canvas.Hex(flyer.AccentColor))
	cc.SetStrokeColor(canvas.Transparent)
	cc.DrawPath(center-60, top, canvas.Rectangle(120, 0.6))

	tagline := r.face(12, canvas.Hex(flyer.AccentColor), canvas.FontBold)
	website := r.face(10, canvas.Hex(flyer.AccentColorDark), canvas.FontBold)
	cc.DrawText(center, top+8, canvas.NewTextLine(tagline, f.Tagline, canvas.Center))
	cc.DrawText(center, top+15, canvas.NewTextLine(website, f.Website, canvas.Center))
}

// drawWrapped greedily wraps text into at most maxLines lines of the given
// width and returns the y coordinate below the drawn block. Baselines follow
// the face ascent; widths and positions are in mm.
func (r *CanvasRasterizer) drawWrapped(cc *canvas.Context, face *canvas.FontFace, text string, x, y, width float64, maxLines int) float64 {
	m := face.Metrics()
	for _, line := range wrapText(face, text, width, maxLines) {
		cc.DrawText(x, y+m.Ascent, canvas.NewTextLine(face, line, canvas.Left))
		y += m.LineHeight
	}
	return y
}

func (r *CanvasRasterizer) face(sizePt float64, col color.Color, style canvas.FontStyle) *canvas.FontFace {
	return r.family.Face(sizePt, col, style, canvas.FontNormal)
}

// wrapText splits text into at most maxLines lines that each fit width,
// breaking greedily on spaces and ellipsizing the last line on overflow.
func wrapText(face *canvas.FontFace, text string, width float64, maxLines int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	i := 1
	for ; i < len(words) && len(lines) < maxLines-1; i++ {
		candidate := current + " " + words[i]
		if face.TextWidth(candidate) <= width {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = words[i]
	}
	if i < len(words) {
		// Remaining words fold onto the last line and get shortened to fit.
		current = strings.Join(append([]string{current}, words[i:]...), " ")
	}
	return append(lines, ellipsize(face, current, width))
}

// ellipsize trims s until it fits width, appending a single ellipsis rune.
func ellipsize(face *canvas.FontFace, s string, width float64) string {
	if face.TextWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		if face.TextWidth(string(runes)+"…") <= width {
			return string(runes) + "…"
		}
	}
	return string(runes)
}
