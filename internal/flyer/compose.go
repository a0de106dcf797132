package flyer

import (
	"fmt"
	"strings"

	"flyerapi/internal/model"
)

// Page geometry for the A4 portrait flyer. The base pixel dimensions match
// A4 at 96 DPI; the raster pipeline oversamples on top of these.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0

	BasePixelWidth  = 794
	BasePixelHeight = 1123
)

// Brand palette and static copy carried on every flyer.
const (
	BackgroundColor = "#FFE600"
	AccentColor     = "#1E3A8A" // header band, headings
	AccentColorDark = "#172E6E"
	CardBorderColor = "#BFDBFE"

	BrandTitle    = "REDE ÚNICA"
	BrandSubtitle = "DE BATERIAS"

	FooterTagline = "QUALIDADE E CONFIANÇA EM BATERIAS"
	FooterWebsite = "www.redeunica.com.br"
)

// Header is the flyer's top block: brand banner plus the region heading and
// the network-wide store-count badge.
type Header struct {
	Title    string
	Subtitle string
	Heading  string
	Badge    string
}

// Card carries the already-resolved display text for one store. City is
// upper-cased and the phone fallback applied here so renderers never touch
// business rules.
type Card struct {
	City     string
	Address  string
	Phone    string
	WhatsApp string
}

// Footer is the static brand tagline block.
type Footer struct {
	Tagline string
	Website string
}

// Document is the fully laid-out flyer model handed to the raster pipeline.
// It is immutable once composed and discarded after rendering.
type Document struct {
	Region model.Region
	Layout LayoutConfig
	Header Header
	Cards  []Card
	Footer Footer
}

// Compose arranges the given stores into a flyer document for one region.
//
// Card order equals input order; any region filtering or alphabetical sorting
// is the caller's job. totalStores feeds the header badge and deliberately
// reflects the whole network rather than the page: "43 lojas" next to a
// Paraná-only grid distinguishes network size from page contents. Pass zero
// or a negative value to fall back to len(stores).
//
// An empty store list composes a valid zero-card document; Compose never
// fails and never mutates its input.
func Compose(stores []model.Store, region model.Region, totalStores int) Document {
	if totalStores <= 0 {
		totalStores = len(stores)
	}

	cards := make([]Card, 0, len(stores))
	for _, s := range stores {
		cards = append(cards, Card{
			City:     strings.ToUpper(s.City),
			Address:  s.Address,
			Phone:    NormalizePhone(s.Phone),
			WhatsApp: s.WhatsApp,
		})
	}

	return Document{
		Region: region,
		Layout: SelectLayout(len(stores)),
		Header: Header{
			Title:    BrandTitle,
			Subtitle: BrandSubtitle,
			Heading:  "NOSSAS LOJAS - " + string(region),
			Badge:    storeBadge(totalStores),
		},
		Cards: cards,
		Footer: Footer{
			Tagline: FooterTagline,
			Website: FooterWebsite,
		},
	}
}

// ArtifactName returns the deterministic download filename for a region's
// flyer, e.g. "panfleto-rede-unica-pr.pdf".
func ArtifactName(region model.Region) string {
	return fmt.Sprintf("panfleto-rede-unica-%s.pdf", strings.ToLower(string(region)))
}

func storeBadge(total int) string {
	if total == 1 {
		return "1 loja"
	}
	return fmt.Sprintf("%d lojas", total)
}
