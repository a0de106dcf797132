package flyer

// LayoutConfig holds the sizing tokens for one flyer rendering. Font sizes
// are in points, spacing and dimensions in millimeters. It is fully derived
// from the store count and carries no identity; callers recompute it on every
// render instead of persisting it.
type LayoutConfig struct {
	ColumnCount       int
	EstimatedRowCount int

	TitleFontSize   float64 // card city heading
	CardFontSize    float64 // card address body
	ContactFontSize float64 // phone and WhatsApp lines

	GridGap       float64
	OuterPadding  float64
	CardPadding   float64
	CardMinHeight float64
	IconSize      float64
}

// layoutTier maps a half-open store-count range (previous tier's max, maxCount]
// to one fixed set of tokens. The last tier is unbounded.
type layoutTier struct {
	maxCount int // inclusive upper bound; < 0 means unbounded
	config   LayoutConfig
}

// layoutTiers is the canonical density table. Column count never decreases
// and every size/spacing token never increases from one tier to the next, so
// denser pages always get more columns and tighter, smaller cards. Keep that
// ordering intact when tuning breakpoints.
var layoutTiers = []layoutTier{
	{maxCount: 4, config: LayoutConfig{
		ColumnCount:     2,
		TitleFontSize:   13,
		CardFontSize:    11,
		ContactFontSize: 10,
		GridGap:         6,
		OuterPadding:    14,
		CardPadding:     5,
		CardMinHeight:   34,
		IconSize:        4,
	}},
	{maxCount: 8, config: LayoutConfig{
		ColumnCount:     2,
		TitleFontSize:   12,
		CardFontSize:    10,
		ContactFontSize: 9,
		GridGap:         5,
		OuterPadding:    12,
		CardPadding:     4.5,
		CardMinHeight:   30,
		IconSize:        3.5,
	}},
	{maxCount: 12, config: LayoutConfig{
		ColumnCount:     3,
		TitleFontSize:   11,
		CardFontSize:    9,
		ContactFontSize: 8,
		GridGap:         4,
		OuterPadding:    10,
		CardPadding:     4,
		CardMinHeight:   26,
		IconSize:        3,
	}},
	{maxCount: 20, config: LayoutConfig{
		ColumnCount:     3,
		TitleFontSize:   9.5,
		CardFontSize:    8,
		ContactFontSize: 7,
		GridGap:         3,
		OuterPadding:    8,
		CardPadding:     3.5,
		CardMinHeight:   22,
		IconSize:        2.5,
	}},
	{maxCount: 30, config: LayoutConfig{
		ColumnCount:     4,
		TitleFontSize:   8.5,
		CardFontSize:    7,
		ContactFontSize: 6,
		GridGap:         2.5,
		OuterPadding:    7,
		CardPadding:     3,
		CardMinHeight:   18,
		IconSize:        2.2,
	}},
	{maxCount: -1, config: LayoutConfig{
		ColumnCount:     4,
		TitleFontSize:   7.5,
		CardFontSize:    6,
		ContactFontSize: 5.5,
		GridGap:         2,
		OuterPadding:    6,
		CardPadding:     2.5,
		CardMinHeight:   15,
		IconSize:        2,
	}},
}

// SelectLayout returns the sizing tokens for a flyer holding storeCount
// stores. Pure and total for every non-negative input: zero stores resolve to
// the sparsest tier and any count beyond the last breakpoint lands in the
// unbounded tier, whose row estimate is computed rather than tabled so the
// result stays finite. Negative counts are a caller bug; they are clamped to
// zero rather than given defined behavior.
func SelectLayout(storeCount int) LayoutConfig {
	if storeCount < 0 {
		storeCount = 0
	}
	for _, tier := range layoutTiers {
		if tier.maxCount < 0 || storeCount <= tier.maxCount {
			cfg := tier.config
			cfg.EstimatedRowCount = ceilDiv(storeCount, cfg.ColumnCount)
			if cfg.EstimatedRowCount < 1 {
				cfg.EstimatedRowCount = 1
			}
			return cfg
		}
	}
	// Unreachable: the table always ends with an unbounded tier.
	panic("flyer: layout tier table has no unbounded tier")
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
