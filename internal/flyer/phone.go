package flyer

import "strings"

// DefaultPhone is the national 0800 number printed when a store has no
// landline of its own. The fallback is applied here, at render time, so the
// stored value stays empty and editing screens keep showing the real state.
const DefaultPhone = "0800 718 0896"

// NormalizePhone trims the raw landline value and substitutes DefaultPhone
// when nothing remains. Idempotent: normalizing an already-normalized value
// returns it unchanged.
func NormalizePhone(raw string) string {
	if v := strings.TrimSpace(raw); v != "" {
		return v
	}
	return DefaultPhone
}
