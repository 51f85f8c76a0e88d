// Package render turns an aggregated result model and gift card ledger into
// the published artifacts: medal engraving text, the results HTML fragment,
// the gift card HTML fragment and the YAML debug dump.
//
// HTML fragments are templ components so callers can embed them in a page or
// write them directly. All renderers only read their inputs.
package render
