// Package core provides the results transform for competition entry exports.
//
// The package turns the flat rows of an entry export into grouped results and
// gift card allocations. It has no knowledge of output formats or files beyond
// reading the export, so renderers and the CLI only depend on its types.
//
// # Pipeline
//
//  1. [ReadEntries] reads a CSV or XLSX export. CSV input is wrapped with
//     [WrapForReading], which strips a BOM and sanitizes invalid UTF-8, and the
//     header is checked against [EntryFieldSpecs].
//  2. [Aggregate] groups positive-score records by judging table, keeps one
//     entry per place (later rows win) and collects Best of Show placements
//     in the synthetic [BOSGroupID] group.
//  3. [Allocate] assigns gift cards for 1st to 3rd table places using an
//     [AllocationPolicy]: brewer override, then city override, then the
//     vendor with the fewest brewers.
//
// # Ordering
//
// Groups are sorted by table number with BOS last. Places are sorted by plain
// string comparison of their keys, which puts "HM" after "1", "2" and "3".
//
// # Error Handling
//
// Aggregation is all-or-nothing: an unparsable score or table label returns a
// [RowError] wrapping [ErrInvalidScore] or [ErrMalformedTableLabel] and no
// model. Records with a zero or negative score are skipped, not rejected.
// [MapError] turns any of the package's sentinel errors into a [UserMessage]
// with a support code.
//
// All functions are free of package-level mutable state and may be called
// concurrently on independent inputs.
package core
