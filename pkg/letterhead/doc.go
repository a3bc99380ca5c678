// Package letterhead produces the two trusted HTML fragments (header and
// footer) framing a prescription.
//
// Three independent paths converge on the same output:
//
//   - raw HTML files, routed to a slot by a substring heuristic (Classify);
//   - structured doctor/clinic fields rendered through escaped templates
//     (Composer.Compose);
//   - image or PDF uploads wrapped in a small HTML block (Composer.Embed).
//
// Every path replaces whole slot strings. Nothing here merges partial
// updates, and the produced fragments are injected into documents verbatim.
// A multi-user deployment must run them through a Sanitizer first.
package letterhead
