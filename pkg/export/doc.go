// Package export turns rendered prescription markup into standalone
// artifacts: the downloadable HTML file, the isolated print surface, and a
// hand-off to a system print command.
package export
