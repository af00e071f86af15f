// Package archive implements zipnest's two-level archive engine.
//
// Each run packs the live session directory into an hourly zip, then
// embeds that finished zip as a single entry inside a daily zip:
//
//	sessions/archives/
//	    2026-08-24.zip
//	        14.zip
//	        15.zip
//	    15.zip
//
// The hourly zip is rebuilt from scratch on every run within the hour.
// The daily zip accumulates one entry per hour across the day; rerunning
// within the same hour replaces that hour's entry rather than appending a
// duplicate. The daily zip is never modified in place: updates go through
// a temp file and an atomic rename, so a failed run cannot corrupt
// previously accumulated hours.
package archive
