// Package publish copies release artifacts into a feed folder.
//
// Each file is written through go-update, which verifies the expected
// checksum before atomically replacing the target, so a half-written
// RELEASES or package never appears in the feed.
package publish
