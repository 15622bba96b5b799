// Package digest produces canonical JSON and content-addressed hashes.
//
// Canonical JSON follows RFC 8785: object keys sorted by UTF-16 code units,
// no insignificant whitespace, no HTML escaping, NFC-normalized strings.
// Floats and null are rejected so that the same logical value always
// serializes to the same bytes.
//
// Hashes are SHA-256 over domain || 0x00 || canonical bytes. The domain
// prefix carries a version suffix so the algorithm can change without
// colliding with previously recorded hashes.
package digest
