// Package marker is the static JPEG marker registry.
//
// Ownership boundary:
// - suffix to symbol/description table
// - unknown-marker fallback descriptors
package marker
