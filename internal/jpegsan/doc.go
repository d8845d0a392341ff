// Package jpegsan is the file-level workflow around the container codec:
// load a JPEG, inspect or edit its segments, save it and hand the result to
// an external viewer.
package jpegsan
