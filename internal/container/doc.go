// Package container owns the JPEG container model and its byte-level codec.
//
// Ownership boundary:
// - segment/document model
// - marker tokenizer (decode)
// - serializer (encode) and diagnostic listing
//
// Marker boundaries are the only structure tracked here; payload contents
// are never interpreted.
package container
