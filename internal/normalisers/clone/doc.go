// Package clone copies link-resolved field values into acyclic,
// JSON-serialisable trees.
//
// Entry and asset links are flattened to small summary records instead of
// being followed, so the copy of an entry never embeds another entry's fields.
package clone
