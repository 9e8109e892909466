// Package filestore implements the content store on the local filesystem.
//
// Config files are validated against JSON Schemas on read, so a malformed
// or incomplete config.json fails fast with domain.ErrConfigInvalid.
// Nothing is cached: every call goes to disk.
package filestore
