// Package normalisers turns link-resolved source entries into the
// files a build writes: an acyclic data.json tree (clone), the set of
// referenced assets (assets) and markdown for rich document fields
// (richtext).
package normalisers
