// Package transform implements the batch tools that produce and maintain
// the catalog document: dimension enrichment, path-to-URL rewriting,
// title/tag/description cleaning, and tag statistics reporting.
//
// Transforms read one JSON document and write one JSON document. They
// operate on raw objects rather than normalized records so fields the
// gallery does not know about (folder names, post URLs, scrape metadata)
// survive a round trip untouched.
package transform
