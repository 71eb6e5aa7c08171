// Package fetch downloads map pages over HTTP.
//
// It is a thin I/O collaborator around the core: it requests gzip
// transfer encoding, transparently decompresses, decodes the page's
// charset to UTF-8, and caps how much body it will read. The core never
// sees anything but the resulting bytes.
package fetch
