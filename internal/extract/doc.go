// Package extract locates the map page's embedded settings payload and
// turns it into marker records.
//
// The map page ships its marker data inside an inline <script> element
// as a jQuery.extend(Drupal.settings, {...}); assignment. This package
// walks the HTML to find that script, strips the assignment wrapper, and
// decodes the JSON remainder.
//
// Both entry points are pure functions: calling them twice on the same
// input yields identical output.
package extract
