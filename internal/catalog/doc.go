// Package catalog defines the definitions catalog the resolver looks
// parameters up in, together with loaders for RomRaider `logger.xml` files and
// an equivalent YAML layout.
//
// The `Catalog` interface is the only thing the resolver depends on; the
// in-memory `Memory` implementation backs both loaders and is what tests
// construct directly.
package catalog
