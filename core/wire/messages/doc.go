// Package messages is the generated message catalog (spec.md C3/C8).
// Regenerate with:
//
//go:generate go run ../../../cmd/genmessages -schema ../schema/catalog.toml -out catalog_gen.go -package messages
package messages
