// Package binder fills request structs from JSON bodies, chi path
// parameters and query strings. Each binder handles only its own struct tag
// (json, path or query), so several can be combined on one request type.
package binder
