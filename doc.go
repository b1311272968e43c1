// File: lixenwraith/roconfig/doc.go

// Package roconfig provides a hierarchical configuration store for Go applications
// that merges in-memory maps, environment variables and INI, JSON, YAML or TOML files
// into one tree of mappings, sequences and scalars.
//
// Features:
//   - Shallow top-level merges of maps and files, in the order sources are added
//   - Path-keyed overrides that can reach arbitrarily deep into the tree
//   - Environment variables as overrides (APP_DB__HOST targets db.host)
//   - INI DEFAULT section inheritance
//   - Typed Value results (scalar, mapping view, sequence view, missing)
//   - Struct decoding through mapstructure
//   - Builder pattern for easy initialization
//
// Quick Start:
//
//	cfg, err := roconfig.NewBuilder().
//	    WithMap(map[string]any{"server": map[string]any{"port": 8080}}).
//	    WithFile("config.yaml", true).
//	    WithEnv("MYAPP_", true).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	server, _ := cfg.Get("server").Mapping()
//	port, _ := cfg.Int64("server:port")
//
// Override keys:
//
// Leading and trailing '_' and ':' are trimmed. A key containing ':' is split on
// ':'; otherwise a key containing "__" is split on "__"; a key with neither is a
// plain top-level key. Only one delimiter kind is honored per key, so "a:b__c"
// addresses a["b__c"]. Segments addressing a sequence element must be
// non-negative base-10 integers.
//
//	cfg.AddValue("db:replicas:1:host", "10.0.0.2")
//	cfg.AddValue("db__timeout", "5s")
//
// Missing mapping nodes are created on the way down. Sequences are never grown,
// and a path cannot descend through an existing scalar.
//
// Merges:
//
// AddMap and every file source overwrite top-level keys only; nested values are
// replaced, not merged. Overrides (AddValue, AddEnv) change exactly one leaf.
//
// Views:
//
// A mapping read from a Config is returned as a new *Config over the same stored
// map, so an override applied through any view is visible through every view that
// shares the subtree.
//
// Thread Safety:
// None. A Config must not be mutated concurrently; callers serialize access.
package roconfig
