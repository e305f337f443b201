// Package cache stores computed layouts and rendered artifacts.
//
// Diagrams are pure functions of their size vector and configuration, so a
// result computed once can be served again from any backend:
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry, for the CLI (~/.cache/venn)
//   - [RedisCache]: shared cache for the HTTP API
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes every input that affects
// the result, so a changed option never returns a stale entry, and
// [ScopedKeyer] adds a namespace prefix for shared backends.
//
//	c, _ := cache.NewFileCache(cache.DefaultDir())
//	key := cache.NewDefaultKeyer().LayoutKey(sizes.String(), opts)
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    // use data
//	}
package cache
