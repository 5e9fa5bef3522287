package api

// Cache-Control header values.
const (
	// CacheSnapshot lets clients and proxies reuse a snapshot between fetch runs.
	CacheSnapshot = "public, max-age=300"
	// CacheHistory is for stored runs, which never change.
	CacheHistory = "public, max-age=86400"
	CacheNoStore = "no-cache"
)
