package config

import "time"

// Server
const (
	ServerReadTimeout    = 30 * time.Second
	ServerWriteTimeout   = 60 * time.Second
	ServerIdleTimeout    = 120 * time.Second
	ServerMaxHeaderBytes = 1 << 20
	ShutdownTimeout      = 10 * time.Second
)

// Build output layout
const (
	StaticDirName = "static"
	IndexFileName = "index.html"
)

// Cache-Control tiers. Files under static/ are content-hashed by the build,
// so everything there except HTML is effectively immutable. Root-level assets
// are not hashed and get a short lifetime; HTML is always revalidated.
const (
	CacheNoCache   = "no-cache"
	CacheImmutable = "public, max-age=31536000, immutable"
	CacheOneDay    = "public, max-age=86400"
)

// Compression level passed to the gzip/deflate encoders.
const CompressionLevel = 5

// Logging
const (
	LogFilePattern = "spaserver-%s.log" // %s = YYYY-MM-DD
	LogMaxAgeDays  = 30
)
