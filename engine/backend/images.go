package backend

// ImageHandle is an opaque reference to a loaded network image, handed
// back by CreateNetworkImage and expected by DestroyNetworkImage and
// QueryNetworkImage (spec.md §6's create/destroy/query_network_image).
type ImageHandle interface{}

// ImageLoader loads images referenced by URL. A natural host
// implementation sits on top of engine/urlcache: CreateNetworkImage
// issues a urlcache.Cache.Request keyed by key, and QueryNetworkImage
// reflects the cache entry's current urlcache.State — the layout
// engine treats a not-yet-ready image as having no natural size and
// lays out around zero-size (spec.md §7).
type ImageLoader interface {
	// CreateNetworkImage starts (or joins, if key is already tracked)
	// a fetch for url, identified afterwards by key.
	CreateNetworkImage(key, url string) (ImageHandle, error)
	// DestroyNetworkImage releases a handle obtained from
	// CreateNetworkImage. It does not force an immediate eviction —
	// spec.md §5's cache owns that decision.
	DestroyNetworkImage(h ImageHandle)
	// QueryNetworkImage reports whether h's image data is ready and,
	// if so, its decoded pixels (implementation-defined pixel format)
	// and pixel dimensions.
	QueryNetworkImage(h ImageHandle) (pixels []byte, width, height int, ready bool)
}
