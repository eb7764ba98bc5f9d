package ports

import (
	"context"

	"strompris/domain/pricing"
)

// DatasetProvider hands out the published tidy dataset. The dataset behind
// it is immutable; providers may swap the whole value on an explicit reload
// but never mutate a published one.
type DatasetProvider interface {
	// Dataset returns the currently published dataset, or a NOT_FOUND-coded
	// error when nothing has been loaded yet.
	Dataset() (*pricing.Dataset, error)

	// Load reads and publishes the dataset if it is not already cached.
	// Repeated calls on an unchanged file return the cached dataset without
	// re-reading it.
	Load(ctx context.Context) (*pricing.Dataset, error)
}

// DatasetCache extends DatasetProvider with the explicit invalidation
// surface. Only entry points and the reload endpoint hold this; handlers
// get the read-only DatasetProvider.
type DatasetCache interface {
	DatasetProvider

	// Invalidate drops the cached dataset so the next Load re-reads the file.
	Invalidate()

	// Reload loads the file and swaps the published dataset only on success.
	// On failure the previous dataset stays published.
	Reload(ctx context.Context) (*pricing.Dataset, error)
}
