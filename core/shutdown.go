package core

import (
	"context"
)

// ShutdownFunc releases one resource at the end of a run: flushing an
// output buffer, closing a file or database, syncing the logger.
// It should honour ctx's deadline and be safe to call more than once.
//
// Example usage:
//
//	var closeHistory ShutdownFunc = func(ctx context.Context) error {
//	    return database.Close()
//	}
type ShutdownFunc func(ctx context.Context) error
