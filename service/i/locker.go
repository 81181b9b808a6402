package i

import "context"

// RunLocker serialises exploration runs sharing a name.
type RunLocker interface {
	// Lock blocks until the named lock is held or ctx is done.
	// The returned function releases it.
	Lock(ctx context.Context, name string) (unlock func() error, err error)
}
