// Package session discovers the live application's session directory.
//
// zipnest does not own the application whose data it archives; it learns
// where the active session lives from an external source: a fixed path, an
// environment variable, or a state file the application maintains while it
// is running. An empty answer from every source means there is nothing to
// back up, which is a normal termination condition rather than a failure.
package session

import (
	"context"
	"os"
	"strings"

	"github.com/thoreinstein/zipnest/internal/errors"
	"github.com/thoreinstein/zipnest/pkg/fileutil"
)

// ErrNoActiveSession indicates no session directory could be discovered.
// Callers treat this as "nothing to do", not as a fault.
var ErrNoActiveSession = errors.New("no active session")

// Locator discovers the directory of the currently active session.
// Implementations return ErrNoActiveSession when no session is running.
type Locator interface {
	Discover(ctx context.Context) (string, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context) (string, error)

// Discover implements Locator.
func (f LocatorFunc) Discover(ctx context.Context) (string, error) {
	return f(ctx)
}

// Static returns a Locator that always yields the given path.
// An empty path yields ErrNoActiveSession.
func Static(path string) Locator {
	return LocatorFunc(func(context.Context) (string, error) {
		if strings.TrimSpace(path) == "" {
			return "", ErrNoActiveSession
		}
		return path, nil
	})
}

// Env returns a Locator that reads the session directory from an
// environment variable. An unset or empty variable yields ErrNoActiveSession.
func Env(key string) Locator {
	return LocatorFunc(func(context.Context) (string, error) {
		if key == "" {
			return "", ErrNoActiveSession
		}
		dir := strings.TrimSpace(os.Getenv(key))
		if dir == "" {
			return "", ErrNoActiveSession
		}
		return dir, nil
	})
}

// File returns a Locator that reads the session directory from a state
// file the live application maintains. The first non-empty line of the
// file is taken as the directory path. A missing or empty file yields
// ErrNoActiveSession.
func File(path string) Locator {
	return LocatorFunc(func(context.Context) (string, error) {
		if path == "" {
			return "", ErrNoActiveSession
		}
		data, err := fileutil.ReadFileWithLimit(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", ErrNoActiveSession
			}
			return "", errors.Wrapf(err, "reading session state file %s", path)
		}
		for line := range strings.Lines(string(data)) {
			if dir := strings.TrimSpace(line); dir != "" {
				return dir, nil
			}
		}
		return "", ErrNoActiveSession
	})
}

// Chain returns a Locator that tries each locator in order and returns the
// first discovered directory. Any error other than ErrNoActiveSession
// aborts the chain; if every locator reports no session, so does the chain.
func Chain(locators ...Locator) Locator {
	return LocatorFunc(func(ctx context.Context) (string, error) {
		for _, l := range locators {
			dir, err := l.Discover(ctx)
			if err == nil {
				return dir, nil
			}
			if !errors.Is(err, ErrNoActiveSession) {
				return "", err
			}
		}
		return "", ErrNoActiveSession
	})
}

// Validate checks that the discovered directory actually exists and is a
// directory. A vanished directory is reported as ErrNoActiveSession since
// the session has evidently ended.
func Validate(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(ErrNoActiveSession, "session directory %s does not exist", dir)
		}
		return "", errors.Wrapf(err, "stat session directory %s", dir)
	}
	if !info.IsDir() {
		return "", errors.Newf("session path %s is not a directory", dir)
	}
	return dir, nil
}
