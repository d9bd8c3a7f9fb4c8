package timemachine

import (
	"errors"

	"go.uber.org/zap"
)

// Patch installs the redirect shims of i. Every available operation is
// resolved and captured before any slot is written, so a failure leaves all
// slots untouched and is reported as a *PatchError. Patching an already
// patched interceptor does nothing.
//
// Patch and Unpatch are not synchronized with each other; call them from
// the goroutine that owns the test lifecycle.
func (i *Interceptor) Patch() error {
	if i.installed.Load() {
		return nil
	}

	commits := make([]func(), 0, len(i.ops))
	var skipped []string
	for _, op := range i.ops {
		desc := op.descriptor()
		if !desc.Available {
			skipped = append(skipped, desc.Name)
			continue
		}
		commit, err := op.prepare(i.resolver)
		if errors.Is(err, ErrNotAvailable) {
			skipped = append(skipped, desc.Name)
			continue
		}
		if err != nil {
			log().Error("interception not installed", zap.String("op", desc.Name), zap.Error(err))
			return &PatchError{Op: desc.Name, Err: err}
		}
		commits = append(commits, commit)
	}

	for _, commit := range commits {
		commit()
	}
	i.installed.Store(true)

	log().Debug("interception installed",
		zap.Int("operations", len(commits)),
		zap.Strings("skipped", skipped),
	)
	return nil
}

// Unpatch restores every captured original and forgets it. Unpatching an
// interceptor that is not patched does nothing.
func (i *Interceptor) Unpatch() error {
	if !i.installed.Load() {
		return nil
	}

	restored := 0
	for _, op := range i.ops {
		if op.restore() {
			restored++
		}
	}
	i.installed.Store(false)

	log().Debug("interception removed", zap.Int("operations", restored))
	return nil
}

// Patch installs interception on the entry points of package clock.
func Patch() error {
	return std.Patch()
}

// Unpatch removes interception from the entry points of package clock.
func Unpatch() error {
	return std.Unpatch()
}

// IsPatched reports whether the entry points of package clock are redirected.
func IsPatched() bool {
	return std.IsPatched()
}

// Descriptors lists the operations of the process-wide interceptor.
func Descriptors() []Descriptor {
	return std.Descriptors()
}

// Snapshot returns the interception statistics of the process-wide interceptor.
func Snapshot() Stats {
	return std.Stats()
}
