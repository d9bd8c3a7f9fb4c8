// Package timemachine redirects the entry points of package clock to a
// virtual clock.
//
// Patch captures the implementation currently held by every entry point
// and installs a redirect shim in its place; Unpatch puts the captured
// implementations back. Both are idempotent. While patched, each shim
// forwards its call to the Policy set with SetPolicy, looked up on every
// call so that swapping the policy is observed immediately.
//
// The Original* functions always call the captured implementation. A
// policy uses them to read the real clock from inside a redirected call:
//
//	func (p *frozen) Strftime(format string, t ...clock.StructTime) (string, error) {
//		if len(t) == 0 {
//			t = []clock.StructTime{clock.StructTimeOf(p.at)}
//		}
//		return timemachine.OriginalStrftime(format, t...)
//	}
//
// Outside an interception window they fail with ErrNotIntercepting.
//
// POSIX clock reads (ClockGettime, ClockGettimeNS) only exist on some
// platforms. Where they are missing, Patch and Unpatch skip them and their
// forwarders always report ErrNotIntercepting.
package timemachine
