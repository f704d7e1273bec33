package nvlist

import "sync/atomic"

// handle owns exactly one native list. Acquisition happens on create,
// clone or unpack; release happens exactly once, after which raw is nil
// and the release path is unreachable. There is no way to duplicate a
// handle except through clone, which yields a brand-new handle with an
// independent lifetime.
type handle struct {
	raw nativeList
}

func acquire(raw nativeList) handle {
	atomic.AddInt64(&liveHandles, 1)
	return handle{raw: raw}
}

// release frees the native list. A second call is a no-op: the nil
// check means a double free cannot be reached through this wrapper.
func (h *handle) release() {
	if h.raw == nil {
		return
	}
	h.raw.free()
	h.raw = nil
	atomic.AddInt64(&liveHandles, -1)
}

// mustRaw returns the owned native list. Using a list after Close is a
// bug in the caller, not recoverable input, so it faults.
func (h *handle) mustRaw() nativeList {
	if h.raw == nil {
		panic("nvlist: use of released list")
	}
	return h.raw
}
