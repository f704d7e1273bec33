package nvlist

// Merge returns a new list holding the union of left and right. Where
// both contain the same name, right's value wins, whatever the types on
// either side. The merge is shallow: nested lists are copied whole, not
// merged key by key.
//
// Both operands must belong to the same backend; mixing backends would
// silently re-encode values across incompatible pack formats, so it
// fails with ErrCrossBackend instead. The operands are left untouched.
func Merge(left, right *List) (*List, error) {
	left.h.mustRaw()
	rraw := right.h.mustRaw()
	if left.backend != right.backend {
		return nil, ErrCrossBackend
	}

	out := left.Clone()
	var errno int
	rraw.walk(func(name string, v Value) bool {
		errno = out.h.mustRaw().set(name, copyValue(v))
		return errno == 0
	})
	if err := errnoToErr(errno); err != nil {
		out.Close()
		return nil, err
	}
	return out, nil
}
