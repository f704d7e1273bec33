package nvlist

// pair is one native entry: a name, the tag identifying the variant,
// and the decoded datum. Nested lists are held as independently owned
// sub-lists, never as aliases into the parent's storage.
type pair struct {
	name  string
	typ   Type
	datum Value
}

// pairStore is the in-memory entry storage both backends build on. It
// keeps native insertion order; the public API documents iteration
// order as backend-defined, so nothing above this layer may rely on it.
type pairStore struct {
	pairs []pair
}

func (s *pairStore) lookup(name string) (int, bool) {
	for i := range s.pairs {
		if s.pairs[i].name == name {
			return i, true
		}
	}
	return 0, false
}

func (s *pairStore) exists(name string) bool {
	_, ok := s.lookup(name)
	return ok
}

func (s *pairStore) typeOf(name string) (Type, bool) {
	i, ok := s.lookup(name)
	if !ok {
		return 0, false
	}
	return s.pairs[i].typ, true
}

// set stores v under name, replacing any prior entry so that duplicate
// names never surface through the typed API. The replaced entry's
// nested lists are released.
func (s *pairStore) set(name string, v Value) {
	p := pair{name: name, typ: v.Type(), datum: v}
	if i, ok := s.lookup(name); ok {
		freeDatum(s.pairs[i].datum)
		s.pairs[i] = p
		return
	}
	s.pairs = append(s.pairs, p)
}

func (s *pairStore) get(name string) (Value, bool) {
	i, ok := s.lookup(name)
	if !ok {
		return nil, false
	}
	return s.pairs[i].datum, true
}

func (s *pairStore) remove(name string) bool {
	i, ok := s.lookup(name)
	if !ok {
		return false
	}
	freeDatum(s.pairs[i].datum)
	s.pairs = append(s.pairs[:i], s.pairs[i+1:]...)
	return true
}

func (s *pairStore) count() int { return len(s.pairs) }

func (s *pairStore) walk(fn func(name string, v Value) bool) {
	for i := range s.pairs {
		if !fn(s.pairs[i].name, s.pairs[i].datum) {
			return
		}
	}
}

// copyInto deep-copies every pair into dst. Nested lists are cloned,
// acquiring their own handles.
func (s *pairStore) copyInto(dst *pairStore) {
	dst.pairs = make([]pair, len(s.pairs))
	for i := range s.pairs {
		dst.pairs[i] = pair{
			name:  s.pairs[i].name,
			typ:   s.pairs[i].typ,
			datum: copyValue(s.pairs[i].datum),
		}
	}
}

// freePairs releases nested lists owned by the store's entries. Called
// on handle release; nested lists go first, then the store is dropped.
func (s *pairStore) freePairs() {
	for i := range s.pairs {
		freeDatum(s.pairs[i].datum)
	}
	s.pairs = nil
}

func freeDatum(v Value) {
	switch v := v.(type) {
	case *List:
		v.Close()
	case ListArray:
		for _, l := range v {
			l.Close()
		}
	}
}
