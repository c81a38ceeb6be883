package solver

// Archive is the set of board hashes already reached during a search
type Archive struct {
	seen map[uint64]struct{}
}

// NewArchive creates an empty archive
func NewArchive() *Archive {
	return &Archive{seen: make(map[uint64]struct{})}
}

// AddIfAbsent inserts h and reports whether it was new
func (a *Archive) AddIfAbsent(h uint64) bool {
	if _, ok := a.seen[h]; ok {
		return false
	}
	a.seen[h] = struct{}{}
	return true
}

// Contains reports whether h has been archived
func (a *Archive) Contains(h uint64) bool {
	_, ok := a.seen[h]
	return ok
}

// Len returns the number of distinct hashes
func (a *Archive) Len() int {
	return len(a.seen)
}
