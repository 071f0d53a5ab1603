package kernel

// Sources records the on-disk locations that back a discovered Kernel
// (spec §3). KernelBlobPath is the only field guaranteed present; the
// others are empty strings when the corresponding sibling file is
// missing.
type Sources struct {
	KernelBlobPath string
	CmdlinePath    string
	ConfigPath     string
	InitrdPath     string
	ModuleDir      string
}

// Kernel is a single discovered kernel record. It is immutable once
// constructed by Scan and borrowed from its containing Collection; it
// must not outlive that collection.
type Kernel struct {
	Meta           SystemKernel
	Source         Sources
	DefaultForType bool
}

// Collection is an ordered sequence of Kernel records, in filesystem-scan
// insertion order. It is not deduplicated except by identity triple.
type Collection []Kernel

// Len and Swap are defined on Collection, but there is no Less method, so
// Collection does not implement sort.Interface; callers sort with
// SortByReleaseAsc/SortByReleaseDesc below, which is the pair tested by
// spec §8's sort-stability property.
func (c Collection) Len() int      { return len(c) }
func (c Collection) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// SortByReleaseAsc returns a new Collection ordered by ascending release,
// leaving the receiver untouched.
func (c Collection) SortByReleaseAsc() Collection {
	out := append(Collection(nil), c...)
	insertionSort(out, func(a, b Kernel) bool { return a.Meta.Release < b.Meta.Release })
	return out
}

// SortByReleaseDesc returns a new Collection ordered by descending
// release, leaving the receiver untouched.
func (c Collection) SortByReleaseDesc() Collection {
	out := append(Collection(nil), c...)
	insertionSort(out, func(a, b Kernel) bool { return a.Meta.Release > b.Meta.Release })
	return out
}

// insertionSort is a small stable sort; the collections discovery deals
// with are small enough (tens of kernels) that O(n^2) is irrelevant, and
// stability keeps first-seen ordering for ties, matching the tie-break
// rule used elsewhere in this package.
func insertionSort(c Collection, less func(a, b Kernel) bool) {
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && less(c[j], c[j-1]); j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}

// TypeIndex maps a ktype to the non-empty Collection of Kernels sharing
// that type (spec §3). Every Kernel in a value Collection has matching
// KType.
type TypeIndex map[string]Collection

// ByType partitions the collection by ktype, preserving per-type
// insertion order (spec §4.4).
func (c Collection) ByType() TypeIndex {
	idx := make(TypeIndex)
	for _, k := range c {
		idx[k.Meta.KType] = append(idx[k.Meta.KType], k)
	}
	return idx
}

// DefaultForType returns the Kernel marked default for ktype, if any;
// otherwise the Kernel with the maximum release for that type; or nil if
// no Kernel in the collection has that type (spec §4.4).
func (c Collection) DefaultForType(ktype string) *Kernel {
	var best *Kernel
	for i := range c {
		k := &c[i]
		if k.Meta.KType != ktype {
			continue
		}
		if k.DefaultForType {
			cp := *k
			return &cp
		}
		if best == nil || k.Meta.Release > best.Meta.Release {
			cp := *k
			best = &cp
		}
	}
	return best
}
