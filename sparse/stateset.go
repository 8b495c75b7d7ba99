package sparse

// StateSet is a set of small non-negative integers (NFA state indices) with a
// capacity fixed at construction time. It is the classical sparse/dense pair of
// arrays (Briggs & Torczon), which gives O(1) insertion, membership and clearing,
// and iteration in insertion order over the dense part.
//
//     S := NewStateSet(n)     // n = number of NFA states
//     S.Add(3)
//     S.Add(3)                // no-op
//     S.Len()                 // == 1
//     S.Clear()               // O(1)
//
// A StateSet never allocates after construction.
// It is not safe for concurrent use; the interpreter owns its sets per call.
type StateSet struct {
	dense  []int32
	sparse []int32
}

// NewStateSet creates an empty set able to hold the values 0…capacity-1.
func NewStateSet(capacity int) *StateSet {
	if capacity < 0 {
		capacity = 0
	}
	return &StateSet{
		dense:  make([]int32, 0, capacity),
		sparse: make([]int32, capacity),
	}
}

// Cap returns the capacity of the set, i.e. the exclusive upper bound of values.
func (s *StateSet) Cap() int {
	return len(s.sparse)
}

// Len returns the number of values in the set.
func (s *StateSet) Len() int {
	return len(s.dense)
}

// IsEmpty is true for a set without values.
func (s *StateSet) IsEmpty() bool {
	return len(s.dense) == 0
}

// Contains checks if x is member of the set. Values out of range are never members.
func (s *StateSet) Contains(x int) bool {
	if x < 0 || x >= len(s.sparse) {
		return false
	}
	i := s.sparse[x]
	return int(i) < len(s.dense) && int(s.dense[i]) == x
}

// Add inserts x and reports whether x was new to the set.
// Panics if x is out of range.
func (s *StateSet) Add(x int) bool {
	if s.Contains(x) {
		return false
	}
	s.sparse[x] = int32(len(s.dense))
	s.dense = append(s.dense, int32(x))
	return true
}

// Clear removes all values from the set, in constant time.
func (s *StateSet) Clear() {
	s.dense = s.dense[:0]
}

// Values returns the members of the set in insertion order.
// The slice is owned by the set and becomes invalid with the next modification.
func (s *StateSet) Values() []int32 {
	return s.dense
}
