package sparse

import (
	"testing"
)

func TestMatrixSetAndGet(t *testing.T) {
	M := NewIntMatrix(4, 0x110000, -1)
	M.Set(2, 'a', 4711)
	M.Set(0, 'z', 1)
	M.Set(2, 'A', 2)
	M.Set(3, 0x1F600, 3)
	if v := M.Value(2, 'a'); v != 4711 {
		t.Errorf("expected M(2,'a') to be 4711, is %d", v)
	}
	if v := M.Value(2, 'b'); v != -1 {
		t.Errorf("expected M(2,'b') to be null value, is %d", v)
	}
	if v := M.Value(3, 0x1F600); v != 3 {
		t.Errorf("expected M(3,😀) to be 3, is %d", v)
	}
	M.Set(2, 'a', 5)
	if v := M.Value(2, 'a'); v != 5 {
		t.Errorf("expected M(2,'a') to be overwritten with 5, is %d", v)
	}
	if M.ValueCount() != 4 {
		t.Errorf("expected 4 values in matrix, have %d", M.ValueCount())
	}
}

func TestMatrixRowMajorOrder(t *testing.T) {
	M := NewIntMatrix(3, 128, DefaultNullValue)
	M.Set(2, 'b', 1)
	M.Set(0, 'c', 2)
	M.Set(2, 'a', 3)
	M.Set(1, 'x', 4)
	var order []int32
	M.Each(func(i, j int, v int32) {
		order = append(order, v)
	})
	expected := []int32{2, 4, 3, 1}
	for k := range expected {
		if order[k] != expected[k] {
			t.Fatalf("expected row-major order %v, have %v", expected, order)
		}
	}
}

func TestMatrixOutOfRange(t *testing.T) {
	M := NewIntMatrix(1, 10, -1)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected Set() outside of matrix to panic")
		}
	}()
	M.Set(1, 0, 7)
}

func TestStateSet(t *testing.T) {
	S := NewStateSet(10)
	if !S.IsEmpty() {
		t.Errorf("new set should be empty")
	}
	if !S.Add(3) || S.Add(3) {
		t.Errorf("expected first Add(3) to insert and second to be a no-op")
	}
	for _, x := range []int{7, 0, 3, 9} {
		S.Add(x)
	}
	if S.Len() != 4 {
		t.Errorf("expected set of size 4, have %d", S.Len())
	}
	for _, x := range []int{0, 3, 7, 9} {
		if !S.Contains(x) {
			t.Errorf("expected %d to be member of set", x)
		}
	}
	if S.Contains(5) || S.Contains(-1) || S.Contains(10) {
		t.Errorf("set contains values never added")
	}
	if v := S.Values(); v[0] != 3 || v[1] != 7 {
		t.Errorf("expected insertion order, have %v", v)
	}
	S.Clear()
	if !S.IsEmpty() || S.Contains(3) {
		t.Errorf("expected cleared set to be empty")
	}
	S.Add(9)
	if S.Len() != 1 || !S.Contains(9) {
		t.Errorf("set unusable after Clear()")
	}
}

func TestStateSetNoAllocs(t *testing.T) {
	S := NewStateSet(64)
	allocs := testing.AllocsPerRun(100, func() {
		for i := 0; i < 64; i += 3 {
			S.Add(i)
		}
		S.Clear()
	})
	if allocs > 0 {
		t.Errorf("expected 0 allocations, got %f", allocs)
	}
}
