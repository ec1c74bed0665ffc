package render

import "testing"

func TestRowsFor_CoversEveryRowOnce(t *testing.T) {
	for _, size := range []int{1, 2, 7, 64, 101} {
		for n := 1; n <= 12; n++ {
			seen := make([]int, size)
			for w := 0; w < n; w++ {
				for _, row := range RowsFor(w, n, size) {
					seen[row]++
					if row%n != w {
						t.Errorf("size=%d n=%d: row %d given to worker %d, want %d", size, n, row, w, row%n)
					}
				}
			}
			for row, count := range seen {
				if count != 1 {
					t.Errorf("size=%d n=%d: row %d owned %d times, want 1", size, n, row, count)
				}
			}
		}
	}
}

func TestRowsFor_Interleaved(t *testing.T) {
	got := RowsFor(1, 3, 10)
	want := []int{1, 4, 7}
	if len(got) != len(want) {
		t.Fatalf("RowsFor(1, 3, 10) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RowsFor(1, 3, 10)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRowsFor_InvalidArguments(t *testing.T) {
	tests := []struct {
		name       string
		t, n, size int
	}{
		{"negative worker", -1, 4, 10},
		{"worker out of range", 4, 4, 10},
		{"no workers", 0, 0, 10},
		{"empty image", 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RowsFor(tt.t, tt.n, tt.size); len(got) != 0 {
				t.Errorf("RowsFor(%d, %d, %d) = %v, want empty", tt.t, tt.n, tt.size, got)
			}
		})
	}
}

func TestRowsFor_MoreWorkersThanRows(t *testing.T) {
	if got := RowsFor(5, 8, 3); len(got) != 0 {
		t.Errorf("RowsFor(5, 8, 3) = %v, want empty", got)
	}
	if got := RowsFor(2, 8, 3); len(got) != 1 || got[0] != 2 {
		t.Errorf("RowsFor(2, 8, 3) = %v, want [2]", got)
	}
}
