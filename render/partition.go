package render

// Rows are assigned to workers round-robin: worker t of n owns rows
// t, t+n, t+2n, ... Per-pixel cost is close to uniform, so the static
// interleave balances load without a shared queue.

// RowsFor returns the rows owned by worker t of n in an image of size rows.
func RowsFor(t, n, size int) []int {
	if t < 0 || n <= 0 || t >= n || size <= 0 {
		return nil
	}
	rows := make([]int, 0, (size+n-1-t)/n)
	for row := t; row < size; row += n {
		rows = append(rows, row)
	}
	return rows
}
