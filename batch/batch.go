// Package batch implements fixed-size partitioning of slices for
// chunked API submission.
package batch

// Chunk splits items into consecutive groups of at most size elements.
// Order is preserved and every item appears in exactly one group.
// A size below 1 panics: batch caps are compile-time constants, so a
// bad size is a programmer error, not a runtime condition.
func Chunk[T any](items []T, size int) [][]T {
	if size < 1 {
		panic("batch: chunk size must be positive")
	}
	if len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
