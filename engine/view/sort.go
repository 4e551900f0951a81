package view

// radixSort orders headers by sortKey ascending using an 8-pass LSD radix
// sort, one byte per pass, over bits 0-63 of the 64-bit key (spec.md §4.7's "radix-sort the
// headers by key ascending"). Stable per pass, so headers sharing a key
// keep their original relative order (the order boxes were queried from
// the grid).
func radixSort(headers []commandHeader) {
	if len(headers) < 2 {
		return
	}
	buf := make([]commandHeader, len(headers))
	src, dst := headers, buf
	var counts [256]int
	for shift := uint(0); shift < 64; shift += 8 {
		for i := range counts {
			counts[i] = 0
		}
		for _, h := range src {
			counts[byte(h.sortKey>>shift)]++
		}
		sum := 0
		for i, c := range counts {
			counts[i] = sum
			sum += c
		}
		for _, h := range src {
			b := byte(h.sortKey >> shift)
			dst[counts[b]] = h
			counts[b]++
		}
		src, dst = dst, src
	}
	if &src[0] != &headers[0] {
		copy(headers, src)
	}
}
