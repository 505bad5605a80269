package pngenc

// PNG filter types.
const (
	ftNone = iota
	ftSub
	ftUp
	ftAverage
	ftPaeth
	nFilter
)

// filterer holds per-band scratch rows for every candidate filter.
type filterer struct {
	cand [nFilter][]byte
}

func newFilterer(sampleLen int) *filterer {
	f := &filterer{}
	for i := ftSub; i < nFilter; i++ {
		f.cand[i] = make([]byte, sampleLen)
	}
	return f
}

// filter writes the best-scoring filtered form of cur into dst, whose
// first byte receives the filter type. Ties go to the lower filter type.
func (f *filterer) filter(cur, prev, dst []byte) {
	const bpp = bytesPerPixel
	n := len(cur)
	sub, up, avg, paeth := f.cand[ftSub], f.cand[ftUp], f.cand[ftAverage], f.cand[ftPaeth]

	for i := 0; i < n; i++ {
		var left, upLeft int
		if i >= bpp {
			left = int(cur[i-bpp])
			upLeft = int(prev[i-bpp])
		}
		above := int(prev[i])
		c := int(cur[i])

		sub[i] = byte(c - left)
		up[i] = byte(c - above)
		avg[i] = byte(c - (left+above)/2)
		paeth[i] = byte(c - paethPredictor(left, above, upLeft))
	}

	f.cand[ftNone] = cur
	best, bestScore := ftNone, score(cur)
	for ft := ftSub; ft < nFilter; ft++ {
		if s := score(f.cand[ft]); s < bestScore {
			best, bestScore = ft, s
		}
	}

	dst[0] = byte(best)
	copy(dst[1:], f.cand[best])
}

// score is the sum of the residuals read as signed bytes.
func score(row []byte) int {
	sum := 0
	for _, b := range row {
		v := int(int8(b))
		if v < 0 {
			v = -v
		}
		sum += v
	}
	return sum
}

func paethPredictor(a, b, c int) int {
	p := a + b - c
	pa, pb, pc := abs(p-a), abs(p-b), abs(p-c)
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
