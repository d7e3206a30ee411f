package match

import (
	"math"
	"runtime"
	"sync"

	"github.com/soocke/pixel-clicker-go/domain/pixel"
)

// varianceEps is the smallest window or reference variance that is
// correlated at all; flatter inputs score 0.
const varianceEps = 1e-3

// minBandRows keeps bands large enough that goroutine overhead stays small.
const minBandRows = 8

// NCC is the pure-Go matcher. It scans every valid alignment, splitting the
// rows into bands that are scored in parallel and merged in band order so
// the result does not depend on scheduling.
type NCC struct {
	// Workers bounds the number of concurrent bands; 0 means runtime.NumCPU.
	Workers int

	// primitive replaces the correlation step; nil uses correlate.
	primitive func(frame, ref *pixel.Buffer) Result
}

// NewNCC returns a matcher using all CPUs.
func NewNCC() *NCC { return &NCC{} }

// Score implements Matcher.
func (m *NCC) Score(frame, ref *pixel.Buffer) (Result, error) {
	if frame.Empty() || ref.Empty() {
		return Result{}, ErrEmptyInput
	}
	f, r := Normalize(frame, ref)
	if err := CheckSize(f, r); err != nil {
		return Result{}, err
	}
	if m.primitive != nil {
		return m.primitive(f, r), nil
	}
	return m.correlate(f, r), nil
}

// framePrecomp holds per-channel summed-area tables of the frame and its
// square. Tables are (W+1) x (H+1) with a zero first row and column, so a
// window sum is four lookups.
type framePrecomp struct {
	W, H, C    int
	integral   [][]float64
	integralSq [][]float64
}

func buildFramePrecomp(f *pixel.Buffer) *framePrecomp {
	stride := f.W + 1
	p := &framePrecomp{
		W: f.W, H: f.H, C: f.C,
		integral:   make([][]float64, f.C),
		integralSq: make([][]float64, f.C),
	}
	for c := 0; c < f.C; c++ {
		sum := make([]float64, stride*(f.H+1))
		sq := make([]float64, stride*(f.H+1))
		for y := 0; y < f.H; y++ {
			var rowSum, rowSq float64
			row := f.Pix[y*f.W*f.C:]
			for x := 0; x < f.W; x++ {
				v := float64(row[x*f.C+c])
				rowSum += v
				rowSq += v * v
				off := (y+1)*stride + x + 1
				sum[off] = sum[off-stride] + rowSum
				sq[off] = sq[off-stride] + rowSq
			}
		}
		p.integral[c] = sum
		p.integralSq[c] = sq
	}
	return p
}

// windowVariance returns the summed squared deviation of the w x h window
// at (x, y), accumulated over all channels.
func (p *framePrecomp) windowVariance(x, y, w, h int) float64 {
	stride := p.W + 1
	a := y*stride + x
	b := y*stride + x + w
	c := (y+h)*stride + x
	d := (y+h)*stride + x + w
	n := float64(w * h)
	var total float64
	for ch := 0; ch < p.C; ch++ {
		s := p.integral[ch]
		sq := p.integralSq[ch]
		sum := s[d] - s[b] - s[c] + s[a]
		sum2 := sq[d] - sq[b] - sq[c] + sq[a]
		total += sum2 - sum*sum/n
	}
	return total
}

// templatePrecomp stores the reference with its per-channel mean removed,
// interleaved like the source buffer, and the sum of squares of that
// centered data.
type templatePrecomp struct {
	W, H, C  int
	centered []float64
	norm2    float64
}

func buildTemplatePrecomp(t *pixel.Buffer) *templatePrecomp {
	n := t.W * t.H
	means := make([]float64, t.C)
	for i := 0; i < n; i++ {
		for c := 0; c < t.C; c++ {
			means[c] += float64(t.Pix[i*t.C+c])
		}
	}
	for c := range means {
		means[c] /= float64(n)
	}
	pc := &templatePrecomp{W: t.W, H: t.H, C: t.C, centered: make([]float64, len(t.Pix))}
	for i := 0; i < n; i++ {
		for c := 0; c < t.C; c++ {
			v := float64(t.Pix[i*t.C+c]) - means[c]
			pc.centered[i*t.C+c] = v
			pc.norm2 += v * v
		}
	}
	return pc
}

// scoreAt correlates the reference with the window at (x, y). Because the
// reference is mean-centered, the window mean cancels out of the numerator.
func scoreAt(f *pixel.Buffer, fp *framePrecomp, tp *templatePrecomp, x, y int) float64 {
	varF := fp.windowVariance(x, y, tp.W, tp.H)
	if varF <= varianceEps {
		return 0
	}
	rowLen := tp.W * tp.C
	var numer float64
	for ty := 0; ty < tp.H; ty++ {
		off := ((y+ty)*f.W + x) * f.C
		fRow := f.Pix[off : off+rowLen]
		tRow := tp.centered[ty*rowLen : (ty+1)*rowLen]
		for i, v := range fRow {
			numer += float64(v) * tRow[i]
		}
	}
	denom := math.Sqrt(varF * tp.norm2)
	if denom <= 0 {
		return 0
	}
	score := numer / denom
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}
	return score
}

type bandResult struct {
	Result
	ok bool
}

// correlate scans every alignment and returns the maximum score. Ties keep
// the first alignment in row-major order.
func (m *NCC) correlate(f, t *pixel.Buffer) Result {
	tp := buildTemplatePrecomp(t)
	rows := f.H - t.H + 1
	cols := f.W - t.W + 1
	if tp.norm2 <= varianceEps {
		// a flat reference correlates with nothing
		return Result{}
	}
	fp := buildFramePrecomp(f)

	workers := m.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	bands := min(workers, max(1, rows/minBandRows))
	bandSize := (rows + bands - 1) / bands

	results := make([]bandResult, bands)
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for b := 0; b < bands; b++ {
		y0 := b * bandSize
		y1 := min(rows, y0+bandSize)
		if y0 >= y1 {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(idx, y0, y1 int) {
			defer wg.Done()
			defer func() { <-sem }()
			best := bandResult{}
			for y := y0; y < y1; y++ {
				for x := 0; x < cols; x++ {
					s := scoreAt(f, fp, tp, x, y)
					if !best.ok || s > best.Score {
						best.Score, best.Loc.X, best.Loc.Y, best.ok = s, x, y, true
					}
				}
			}
			results[idx] = best
		}(b, y0, y1)
	}
	wg.Wait()

	var best bandResult
	for _, r := range results {
		if !r.ok {
			continue
		}
		if !best.ok || r.Score > best.Score {
			best = r
		}
	}
	return best.Result
}
