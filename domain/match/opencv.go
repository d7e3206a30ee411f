//go:build gocv

package match

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/soocke/pixel-clicker-go/domain/pixel"
)

// New returns the OpenCV-backed matcher when built with -tags gocv.
func New() Matcher { return OpenCV{} }

// OpenCV scores with cv::matchTemplate in TM_CCOEFF_NORMED mode. It keeps
// the same preconditions as NCC.
type OpenCV struct{}

func (OpenCV) Score(frame, ref *pixel.Buffer) (Result, error) {
	if frame.Empty() || ref.Empty() {
		return Result{}, ErrEmptyInput
	}
	f, r := Normalize(frame, ref)
	if err := CheckSize(f, r); err != nil {
		return Result{}, err
	}
	fm, err := toMat(f)
	if err != nil {
		return Result{}, err
	}
	defer fm.Close()
	rm, err := toMat(r)
	if err != nil {
		return Result{}, err
	}
	defer rm.Close()

	out := gocv.NewMat()
	defer out.Close()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.MatchTemplate(fm, rm, &out, gocv.TmCcoeffNormed, mask)
	_, maxVal, _, maxLoc := gocv.MinMaxLoc(out)
	return Result{Score: float64(maxVal), Loc: maxLoc}, nil
}

func toMat(b *pixel.Buffer) (gocv.Mat, error) {
	mt := gocv.MatTypeCV8UC3
	if b.C == 1 {
		mt = gocv.MatTypeCV8UC1
	}
	m, err := gocv.NewMatFromBytes(b.H, b.W, mt, b.Pix)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("match: %w", err)
	}
	return m, nil
}
