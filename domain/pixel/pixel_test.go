package pixel

import (
	"image"
	"image/color"
	"testing"
)

func TestAround_CentersAndClamps(t *testing.T) {
	buf := New(100, 100, 3)
	patch, rect, err := buf.Around(50, 50, 40)
	if err != nil || patch == nil {
		t.Fatalf("expected patch, got err=%v", err)
	}
	if rect.Dx() != 40 || rect.Dy() != 40 {
		t.Fatalf("expected 40x40, got %dx%d", rect.Dx(), rect.Dy())
	}
	if rect.Min.X != 30 || rect.Min.Y != 30 {
		t.Fatalf("unexpected rect origin %v", rect.Min)
	}
	if patch.W != 40 || patch.H != 40 || patch.C != 3 {
		t.Fatalf("unexpected patch dims %dx%dx%d", patch.W, patch.H, patch.C)
	}
}

func TestAround_ClampsNearEdge(t *testing.T) {
	buf := New(20, 20, 1)
	_, rect, err := buf.Around(2, 2, 10)
	if err != nil {
		t.Fatalf("around error: %v", err)
	}
	if rect.Min.X != 0 || rect.Min.Y != 0 {
		t.Fatalf("expected clamp to 0,0 got %v", rect.Min)
	}
	if rect.Max.X > 20 || rect.Max.Y > 20 {
		t.Fatalf("rect exceeds buffer bounds: %v", rect)
	}
}

func TestAround_MinSize(t *testing.T) {
	buf := New(10, 10, 3)
	_, rect, _ := buf.Around(0, 0, 0)
	if rect.Dx() != 1 || rect.Dy() != 1 {
		t.Fatalf("expected 1x1 got %dx%d", rect.Dx(), rect.Dy())
	}
}

func TestCrop_CopiesPixels(t *testing.T) {
	buf := New(4, 3, 1)
	for i := range buf.Pix {
		buf.Pix[i] = byte(i)
	}
	out, err := buf.Crop(image.Rect(1, 1, 3, 3))
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	want := []byte{5, 6, 9, 10}
	for i, v := range want {
		if out.Pix[i] != v {
			t.Fatalf("pix[%d]=%d want %d", i, out.Pix[i], v)
		}
	}
	out.Pix[0] = 99
	if buf.Pix[5] != 5 {
		t.Fatalf("crop must not alias the source")
	}
}

func TestCrop_OutsideIsError(t *testing.T) {
	buf := New(4, 4, 3)
	if _, err := buf.Crop(image.Rect(10, 10, 12, 12)); err == nil {
		t.Fatalf("expected error for crop outside buffer")
	}
}

func TestFromImage_RGBAIsBGR(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img.Set(1, 0, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	buf := FromImage(img)
	if buf.C != 3 {
		t.Fatalf("expected 3 channels, got %d", buf.C)
	}
	want := []byte{30, 20, 10, 50, 100, 200}
	for i, v := range want {
		if buf.Pix[i] != v {
			t.Fatalf("pix[%d]=%d want %d", i, buf.Pix[i], v)
		}
	}
	if got := buf.At(1, 0); got.R != 200 || got.B != 50 {
		t.Fatalf("At returned %v", got)
	}
}

func TestFromImage_GrayStaysSingleChannel(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(2, 1, color.Gray{Y: 77})
	buf := FromImage(img)
	if buf.C != 1 || buf.W != 3 || buf.H != 2 {
		t.Fatalf("unexpected dims %dx%dx%d", buf.W, buf.H, buf.C)
	}
	if buf.Pix[5] != 77 {
		t.Fatalf("expected 77 got %d", buf.Pix[5])
	}
}

func TestFromImage_TransparentNRGBAKeepsColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0})
	img.SetNRGBA(1, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 128})
	buf := FromImage(img)
	want := []byte{50, 100, 200, 3, 2, 1}
	for i, v := range want {
		if buf.Pix[i] != v {
			t.Fatalf("pix[%d]=%d want %d", i, buf.Pix[i], v)
		}
	}
}

func TestFromImage_GenericModelIsUnpremultiplied(t *testing.T) {
	img := image.NewNRGBA64(image.Rect(0, 0, 1, 1))
	img.SetNRGBA64(0, 0, color.NRGBA64{R: 200 << 8, G: 100 << 8, B: 50 << 8, A: 0x4000})
	buf := FromImage(img)
	if buf.C != 3 || buf.Pix[0] != 50 || buf.Pix[1] != 100 || buf.Pix[2] != 200 {
		t.Fatalf("unexpected pixel %v", buf.Pix)
	}
}

func TestFromImageColor_GrayExpandsToBGR(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(2, 1, color.Gray{Y: 77})
	buf := FromImageColor(img)
	if buf.C != 3 || buf.W != 3 || buf.H != 2 {
		t.Fatalf("unexpected dims %dx%dx%d", buf.W, buf.H, buf.C)
	}
	if got := buf.Pix[15:18]; got[0] != 77 || got[1] != 77 || got[2] != 77 {
		t.Fatalf("expected 77 in every channel, got %v", got)
	}
	if buf.Pix[0] != 0 {
		t.Fatalf("untouched pixel should stay zero")
	}
}

func TestGray_Weights(t *testing.T) {
	buf := New(3, 1, 3)
	copy(buf.Pix, []byte{
		0, 0, 255, // red
		0, 255, 0, // green
		255, 255, 255,
	})
	g := buf.Gray()
	if g.C != 1 {
		t.Fatalf("expected single channel")
	}
	if g.Pix[0] != 76 || g.Pix[1] != 150 || g.Pix[2] != 255 {
		t.Fatalf("unexpected luma %v", g.Pix)
	}
	if g.Gray() != g {
		t.Fatalf("gray of gray should be identity")
	}
}

func TestPaste_ClipsToBounds(t *testing.T) {
	dst := New(5, 5, 1)
	src := New(3, 3, 1)
	for i := range src.Pix {
		src.Pix[i] = 9
	}
	dst.Paste(src, image.Pt(3, 3))
	if dst.Pix[3*5+3] != 9 || dst.Pix[4*5+4] != 9 {
		t.Fatalf("paste did not write expected pixels")
	}
	if dst.Pix[2*5+2] != 0 {
		t.Fatalf("paste wrote outside target area")
	}
}

func TestRGBA_RoundTripsColour(t *testing.T) {
	buf := New(1, 1, 3)
	copy(buf.Pix, []byte{1, 2, 3})
	img := buf.RGBA()
	if img.Pix[0] != 3 || img.Pix[1] != 2 || img.Pix[2] != 1 || img.Pix[3] != 255 {
		t.Fatalf("unexpected rgba %v", img.Pix[:4])
	}
}
