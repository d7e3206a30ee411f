package view

import (
	"image"

	"github.com/soocke/pixel-clicker-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// HitPreview shows the frame patch of the most recent click.
type HitPreview interface {
	UpdateHit(img image.Image)
	Reset()
}

type hitPreview struct {
	label     *LabelWidget
	prevPhoto *Img // disposed before replacement so old pixel data is not retained
}

const (
	maxHitW = 200
	maxHitH = 120
)

// NewHitPreview creates the preview label inside parent at row.
func NewHitPreview(parent *FrameWidget, row, col int) HitPreview {
	photo := placeholderPhoto(maxHitW, maxHitH)
	lbl := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(lbl, In(parent), Row(row), Column(col), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return &hitPreview{label: lbl, prevPhoto: photo}
}

func placeholderPhoto(w, h int) *Img {
	return NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, w, h)))))
}

func (v *hitPreview) UpdateHit(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	v.replace(NewPhoto(Data(images.EncodePNG(images.ScaleToFit(img, maxHitW, maxHitH)))))
}

func (v *hitPreview) Reset() {
	if v == nil || v.label == nil {
		return
	}
	v.replace(placeholderPhoto(maxHitW, maxHitH))
}

func (v *hitPreview) replace(p *Img) {
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = p
	v.label.Configure(Image(p))
}
