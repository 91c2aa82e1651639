package raster

import "testing"

func checkerboard(t *testing.T) *Image {
	t.Helper()
	img, err := FromArray([][]Color{
		{{R: 1, A: 255}, {R: 2, A: 255}, {R: 3, A: 255}},
		{{G: 4, A: 255}, {G: 5, A: 255}, {G: 6, A: 128}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestScale(t *testing.T) {
	for _, factor := range []int{1, 2, 3, 5} {
		src := checkerboard(t)
		img := checkerboard(t)

		if ret := img.Scale(factor); ret != img {
			t.Fatal("Scale did not return its receiver")
		}
		if img.Width() != 3*factor || img.Height() != 2*factor {
			t.Fatalf("factor %d: image is %dx%d", factor, img.Width(), img.Height())
		}
		if len(img.Pix()) != img.Width()*img.Height()*4 {
			t.Fatalf("factor %d: buffer has %d bytes", factor, len(img.Pix()))
		}

		for dy := range img.Height() {
			for dx := range img.Width() {
				want, _ := src.GetColor(dx/factor, dy/factor)
				if got, _ := img.GetColor(dx, dy); got != want {
					t.Fatalf("factor %d: pixel (%d, %d) is %v, expected %v", factor, dx, dy, got, want)
				}
			}
		}
	}
}

func TestScaleClampsFactor(t *testing.T) {
	for _, factor := range []int{0, -3} {
		img := checkerboard(t)
		before := img.Pix()

		img.Scale(factor)
		if img.Width() != 3 || img.Height() != 2 {
			t.Errorf("factor %d: image is %dx%d, expected 3x2", factor, img.Width(), img.Height())
		}
		if &img.Pix()[0] == &before[0] {
			t.Errorf("factor %d: buffer was not reallocated", factor)
		}
		if string(img.Pix()) != string(before) {
			t.Errorf("factor %d: content changed", factor)
		}
	}
}
