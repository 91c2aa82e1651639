package raster

// Scale enlarges the image by an integer factor with nearest-neighbor sampling: every
// source pixel becomes a factor x factor block. Factors below 1 are treated as 1.
func (img *Image) Scale(factor int) *Image {
	factor = max(factor, 1)
	width, height := img.width*factor, img.height*factor
	stride := width * 4

	pix := make([]uint8, stride*height)
	for dy := range height {
		row := pix[dy*stride : (dy+1)*stride]
		for dx := range width {
			si := img.Index(dx/factor, dy/factor)
			copy(row[dx*4:dx*4+4], img.pix[si:si+4])
		}
	}

	*img = Image{width: width, height: height, pix: pix}
	return img
}
