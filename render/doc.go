// Package render crops painted image regions out of a rasterized page.
//
// Rendering the page itself is delegated to a [Rasterizer]; this package
// owns the conversion from page-space rectangles to pixel rectangles and the
// encoding of the cropped pixels.
//
//	enc, err := render.EncoderFor("png")
//	if err != nil {
//	    return err
//	}
//	cropper := render.NewCropper(2, enc)
//	images, err := cropper.Crop(bitmap, regions)
//
// # Output Formats
//
// [EncoderFor] supports png, jpeg (jpg), gif, bmp and tiff (tif).
package render
