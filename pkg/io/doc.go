// Package io encodes rendered letter images to files and byte streams.
//
// # Formats
//
// Five raster formats are supported, selected by name or file extension:
//
//	png        lossless, default
//	jpg, jpeg  baseline JPEG
//	gif        paletted
//	tif, tiff  TIFF
//	bmp        BMP
//
// Use [ParseFormat] for user input and [FormatFromPath] to infer the format
// of an output file. Unknown names fail with INVALID_FORMAT.
//
// # Scaling
//
// Composites are small by default (190×250). [Scale] enlarges an image by an
// integer factor with nearest-neighbour resampling, so every source pixel
// becomes a crisp factor×factor block and strokes stay binary.
//
// # Export
//
//	img := compositor.Image()
//	err := io.Save(io.Scale(img, 4), "out/A-E.png", io.PNG)
//
// [Encode] writes to any io.Writer and [Bytes] returns the encoded payload,
// which is what the batch pipeline stores in its artifact cache.
//
// Encoding and saving are delegated to github.com/disintegration/imaging.
package io
