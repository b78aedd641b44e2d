// Package imaging bridges still images and the packed BGR24 frames consumed by
// package colordiff.
//
// It loads and caches source images, converts any image.Image into a tightly
// packed Blue/Green/Red buffer, runs the channel difference transform over a
// whole image or a cropped region, and turns the result back into an image for
// encoding or saving. Color sampling reports the source color next to the
// difference value the transform would write at that pixel.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner. For
// regions, (x1,y1) is inclusive and (x2,y2) is exclusive.
//
// # Alpha
//
// Frames have no alpha channel. Conversion goes through premultiplied RGBA, so
// translucent pixels become their color composited over black.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Cached images are treated as
// read-only; every transform works on a fresh frame.
package imaging
