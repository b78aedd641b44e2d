// Package colordiff implements the red-minus-blue channel difference transform
// for packed 24-bit video frames.
//
// A frame is a contiguous byte slice of width*height pixels, three bytes per
// pixel in Blue, Green, Red order, row-major with no row padding. Each pixel
// is overwritten in place with a gray value that encodes the difference
// between its red and blue channels:
//
//	diff = clamp(r/2 - b/2 + 128, 0, 254)
//
// The green channel is ignored. The ceiling is 254, not 255.
//
// # Error Handling
//
// The only failure is a malformed call: negative dimensions or a buffer whose
// length is not width*height*3. Such calls return an error wrapping
// ErrInvalidArgument and leave the buffer untouched.
//
// # Thread Safety
//
// Apply holds no state. Concurrent calls on distinct buffers are safe; the
// caller must guarantee exclusive access to a buffer for the duration of a
// call. ApplyParallel splits one buffer into disjoint row bands internally.
package colordiff
