// Package gcode reads, rewrites and writes slicer G-code for per-object
// macro injection.
//
// The only syntax recognised is the object-start marker emitted by the
// slicer:
//
//	; printing object Shape-Box id:5 copy 0
//
// Every marker is followed in the output by a macro call for its object:
//
//	M98 P"/macros/by-object/5"
//
// All other lines pass through byte-identical. Lines keep their original
// terminators from ReadLines through WriteLines.
package gcode
