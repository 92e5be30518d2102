// Package macro writes one firmware macro file per object.
//
// Files live under <root>/macros/by-object and are named after the object
// ID, mirroring the path the rewritten G-code calls with M98. Every run
// recreates the files from scratch.
package macro
