// Package motion maps object IDs laid out on a virtual grid to per-object
// jerk and acceleration settings.
//
// IDs are assumed to be assigned row-major across a NumX-wide grid. The
// object's column selects the travel jerk between JerkMin and JerkMax, its
// row offset selects the print acceleration between AccelMin and AccelMax.
// IDs outside the NumX x NumY grid are not rejected; they extrapolate past
// the configured ranges.
package motion
