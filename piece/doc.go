// Package piece is the static catalog of the seven falling-block shapes.
//
// Each shape is a 4x4 mask stored in its canonical orientation. Rotations never copy or
// allocate a mask: Rotate maps a displayed cell back to the index it reads from in the
// canonical mask, so collision tests and rendering share a single rotation computation.
package piece
