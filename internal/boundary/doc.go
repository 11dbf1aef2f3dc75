// Package boundary constructs the absorbing boundary domains of the
// finite-difference grid.
//
// The boundary is a perfectly matched layer realised as an additional rail
// damping coefficient that rises smoothly from zero at the interior edge
// of the boundary domain to a reference maximum at the physical boundary.
// The discretization adds the ramp to the rail damping vector at both
// ends, reversed on the left side, so outgoing bending waves decay before
// they can reflect.
package boundary
