// Package snowflake implements a coordinator-free 64-bit ID generator.
//
// An ID is laid out, from the most significant bit down, as
//
//	[ timestamp delta: 42 ][ datacenter: 5 ][ machine: 5 ][ sequence: 12 ]
//
// where the timestamp delta counts milliseconds since Epoch. IDs issued by one
// Generator are unique and strictly increasing; IDs issued by generators with
// distinct (datacenter, machine) pairs never collide because the identity
// fields occupy disjoint bit ranges.
//
// The bit widths and Epoch are constants of the scheme. Every node sharing an
// ID space must use the same values, and changing any of them breaks the
// ordering of previously issued IDs.
package snowflake
