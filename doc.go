// Package bitfields packs independent boolean attributes into a single
// integer storage column and translates both ways between the packed value
// and named flags. It also synthesizes SQL fragments that filter and update
// the packed column in one expression instead of one predicate per flag.
//
// A field group is declared once and shared:
//
//	group := bitfields.MustNewGroup("my_bits", map[uint64]string{
//		1: "seller", 2: "insane", 4: "sensible",
//	})
//
//	sql, _ := group.FilterSQL(
//		bitfields.Flag{Name: "insane", Value: true},
//		bitfields.Flag{Name: "sensible", Value: false},
//	)
//	// (my_bits & 6) = 2
//
// Per-record state lives in a Bitfield, whose Set and Commit calls are the
// two notifications the host persistence layer must forward. The library
// never executes SQL; fragments are plain strings for the host's query
// layer, and the column is assumed to hold a concrete non-negative integer.
package bitfields
