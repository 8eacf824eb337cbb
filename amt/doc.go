// Package amt encodes a bitmap trie into pointer-free array-mapped tries
// (AMT) and matches words directly against the encoded arrays.
//
// Two encodings are provided. Both are built once and never mutated.
//
// Flat image:
// ----------
//
// One array of 32-bit words made of blocks laid out in preorder. A block is
// the node bitmap followed by one descriptor per child, in symbol order:
//
//	[ bitmap ] [ desc 0 ] [ desc 1 ] ... [ desc N-1 ]      N = popcount(bitmap)
//
//	descriptor:
//
//	[   1:31   ] [          31:30-00           ]
//	<T:terminal> <III...III:child block index>
//
// Child block indices always point forward, so the image is acyclic and can
// be validated in a single pass.
//
// Split image:
// -----------
//
// A mask table holding every distinct node bitmap once, and an edge table
// with one word per edge, grouped per parent in symbol order:
//
//	edge:
//
//	[   1:31   ] [       15:30-16        ] [     16:15-00      ]
//	<T:terminal> <OOO...OOO:edge offset>   <MMM...MMM:mask index>
//
// The offset is relative to the edge block of the parent and locates the
// edge block of the child. Matching keeps a (mask index, edge base) pair
// starting at (0, 0).
//
// Example for {"ab", "b"}:
//
//	flat:   00000003 00000003 80000006 00000002 80000005 00000000 00000000
//	masks:  00000003 00000002 00000000
//	edges:  00020001 80030002 80010002
package amt
