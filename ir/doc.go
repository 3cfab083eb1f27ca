// Package ir provides the intermediate representation for flat constraint
// models.
//
// # Overview
//
// A flat model is a sequence of variable declarations, a flat list of
// constraint applications, and a solve goal. Every term appearing in a
// constraint argument list is an ir.Node: a literal (integer, boolean,
// float, integer set), a variable reference, an array, a call (used for
// annotations such as defines_var), an atom, or a string.
//
// The IR is a recursive tagged union realized as a single struct with a
// Type discriminator; values are placed in fields depending on the node
// type. It carries no source position information.
//
// # Variable references
//
// Variable nodes carry only an index into the corresponding variable table
// of the enclosing model. Two references to the same variable always
// compare equal and hash equal regardless of how they were constructed.
// Code that inserts variable nodes into sets or maps should obtain them
// from the model's canonical reference table rather than constructing them
// ad hoc, so set membership sees one node per variable.
//
// # Comparison and hashing
//
//	equal := ir.Compare(a, b) == 0
//	h := node.Hash()
//
// # JSON interoperability
//
// Nodes marshal to and from JSON, which is the hand-off format used by the
// upstream compiler and the fz command line tool.
package ir
