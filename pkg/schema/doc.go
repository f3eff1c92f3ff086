// Package schema defines the attribute constraint model used to describe an
// entity's fields: the constraint parser and canonicalizer, the structural and
// logic validators, and the Attribute and Schema values built on top of them.
//
// Construction is all-or-nothing. NewAttribute and New either return a fully
// validated, immutable value or an error wrapping one of ErrInvalidAttribute,
// ErrInvalidAttributeLogic or ErrInvalidSchema. Nothing in this package
// performs I/O; see package schemafile for loading documents from disk.
package schema
