/*
Package schema declares, per logical field, its validation rules and error
message templates.

A Schema is an ordered set of Field descriptors with unique paths. Schemas
are plain values: they can be built in Go (see builtin.go), derived with a
path prefix for repeated sub-records (WithPrefix), or parsed from YAML
documents. The validate package consumes them; this package performs no
validation itself.
*/
package schema
