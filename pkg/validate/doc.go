/*
Package validate evaluates records against schema descriptors.

Validation is pure: the Validator holds no record state, returns messages as
data (never errors), and leaves error storage and visibility to callers.
Rules run in fixed priority per field: required, format, computed range,
cross-field equality. Composite fields (segmented phone numbers) validate
the joined value only once every segment is populated.
*/
package validate
