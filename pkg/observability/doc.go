/*
Package observability exposes Prometheus metrics for the enform engine:
validation failures per field, gate rejections, snapshot writes and
read fallbacks.
*/
package observability
