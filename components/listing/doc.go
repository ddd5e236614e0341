// Package listing serves a cached collection over net/http as JSON.
//
// The handler answers GET and HEAD requests. The q parameter filters items by
// case-insensitive substring on name, keeping cache order, and limit caps the
// result size. Nothing is fetched from the backend; the handler only reads
// whatever the Source currently holds.
package listing
