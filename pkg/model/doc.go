// Package model defines the records exchanged with the recipe management API
// and the collection descriptors that drive the generic page controller.
// Items are identified by a server-assigned ID; the Name is only a lookup key
// for humans and is assumed, not enforced, to be unique within a collection.
// Collection descriptors carry the route segment, the fields a create or
// update submits, and the user-facing messages each failure path surfaces.
package model
