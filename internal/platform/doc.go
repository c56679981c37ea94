package platform

// Package platform contains filesystem glue: title sanitization for safe
// path components, directory creation, and the chapter/video naming scheme
// used for the on-disk course layout.
