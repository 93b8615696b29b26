// Package gorm provides the GORM-backed implementations of the store
// interfaces. All mutations that touch image files are routed through the
// lifecycle manager so file and row state stay consistent.
package gorm
