// Package model defines the GORM entities backing the tourism content store.
package model
