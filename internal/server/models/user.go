// Package models defines the rows persisted by the server.
package models

// User is a row of the users table. Email is unique and case-sensitive.
type User struct {
	ID             int64
	Email          string
	HashedPassword string
	IsActive       bool
}
