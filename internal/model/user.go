// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered community member.
//
// WHY ID int64?
// User ids come from SQLite's INTEGER PRIMARY KEY (the rowid alias), so they
// are numeric and assigned by the database on insert. Other tables and API
// routes (/api/users/{id}/profile) refer to users by this number, and it
// never changes for the lifetime of the account.
//
// WHY Password `json:"-"`?
// The password field holds the stored scrypt credential, never the plaintext.
// The `json:"-"` tag means encoding/json skips it entirely, so a User can be
// written straight to an API response without ever leaking the credential.
// There is no "sometimes include it" mode — if you need the credential, you
// are in the auth package, not in an HTTP handler.
//
// TAG FIELDS:
// ProgrammingLanguages and Expertise are ordered sets of short labels
// ("JavaScript", "Backend", ...). They are []string in Go and in JSON, and
// are persisted as JSON text columns (SQLite has no array type). The profile
// form edits them as comma-joined text; the tags package owns that mapping.
type User struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Password             string    `json:"-"` // stored credential, never serialized
	Bio                  string    `json:"bio,omitempty"`
	WebsiteURL           string    `json:"websiteUrl,omitempty"`
	PortfolioURL         string    `json:"portfolioUrl,omitempty"`
	ProgrammingLanguages []string  `json:"programmingLanguages"`
	Expertise            []string  `json:"expertise"`
	Avatar               string    `json:"avatar,omitempty"`
	Reputation           int       `json:"reputation"` // never negative
	CreatedAt            time.Time `json:"createdAt"`
}
