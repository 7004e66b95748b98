package model

import "time"

// BadgeCriteria is the structured rule deciding when a badge is earned.
//
// It is stored as a JSON object in the badges.criteria column — never as a
// loose string — so it always parses back into {type, threshold}. The
// bootstrap seeder is the only producer of this shape today; the awarding
// process that consumes it lives outside this service.
//
// Type is a discriminator: "join" (account created) or "posts" (post count
// reached Threshold). New kinds can be added without a schema change.
type BadgeCriteria struct {
	Type      string `json:"type"`
	Threshold int    `json:"threshold"` // non-negative
}

// Badge is an awardable recognition record.
//
// Like categories, badges are seeded by the bootstrap and read-only through
// the API. Icon is a symbolic reference the frontend resolves to an icon
// component ("UserPlus", "MessageSquare").
type Badge struct {
	ID               int64         `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	Color            string        `json:"color"`
	Icon             string        `json:"icon"`
	Category         string        `json:"category"` // classification, e.g. "participation"
	Level            int           `json:"level"`    // positive
	ReputationPoints int           `json:"reputationPoints"`
	Criteria         BadgeCriteria `json:"criteria"`
	CreatedAt        time.Time     `json:"createdAt"`
}
