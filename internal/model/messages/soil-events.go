package messages

import "time"

// SoilProfileDefaultedEvent is published by the soil-defaulter once a profile has
// been completed.
type SoilProfileDefaultedEvent struct {
	ProfileID       string             `json:"profile_id"`
	Profile         SoilProfilePayload `json:"profile"`
	AddedCrops      []string           `json:"added_crops,omitempty"`
	EstimatedValues int                `json:"estimated_values"`
	WheatConstraint string             `json:"wheat_constraint,omitempty"` // CL | ESP | EC
	Timestamp       time.Time          `json:"timestamp"`
}

// SoilProfileRejectedEvent is published when a profile cannot be defaulted.
type SoilProfileRejectedEvent struct {
	ProfileID string    `json:"profile_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}
