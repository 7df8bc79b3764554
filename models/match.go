package models

// MatchResult is one ranked entry from the complementary-skill matcher.
// OffersYouNeed are the candidate's offered skills that satisfy the viewer's
// needs; NeedsYouOffer are the viewer's offered skills the candidate needs.
type MatchResult struct {
	PersonID         string   `json:"personId"`
	Name             string   `json:"name"`
	DistanceMiles    float64  `json:"distanceMiles"` // rounded to 2 decimals
	OffersYouNeed    []string `json:"offersYouNeed"`
	NeedsYouOffer    []string `json:"needsYouOffer"`
	InterestSent     bool     `json:"interestSent"`     // viewer → candidate edge exists
	InterestReceived bool     `json:"interestReceived"` // candidate → viewer edge exists
}
