package services

import (
	"context"
	"fmt"
	"sort"

	"skillswap_server/models"
	"skillswap_server/utils"
)

// MatchService ranks nearby candidates whose skills complement the viewer's.
// Pure read/compute: it never writes anything.
type MatchService struct {
	Directory PersonDirectory
	Interests InterestStore
}

// FindMatches returns candidates within radiusMiles whose offers cover at least
// one of the viewer's needs and whose needs are covered by at least one of the
// viewer's offers, ordered by distance. An incomplete profile (no coordinates,
// or an empty offer/need set) yields an empty list, not an error: "no matches
// yet" is a valid outcome.
func (s *MatchService) FindMatches(ctx context.Context, personID string, radiusMiles float64) ([]models.MatchResult, error) {
	person, err := s.Directory.GetPerson(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up person %s: %w", personID, err)
	}
	if person == nil {
		return nil, &NotFoundError{Resource: "person", ID: personID}
	}
	if radiusMiles <= 0 {
		return nil, &ValidationError{Reason: "radius must be positive"}
	}

	if !person.HasCoordinates() || len(person.SkillsOffered) == 0 || len(person.SkillsNeeded) == 0 {
		return []models.MatchResult{}, nil
	}

	candidates, err := s.Directory.ListVisiblePersons(ctx, personID)
	if err != nil {
		return nil, err
	}

	// Interest edges leaving the viewer, for enriching results without a lookup
	// per candidate.
	sent := map[string]bool{}
	edges, err := s.Interests.ListEdgesFrom(ctx, personID)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		sent[e.ToID] = true
	}

	results := []models.MatchResult{}
	for i := range candidates {
		candidate := &candidates[i]
		if candidate.PersonID == personID {
			continue
		}
		if !candidate.HasCoordinates() {
			continue
		}
		// ListVisiblePersons already excludes other owners' synthetic pools;
		// this guards against a directory that doesn't.
		if candidate.IsSynthetic && candidate.OwnerID != personID {
			continue
		}

		distance := utils.Distance(*person.Latitude, *person.Longitude, *candidate.Latitude, *candidate.Longitude)
		if distance > radiusMiles {
			continue
		}

		offersYouNeed := intersect(candidate.SkillsOffered, person.SkillsNeeded)
		needsYouOffer := intersect(person.SkillsOffered, candidate.SkillsNeeded)
		if len(offersYouNeed) == 0 || len(needsYouOffer) == 0 {
			continue
		}

		received, err := s.Interests.GetEdge(ctx, candidate.PersonID, personID)
		if err != nil {
			return nil, err
		}

		results = append(results, models.MatchResult{
			PersonID:         candidate.PersonID,
			Name:             candidate.Name,
			DistanceMiles:    utils.RoundMiles(distance),
			OffersYouNeed:    offersYouNeed,
			NeedsYouOffer:    needsYouOffer,
			InterestSent:     sent[candidate.PersonID],
			InterestReceived: received != nil,
		})
	}

	// Ascending distance, candidate id as the deterministic tie-break.
	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceMiles != results[j].DistanceMiles {
			return results[i].DistanceMiles < results[j].DistanceMiles
		}
		return results[i].PersonID < results[j].PersonID
	})

	return results, nil
}

// intersect returns the elements of a that also appear in b, preserving a's order.
func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}

	var out []string
	for _, s := range a {
		if inB[s] {
			out = append(out, s)
		}
	}
	return out
}
