package services

import (
	"context"
	"errors"
	"testing"

	"skillswap_server/models"
)

func findResult(results []models.MatchResult, personID string) *models.MatchResult {
	for i := range results {
		if results[i].PersonID == personID {
			return &results[i]
		}
	}
	return nil
}

func TestFindMatchesComplementarySymmetry(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addPerson(t, "alice", "Alice", 40.7128, -74.0060, []string{"Plumbing"}, []string{"WebDesign"})
	e.addPerson(t, "bob", "Bob", 40.7140, -74.0070, []string{"WebDesign"}, []string{"Plumbing"})

	aliceResults, err := e.matchSvc.FindMatches(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("FindMatches(alice): %v", err)
	}
	bobResults, err := e.matchSvc.FindMatches(ctx, "bob", 10)
	if err != nil {
		t.Fatalf("FindMatches(bob): %v", err)
	}

	bobFromAlice := findResult(aliceResults, "bob")
	if bobFromAlice == nil {
		t.Fatal("bob missing from alice's matches")
	}
	aliceFromBob := findResult(bobResults, "alice")
	if aliceFromBob == nil {
		t.Fatal("alice missing from bob's matches")
	}

	// Complementarity with swapped offer/need fields.
	if len(bobFromAlice.OffersYouNeed) != 1 || bobFromAlice.OffersYouNeed[0] != "WebDesign" {
		t.Errorf("alice's view OffersYouNeed = %v, want [WebDesign]", bobFromAlice.OffersYouNeed)
	}
	if len(bobFromAlice.NeedsYouOffer) != 1 || bobFromAlice.NeedsYouOffer[0] != "Plumbing" {
		t.Errorf("alice's view NeedsYouOffer = %v, want [Plumbing]", bobFromAlice.NeedsYouOffer)
	}
	if len(aliceFromBob.OffersYouNeed) != 1 || aliceFromBob.OffersYouNeed[0] != "Plumbing" {
		t.Errorf("bob's view OffersYouNeed = %v, want [Plumbing]", aliceFromBob.OffersYouNeed)
	}
	if aliceFromBob.DistanceMiles != bobFromAlice.DistanceMiles {
		t.Errorf("distances differ: %f vs %f", aliceFromBob.DistanceMiles, bobFromAlice.DistanceMiles)
	}
}

func TestFindMatchesNegativeScenarios(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addPerson(t, "alice", "Alice", 40.7128, -74.0060, []string{"Plumbing"}, []string{"WebDesign"})

	// Out of radius: ~3.3 miles away with a 2-mile radius.
	e.addPerson(t, "far-bob", "Far Bob", 40.7580, -73.9855, []string{"WebDesign"}, []string{"Plumbing"})
	// One-way overlap only: carol offers what alice needs but needs nothing alice offers.
	e.addPerson(t, "carol", "Carol", 40.7130, -74.0062, []string{"WebDesign"}, []string{"Cooking"})

	results, err := e.matchSvc.FindMatches(ctx, "alice", 2)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}

	if findResult(results, "alice") != nil {
		t.Error("self appeared in matches")
	}
	if findResult(results, "far-bob") != nil {
		t.Error("out-of-radius candidate appeared in matches")
	}
	if findResult(results, "carol") != nil {
		t.Error("one-way skill overlap produced a match")
	}

	// Same bob, but close by and inside the radius.
	e.addPerson(t, "near-bob", "Near Bob", 40.7140, -74.0070, []string{"WebDesign"}, []string{"Plumbing"})
	results, _ = e.matchSvc.FindMatches(ctx, "alice", 2)
	if findResult(results, "near-bob") == nil {
		t.Error("in-radius complementary candidate missing from matches")
	}
}

func TestFindMatchesIncompleteProfile(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	// No needed skills declared.
	e.addPerson(t, "alice", "Alice", 40.7128, -74.0060, []string{"Plumbing"}, nil)
	e.addPerson(t, "bob", "Bob", 40.7140, -74.0070, []string{"WebDesign"}, []string{"Plumbing"})

	results, err := e.matchSvc.FindMatches(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("incomplete profile returned %d matches, want empty list", len(results))
	}

	// No coordinates.
	noCoords := &models.Person{PersonID: "dave", Name: "Dave", SkillsOffered: []string{"Plumbing"}, SkillsNeeded: []string{"WebDesign"}}
	if err := e.directory.PutPerson(ctx, noCoords); err != nil {
		t.Fatal(err)
	}
	results, err = e.matchSvc.FindMatches(ctx, "dave", 10)
	if err != nil {
		t.Fatalf("FindMatches(dave): %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("coordinate-less profile returned %d matches, want empty list", len(results))
	}

	var notFound *NotFoundError
	if _, err := e.matchSvc.FindMatches(ctx, "ghost", 10); !errors.As(err, &notFound) {
		t.Fatalf("unknown person error = %v, want NotFoundError", err)
	}
}

func TestFindMatchesCandidateFilters(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addPerson(t, "alice", "Alice", 40.7128, -74.0060, []string{"Plumbing"}, []string{"WebDesign"})

	// Candidate without coordinates is skipped even with perfect skills.
	hidden := &models.Person{PersonID: "hidden", Name: "Hidden", SkillsOffered: []string{"WebDesign"}, SkillsNeeded: []string{"Plumbing"}}
	if err := e.directory.PutPerson(ctx, hidden); err != nil {
		t.Fatal(err)
	}

	// Synthetic owned by someone else is invisible; alice's own is visible.
	e.addSynthetic(t, "other-sim", "Riley Park", "someone-else", 40.7135, -74.0065, []string{"WebDesign"}, []string{"Plumbing"})
	e.addSynthetic(t, "alice-sim", "Sam Chen", "alice", 40.7135, -74.0065, []string{"WebDesign"}, []string{"Plumbing"})

	results, err := e.matchSvc.FindMatches(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}

	if findResult(results, "hidden") != nil {
		t.Error("candidate without coordinates matched")
	}
	if findResult(results, "other-sim") != nil {
		t.Error("another owner's synthetic partner leaked into matches")
	}
	if findResult(results, "alice-sim") == nil {
		t.Error("viewer's own synthetic partner missing from matches")
	}
}

func TestFindMatchesOrderingAndInterestFlags(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.addPerson(t, "alice", "Alice", 40.7128, -74.0060, []string{"Plumbing"}, []string{"WebDesign"})
	e.addPerson(t, "near", "Near", 40.7140, -74.0070, []string{"WebDesign"}, []string{"Plumbing"})
	e.addPerson(t, "mid", "Mid", 40.7300, -74.0000, []string{"WebDesign"}, []string{"Plumbing"})
	e.addPerson(t, "edge", "Edge", 40.7500, -73.9900, []string{"WebDesign"}, []string{"Plumbing"})

	if _, err := e.interestSvc.ExpressInterest(ctx, "alice", "mid"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.interestSvc.ExpressInterest(ctx, "edge", "alice"); err != nil {
		t.Fatal(err)
	}

	results, err := e.matchSvc.FindMatches(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	for i := 1; i < len(results); i++ {
		if results[i].DistanceMiles < results[i-1].DistanceMiles {
			t.Fatalf("results not sorted by distance: %v", results)
		}
	}
	if results[0].PersonID != "near" {
		t.Errorf("closest match = %s, want near", results[0].PersonID)
	}

	mid := findResult(results, "mid")
	if !mid.InterestSent || mid.InterestReceived {
		t.Errorf("mid flags = (sent=%v, received=%v), want (true, false)", mid.InterestSent, mid.InterestReceived)
	}
	edge := findResult(results, "edge")
	if edge.InterestSent || !edge.InterestReceived {
		t.Errorf("edge flags = (sent=%v, received=%v), want (false, true)", edge.InterestSent, edge.InterestReceived)
	}
}
