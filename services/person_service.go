package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"skillswap_server/models"
	"skillswap_server/utils"

	"github.com/google/uuid"
)

// Synthetic partners are placed in this ring around their owner so they always
// show up in a sensible discovery radius.
const (
	syntheticMinMiles = 1.0
	syntheticMaxMiles = 15.0
)

const (
	defaultSyntheticCount = 3
	maxSyntheticCount     = 10
)

var syntheticNames = []string{
	"Alex Rivera", "Sam Chen", "Jordan Blake", "Casey Morgan", "Riley Park",
	"Taylor Quinn", "Jamie Flores", "Drew Santos", "Avery Kim", "Morgan Reyes",
}

// PersonService manages profiles and each real person's private pool of
// synthetic counterparts.
type PersonService struct {
	Directory PersonDirectory
	Clock     Clock

	mu  sync.Mutex
	rng *rand.Rand
}

func NewPersonService(directory PersonDirectory, clock Clock, rng *rand.Rand) *PersonService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &PersonService{Directory: directory, Clock: clock, rng: rng}
}

// SaveProfile creates or updates a profile. A missing id gets a fresh UUID.
func (s *PersonService) SaveProfile(ctx context.Context, person *models.Person) (*models.Person, error) {
	if person.Name == "" {
		return nil, &ValidationError{Reason: "name is required"}
	}
	if (person.Latitude == nil) != (person.Longitude == nil) {
		return nil, &ValidationError{Reason: "latitude and longitude must be set together"}
	}
	if person.HasCoordinates() && !utils.ValidCoordinates(*person.Latitude, *person.Longitude) {
		return nil, &ValidationError{Reason: "invalid coordinates"}
	}

	if person.PersonID == "" {
		person.PersonID = uuid.NewString()
		person.CreatedAt = utils.FormatTimestamp(s.Clock.Now())
	}

	if err := s.Directory.PutPerson(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	log.Printf("👤 Profile saved for %s (%s)", person.Name, person.PersonID)
	return person, nil
}

// GetProfile fetches a profile by id.
func (s *PersonService) GetProfile(ctx context.Context, personID string) (*models.Person, error) {
	person, err := s.Directory.GetPerson(ctx, personID)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, &NotFoundError{Resource: "person", ID: personID}
	}
	return person, nil
}

// SetLocation updates a person's coordinates.
func (s *PersonService) SetLocation(ctx context.Context, personID string, lat, lon float64) (*models.Person, error) {
	if !utils.ValidCoordinates(lat, lon) {
		return nil, &ValidationError{Reason: "invalid coordinates"}
	}

	person, err := s.GetProfile(ctx, personID)
	if err != nil {
		return nil, err
	}

	person.Latitude = &lat
	person.Longitude = &lon
	if err := s.Directory.PutPerson(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to save location: %w", err)
	}

	log.Printf("📍 Location set for %s: (%.4f, %.4f)", personID, lat, lon)
	return person, nil
}

// CreateSyntheticPartners generates a private pool of simulated counterparts
// around ownerID. Each partner is placed by annulus sampling, offers skills
// drawn from the owner's needs and needs skills drawn from the owner's offers,
// with disjoint offer/need sets.
func (s *PersonService) CreateSyntheticPartners(ctx context.Context, ownerID string, count int) ([]models.Person, error) {
	owner, err := s.GetProfile(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner.IsSynthetic {
		return nil, &ValidationError{Reason: "synthetic persons cannot own partners"}
	}
	if !owner.HasCoordinates() {
		return nil, &ValidationError{Reason: "owner must set a location first"}
	}
	if len(owner.SkillsOffered) == 0 || len(owner.SkillsNeeded) == 0 {
		return nil, &ValidationError{Reason: "owner must declare offered and needed skills first"}
	}

	if count <= 0 {
		count = defaultSyntheticCount
	}
	if count > maxSyntheticCount {
		count = maxSyntheticCount
	}

	now := utils.FormatTimestamp(s.Clock.Now())
	partners := make([]models.Person, 0, count)

	for i := 0; i < count; i++ {
		s.mu.Lock()
		lat, lon := utils.RandomPointInAnnulus(s.rng, *owner.Latitude, *owner.Longitude, syntheticMinMiles, syntheticMaxMiles)
		name := syntheticNames[s.rng.Intn(len(syntheticNames))]
		s.mu.Unlock()

		offers, needs := complementarySkills(owner)

		partner := models.Person{
			PersonID:      uuid.NewString(),
			Name:          name,
			Latitude:      &lat,
			Longitude:     &lon,
			SkillsOffered: offers,
			SkillsNeeded:  needs,
			IsSynthetic:   true,
			OwnerID:       ownerID,
			CreatedAt:     now,
		}

		if err := s.Directory.PutPerson(ctx, &partner); err != nil {
			return partners, fmt.Errorf("failed to save synthetic partner: %w", err)
		}
		partners = append(partners, partner)
	}

	log.Printf("🤖 Created %d synthetic partners for %s", len(partners), ownerID)
	return partners, nil
}

// complementarySkills builds a partner's offer/need sets from the owner's
// need/offer sets. The two sets are kept disjoint even when the owner's own
// sets overlap (allowed for real profiles, never for generated ones).
func complementarySkills(owner *models.Person) (offers, needs []string) {
	offers = capSkills(owner.SkillsNeeded, 2)

	taken := make(map[string]bool, len(offers))
	for _, skill := range offers {
		taken[skill] = true
	}
	for _, skill := range owner.SkillsOffered {
		if taken[skill] {
			continue
		}
		needs = append(needs, skill)
		if len(needs) == 2 {
			break
		}
	}

	// Owner's offers were entirely swallowed by the overlap: give the partner
	// one of them back and drop it from the offer side to stay disjoint.
	if len(needs) == 0 {
		needs = []string{owner.SkillsOffered[0]}
		pruned := offers[:0]
		for _, skill := range offers {
			if skill != needs[0] {
				pruned = append(pruned, skill)
			}
		}
		offers = pruned
	}

	return offers, needs
}

func capSkills(skills []string, max int) []string {
	if len(skills) <= max {
		return append([]string(nil), skills...)
	}
	return append([]string(nil), skills[:max]...)
}
