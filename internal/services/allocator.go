package services

import (
	"math/rand"
	"sync"

	"github.com/veselicnik/srecke-backend/internal/models"
)

// RandomSource supplies the uniform choices of a draw.
// Intn returns a value in [0, n) and is only called with n > 0.
type RandomSource interface {
	Intn(n int) int
}

// lockedSource makes a *rand.Rand safe for concurrent draws
type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSource returns a goroutine-safe RandomSource seeded with seed
func NewRandomSource(seed int64) RandomSource {
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// Allocate assigns at most one ticket to every prize.
//
// Prizes are visited in the order given. Each prize takes a uniformly random
// ticket from those still in the pool, and that ticket leaves the pool, so no
// ticket wins twice in one draw. Once the pool is empty the remaining prizes get
// no winner. A prize's probability does not influence the selection.
// The input slices are not modified.
func Allocate(tickets []*models.Ticket, prizes []*models.Prize, rng RandomSource) []models.Winner {
	winners := make([]models.Winner, 0, min(len(tickets), len(prizes)))

	pool := make([]*models.Ticket, len(tickets))
	copy(pool, tickets)

	for _, prize := range prizes {
		if len(pool) == 0 {
			break
		}
		idx := rng.Intn(len(pool))
		ticket := pool[idx]
		winners = append(winners, models.Winner{
			TicketID:  ticket.ID,
			UserID:    ticket.UserID,
			PrizeID:   prize.ID,
			PrizeName: prize.Name,
		})
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return winners
}
