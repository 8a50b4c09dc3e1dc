// Package memory holds process-local implementations of the repository
// interfaces, used by the "memory" storage driver and by tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/veselicnik/srecke-backend/internal/models"
	"github.com/veselicnik/srecke-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// collection is an insertion-ordered map guarded by a RWMutex.
// Values are copied on the way in and out so callers never share memory with the store.
type collection[T any] struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	items map[primitive.ObjectID]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[primitive.ObjectID]T)}
}

func (c *collection[T]) insert(id primitive.ObjectID, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = append(c.order, id)
	c.items[id] = v
}

func (c *collection[T]) get(id primitive.ObjectID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	return v, ok
}

func (c *collection[T]) replace(id primitive.ObjectID, v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	c.items[id] = v
	return true
}

func (c *collection[T]) remove(id primitive.ObjectID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// filter returns the matching values in insertion order
func (c *collection[T]) filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		v := c.items[id]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func idSet(ids []primitive.ObjectID) map[primitive.ObjectID]struct{} {
	set := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// PrizeRepository is an in-memory repositories.PrizeRepository
type PrizeRepository struct {
	prizes *collection[models.Prize]
}

// NewPrizeRepository creates an empty PrizeRepository
func NewPrizeRepository() *PrizeRepository {
	return &PrizeRepository{prizes: newCollection[models.Prize]()}
}

var _ repositories.PrizeRepository = (*PrizeRepository)(nil)

func (r *PrizeRepository) Create(_ context.Context, prize *models.Prize) error {
	now := time.Now()
	prize.ID = primitive.NewObjectID()
	prize.CreatedAt = now
	prize.UpdatedAt = now
	r.prizes.insert(prize.ID, *prize)
	return nil
}

func (r *PrizeRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Prize, error) {
	prize, ok := r.prizes.get(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &prize, nil
}

func (r *PrizeRepository) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]*models.Prize, error) {
	set := idSet(ids)
	return prizePointers(r.prizes.filter(func(p models.Prize) bool {
		_, ok := set[p.ID]
		return ok
	})), nil
}

func (r *PrizeRepository) FindAll(_ context.Context) ([]*models.Prize, error) {
	return prizePointers(r.prizes.filter(nil)), nil
}

func (r *PrizeRepository) FindByEventID(_ context.Context, eventID string) ([]*models.Prize, error) {
	return prizePointers(r.prizes.filter(func(p models.Prize) bool { return p.EventID == eventID })), nil
}

// Update writes name and probability only, mirroring the MongoDB implementation
func (r *PrizeRepository) Update(_ context.Context, prize *models.Prize) error {
	stored, ok := r.prizes.get(prize.ID)
	if !ok {
		return repositories.ErrNotFound
	}
	prize.UpdatedAt = time.Now()
	stored.Name = prize.Name
	stored.Probability = prize.Probability
	stored.UpdatedAt = prize.UpdatedAt
	if !r.prizes.replace(prize.ID, stored) {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *PrizeRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	if !r.prizes.remove(id) {
		return repositories.ErrNotFound
	}
	return nil
}

func prizePointers(in []models.Prize) []*models.Prize {
	out := make([]*models.Prize, len(in))
	for i := range in {
		out[i] = &in[i]
	}
	return out
}

// TicketRepository is an in-memory repositories.TicketRepository
type TicketRepository struct {
	tickets *collection[models.Ticket]
}

// NewTicketRepository creates an empty TicketRepository
func NewTicketRepository() *TicketRepository {
	return &TicketRepository{tickets: newCollection[models.Ticket]()}
}

var _ repositories.TicketRepository = (*TicketRepository)(nil)

func (r *TicketRepository) Create(_ context.Context, ticket *models.Ticket) error {
	now := time.Now()
	ticket.ID = primitive.NewObjectID()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.tickets.insert(ticket.ID, *ticket)
	return nil
}

func (r *TicketRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	ticket, ok := r.tickets.get(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &ticket, nil
}

func (r *TicketRepository) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]*models.Ticket, error) {
	set := idSet(ids)
	return ticketPointers(r.tickets.filter(func(t models.Ticket) bool {
		_, ok := set[t.ID]
		return ok
	})), nil
}

func (r *TicketRepository) FindAll(_ context.Context) ([]*models.Ticket, error) {
	return ticketPointers(r.tickets.filter(nil)), nil
}

func (r *TicketRepository) FindByEventID(_ context.Context, eventID string) ([]*models.Ticket, error) {
	return ticketPointers(r.tickets.filter(func(t models.Ticket) bool { return t.EventID == eventID })), nil
}

func (r *TicketRepository) Update(_ context.Context, ticket *models.Ticket) error {
	ticket.UpdatedAt = time.Now()
	if !r.tickets.replace(ticket.ID, *ticket) {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *TicketRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	if !r.tickets.remove(id) {
		return repositories.ErrNotFound
	}
	return nil
}

func ticketPointers(in []models.Ticket) []*models.Ticket {
	out := make([]*models.Ticket, len(in))
	for i := range in {
		out[i] = &in[i]
	}
	return out
}

// DrawRepository is an in-memory repositories.DrawRepository
type DrawRepository struct {
	draws *collection[models.Draw]
}

// NewDrawRepository creates an empty DrawRepository
func NewDrawRepository() *DrawRepository {
	return &DrawRepository{draws: newCollection[models.Draw]()}
}

var _ repositories.DrawRepository = (*DrawRepository)(nil)

func (r *DrawRepository) Create(_ context.Context, draw *models.Draw) error {
	draw.ID = primitive.NewObjectID()
	if draw.CreatedAt.IsZero() {
		draw.CreatedAt = time.Now()
	}
	if draw.Winners == nil {
		draw.Winners = []models.Winner{}
	}
	stored := *draw
	stored.Winners = append([]models.Winner(nil), draw.Winners...)
	r.draws.insert(draw.ID, stored)
	return nil
}

func (r *DrawRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Draw, error) {
	draw, ok := r.draws.get(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyDraw(draw), nil
}

func (r *DrawRepository) FindAll(_ context.Context) ([]*models.Draw, error) {
	return newestFirst(r.draws.filter(nil)), nil
}

func (r *DrawRepository) FindByEventID(_ context.Context, eventID string) ([]*models.Draw, error) {
	return newestFirst(r.draws.filter(func(d models.Draw) bool { return d.EventID == eventID })), nil
}

func (r *DrawRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	if !r.draws.remove(id) {
		return repositories.ErrNotFound
	}
	return nil
}

func copyDraw(d models.Draw) *models.Draw {
	d.Winners = append([]models.Winner{}, d.Winners...)
	return &d
}

// newestFirst reverses insertion order, which matches date-descending for draws created by the service
func newestFirst(in []models.Draw) []*models.Draw {
	out := make([]*models.Draw, 0, len(in))
	for i := len(in) - 1; i >= 0; i-- {
		out = append(out, copyDraw(in[i]))
	}
	return out
}
