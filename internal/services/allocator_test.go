package services

import (
	"testing"

	"github.com/veselicnik/srecke-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fixedSource returns the queued values in order, then 0
type fixedSource struct {
	values []int
	calls  []int
}

func (f *fixedSource) Intn(n int) int {
	f.calls = append(f.calls, n)
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[0]
	f.values = f.values[1:]
	return v % n
}

func makeTickets(users ...string) []*models.Ticket {
	out := make([]*models.Ticket, 0, len(users))
	for _, u := range users {
		out = append(out, &models.Ticket{ID: primitive.NewObjectID(), UserID: u, EventID: "ev1"})
	}
	return out
}

func makePrizes(names ...string) []*models.Prize {
	out := make([]*models.Prize, 0, len(names))
	for _, n := range names {
		out = append(out, &models.Prize{ID: primitive.NewObjectID(), Name: n, EventID: "ev1", Probability: 0.5})
	}
	return out
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name        string
		tickets     int
		prizes      int
		wantWinners int
	}{
		{"more tickets than prizes", 3, 2, 2},
		{"more prizes than tickets", 1, 3, 1},
		{"equal counts", 4, 4, 4},
		{"no tickets", 0, 2, 0},
		{"no prizes", 5, 0, 0},
		{"nothing at all", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := make([]string, tt.tickets)
			for i := range users {
				users[i] = string(rune('a' + i))
			}
			names := make([]string, tt.prizes)
			for i := range names {
				names[i] = "prize-" + string(rune('A'+i))
			}
			tickets := makeTickets(users...)
			prizes := makePrizes(names...)

			winners := Allocate(tickets, prizes, NewRandomSource(42))
			if winners == nil {
				t.Fatal("Expected a non-nil winners slice")
			}
			if len(winners) != tt.wantWinners {
				t.Fatalf("Expected %d winners, got %d", tt.wantWinners, len(winners))
			}

			seenTickets := map[primitive.ObjectID]bool{}
			for i, w := range winners {
				if seenTickets[w.TicketID] {
					t.Errorf("Ticket %s won twice", w.TicketID.Hex())
				}
				seenTickets[w.TicketID] = true
				// prizes are awarded in the order given
				if w.PrizeID != prizes[i].ID || w.PrizeName != prizes[i].Name {
					t.Errorf("Winner %d: expected prize %s, got %s", i, prizes[i].Name, w.PrizeName)
				}
			}
		})
	}
}

func TestAllocateUsesRandomSourceOverShrinkingPool(t *testing.T) {
	tickets := makeTickets("ana", "bor", "cene")
	prizes := makePrizes("kolo", "torta", "majica")
	rng := &fixedSource{values: []int{2, 0, 0}}

	winners := Allocate(tickets, prizes, rng)

	wantCalls := []int{3, 2, 1}
	if len(rng.calls) != len(wantCalls) {
		t.Fatalf("Expected %d calls, got %v", len(wantCalls), rng.calls)
	}
	for i := range wantCalls {
		if rng.calls[i] != wantCalls[i] {
			t.Errorf("Call %d: expected Intn(%d), got Intn(%d)", i, wantCalls[i], rng.calls[i])
		}
	}

	wantUsers := []string{"cene", "ana", "bor"}
	for i, w := range winners {
		if w.UserID != wantUsers[i] {
			t.Errorf("Winner %d: expected %s, got %s", i, wantUsers[i], w.UserID)
		}
	}
}

func TestAllocateDoesNotMutateInputs(t *testing.T) {
	tickets := makeTickets("ana", "bor", "cene")
	prizes := makePrizes("kolo")
	before := make([]primitive.ObjectID, len(tickets))
	for i, tk := range tickets {
		before[i] = tk.ID
	}

	Allocate(tickets, prizes, &fixedSource{values: []int{0}})

	if len(tickets) != 3 {
		t.Fatalf("Expected input length 3, got %d", len(tickets))
	}
	for i, tk := range tickets {
		if tk.ID != before[i] {
			t.Errorf("Ticket %d changed position", i)
		}
	}
}

func TestAllocateIsDeterministicForSeed(t *testing.T) {
	tickets := makeTickets("a", "b", "c", "d", "e", "f")
	prizes := makePrizes("1", "2", "3")

	first := Allocate(tickets, prizes, NewRandomSource(7))
	second := Allocate(tickets, prizes, NewRandomSource(7))

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Winner %d differs between runs with the same seed", i)
		}
	}
}

func TestAllocateIgnoresProbability(t *testing.T) {
	tickets := makeTickets("a")
	prizes := makePrizes("rare")
	prizes[0].Probability = 0.0001

	for seed := int64(0); seed < 20; seed++ {
		if got := Allocate(tickets, prizes, NewRandomSource(seed)); len(got) != 1 {
			t.Fatalf("seed %d: expected the prize to be awarded, got %d winners", seed, len(got))
		}
	}
}
