package state

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/eatsbalance/internal/client/models"
	"github.com/dmitrijs2005/eatsbalance/internal/client/repositories/meals"
	"github.com/dmitrijs2005/eatsbalance/internal/logging"
)

// Snapshot is a consistent view of the meal store.
type Snapshot struct {
	Meals         []models.Meal
	Status        Status
	TotalCalories int
}

// fetchOwner is the operation whose status the latest fetch settles.
type fetchOwner struct {
	gen uint64
	// settle reports whether a successful fetch moves the status to Idle.
	// Resyncs keep the MealAdded/MealDeleted marker instead.
	settle bool
}

type MealStore struct {
	repo meals.Repository
	log  logging.Logger

	mu          sync.Mutex
	meals       []models.Meal
	slot        slot
	fetchSeq    uint64
	cancelFetch context.CancelFunc
	owner       *fetchOwner
	subs        map[int]chan Snapshot
	nextSub     int
}

func NewMealStore(repo meals.Repository, log logging.Logger) *MealStore {
	if log == nil {
		log = logging.NewNop()
	}
	return &MealStore{
		repo:  repo,
		log:   log.With("component", "meals"),
		meals: []models.Meal{},
		subs:  make(map[int]chan Snapshot),
	}
}

func (s *MealStore) Meals() []models.Meal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.meals)
}

func (s *MealStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slot.status
}

// TotalCalories is always derived from the list currently held.
func (s *MealStore) TotalCalories() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.TotalCalories(s.meals)
}

func (s *MealStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *MealStore) snapshotLocked() Snapshot {
	return Snapshot{
		Meals:         slices.Clone(s.meals),
		Status:        s.slot.status,
		TotalCalories: models.TotalCalories(s.meals),
	}
}

// Subscribe delivers the current snapshot and then every change. Slow
// readers only see the latest one. cancel closes the channel.
func (s *MealStore) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	ch <- s.snapshotLocked()
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (s *MealStore) publishLocked() {
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (s *MealStore) begin(st Status) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	gen := s.slot.begin(st)
	s.publishLocked()
	return gen
}

func (s *MealStore) settle(gen uint64, st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slot.set(gen, st) {
		s.publishLocked()
	}
}

// FetchMeals replaces the list with the server's. On failure the list is
// kept as it was.
func (s *MealStore) FetchMeals(ctx context.Context) error {
	gen := s.begin(Status{Kind: Loading})
	return s.fetch(ctx, fetchOwner{gen: gen, settle: true})
}

func (s *MealStore) fetch(ctx context.Context, own fetchOwner) error {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	fctx, cancel := context.WithCancel(ctx)
	s.cancelFetch = cancel
	if s.owner == nil || own.gen >= s.owner.gen {
		s.owner = &own
	}
	s.mu.Unlock()
	defer cancel()

	list, err := s.repo.GetMeals(fctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.fetchSeq {
		s.log.Debug(ctx, "fetch superseded", "seq", seq, "latest", s.fetchSeq)
		return ErrSuperseded
	}
	owner := s.owner
	s.owner = nil
	s.cancelFetch = nil

	if err != nil {
		s.log.Warn(ctx, "fetch meals failed", "error", err)
		s.slot.set(owner.gen, failed(err))
		s.publishLocked()
		return err
	}

	s.meals = slices.Clone(list)
	if s.meals == nil {
		s.meals = []models.Meal{}
	}
	if owner.settle {
		s.slot.set(owner.gen, Status{Kind: Idle})
	}
	s.log.Debug(ctx, "meals synced", "count", len(s.meals))
	s.publishLocked()
	return nil
}

// AddMeal validates meal, sends it and resyncs the list so it carries the
// server-assigned id.
func (s *MealStore) AddMeal(ctx context.Context, meal models.Meal) error {
	if err := meal.Validate(); err != nil {
		s.begin(failed(err))
		return err
	}

	return s.mutate(ctx, MealAdded, func(ctx context.Context) error {
		_, err := s.repo.AddMeal(ctx, meal)
		return err
	})
}

// DeleteMeal removes the meal server-side and resyncs. The list is never
// edited locally; the resync decides what remains.
func (s *MealStore) DeleteMeal(ctx context.Context, id int) error {
	return s.mutate(ctx, MealDeleted, func(ctx context.Context) error {
		_, err := s.repo.DeleteMeal(ctx, id)
		return err
	})
}

func (s *MealStore) mutate(ctx context.Context, done Kind, call func(context.Context) error) error {
	gen := s.begin(Status{Kind: Loading})

	if err := call(ctx); err != nil {
		s.log.Warn(ctx, "meal update failed", "op", done.String(), "error", err)
		s.settle(gen, failed(err))
		return err
	}
	s.settle(gen, Status{Kind: done})

	err := s.fetch(ctx, fetchOwner{gen: gen})
	switch {
	case err == nil, errors.Is(err, ErrSuperseded):
		return nil
	default:
		return fmt.Errorf("%w: %w", ErrResync, err)
	}
}

// Meal looks a single meal up on the server without touching the list or
// the status.
func (s *MealStore) Meal(ctx context.Context, id int) (models.Meal, error) {
	return s.repo.GetMealByID(ctx, id)
}
