// Package memory provides an in-process transactional implementation of the
// repository interfaces. It backs tests and the "memory" database driver.
package memory

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository"
	"bytes"
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type state struct {
	users          map[int64]domain.User
	programs       map[primitive.ObjectID]domain.TrainingProgram
	days           map[primitive.ObjectID]domain.TrainingDay
	exercises      map[primitive.ObjectID]domain.Exercise
	exerciseSets   map[primitive.ObjectID]domain.ExerciseSet
	sets           map[primitive.ObjectID]domain.Set
	adminExercises map[primitive.ObjectID]domain.AdminExercise
	userExercises  map[primitive.ObjectID]domain.UserExercise
	categories     map[primitive.ObjectID]domain.Category
	banners        map[string]domain.Banner
}

func newState() state {
	return state{
		users:          map[int64]domain.User{},
		programs:       map[primitive.ObjectID]domain.TrainingProgram{},
		days:           map[primitive.ObjectID]domain.TrainingDay{},
		exercises:      map[primitive.ObjectID]domain.Exercise{},
		exerciseSets:   map[primitive.ObjectID]domain.ExerciseSet{},
		sets:           map[primitive.ObjectID]domain.Set{},
		adminExercises: map[primitive.ObjectID]domain.AdminExercise{},
		userExercises:  map[primitive.ObjectID]domain.UserExercise{},
		categories:     map[primitive.ObjectID]domain.Category{},
		banners:        map[string]domain.Banner{},
	}
}

// clone copies every map. Entities are stored by value and pointer fields
// are replaced, never mutated in place.
func (s state) clone() state {
	return state{
		users:          maps.Clone(s.users),
		programs:       maps.Clone(s.programs),
		days:           maps.Clone(s.days),
		exercises:      maps.Clone(s.exercises),
		exerciseSets:   maps.Clone(s.exerciseSets),
		sets:           maps.Clone(s.sets),
		adminExercises: maps.Clone(s.adminExercises),
		userExercises:  maps.Clone(s.userExercises),
		categories:     maps.Clone(s.categories),
		banners:        maps.Clone(s.banners),
	}
}

// Store holds all collections. Writes outside a transaction are serialized
// with transactions; a failed transaction restores the snapshot taken when it began.
type Store struct {
	txMu  sync.Mutex
	mu    sync.RWMutex
	state state
}

// New returns an empty store.
func New() *Store {
	return &Store{state: newState()}
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// WithTransaction implements repository.Transactor. Nested calls join the
// outer transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.state = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.state)
}

// Repository accessors.

func (s *Store) Transactor() repository.Transactor { return s }
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }
func (s *Store) Programs() repository.TrainingProgramRepository { return &programRepo{s} }
func (s *Store) Days() repository.TrainingDayRepository { return &dayRepo{s} }
func (s *Store) Exercises() repository.ExerciseRepository { return &exerciseRepo{s} }
func (s *Store) ExerciseSets() repository.ExerciseSetRepository { return &exerciseSetRepo{s} }
func (s *Store) Sets() repository.SetRepository { return &setRepo{s} }
func (s *Store) Templates() repository.TemplateRepository { return &templateRepo{s} }
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s} }
func (s *Store) Banners() repository.BannerRepository { return &bannerRepo{s} }

func now() time.Time { return time.Now().UTC() }

// lessID orders ObjectIDs generated by one process in creation order.
func lessID(a, b primitive.ObjectID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

func sortedValues[K comparable, V any](m map[K]V, keep func(V) bool, less func(a, b V) bool) []V {
	out := make([]V, 0)
	for _, v := range m {
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func idSet(ids []primitive.ObjectID) map[primitive.ObjectID]struct{} {
	set := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
