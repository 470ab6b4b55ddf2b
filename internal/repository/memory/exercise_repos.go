package memory

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type exerciseRepo struct{ s *Store }

func positionTaken(st *state, dayID primitive.ObjectID, position int, except primitive.ObjectID) bool {
	for id, e := range st.exercises {
		if id != except && e.TrainingDayID == dayID && e.Position == position {
			return true
		}
	}
	return false
}

func (r *exerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.TrainingDayID == primitive.NilObjectID || exercise.Name == "" {
		return primitive.NilObjectID, errors.New("exercise requires trainingDayId and name")
	}
	if err := exercise.Origin.Validate(); err != nil {
		return primitive.NilObjectID, err
	}
	err := r.s.write(ctx, func(st *state) error {
		if positionTaken(st, exercise.TrainingDayID, exercise.Position, primitive.NilObjectID) {
			return repository.ErrConflict
		}
		exercise.ID = primitive.NewObjectID()
		exercise.CreatedAt = now()
		exercise.UpdatedAt = exercise.CreatedAt
		st.exercises[exercise.ID] = *exercise
		return nil
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return exercise.ID, nil
}

func (r *exerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var out *domain.Exercise
	err := r.s.read(ctx, func(st *state) error {
		e, ok := st.exercises[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &e
		return nil
	})
	return out, err
}

func (r *exerciseRepo) GetByDayID(ctx context.Context, dayID primitive.ObjectID) ([]domain.Exercise, error) {
	var out []domain.Exercise
	err := r.s.read(ctx, func(st *state) error {
		out = sortedValues(st.exercises,
			func(e domain.Exercise) bool { return e.TrainingDayID == dayID },
			func(a, b domain.Exercise) bool {
				if a.Position != b.Position {
					return a.Position < b.Position
				}
				return lessID(a.ID, b.ID)
			})
		return nil
	})
	return out, err
}

func (r *exerciseRepo) GetByDayIDInsertionOrder(ctx context.Context, dayID primitive.ObjectID) ([]domain.Exercise, error) {
	var out []domain.Exercise
	err := r.s.read(ctx, func(st *state) error {
		out = sortedValues(st.exercises,
			func(e domain.Exercise) bool { return e.TrainingDayID == dayID },
			func(a, b domain.Exercise) bool { return lessID(a.ID, b.ID) })
		return nil
	})
	return out, err
}

func (r *exerciseRepo) MaxPosition(ctx context.Context, dayID primitive.ObjectID) (int, bool, error) {
	var (
		highest int
		found   bool
	)
	err := r.s.read(ctx, func(st *state) error {
		for _, e := range st.exercises {
			if e.TrainingDayID != dayID {
				continue
			}
			if !found || e.Position > highest {
				highest = e.Position
				found = true
			}
		}
		return nil
	})
	return highest, found, err
}

func (r *exerciseRepo) UpdatePosition(ctx context.Context, id primitive.ObjectID, version int64, position int) error {
	return r.s.write(ctx, func(st *state) error {
		e, ok := st.exercises[id]
		if !ok {
			return repository.ErrNotFound
		}
		if e.Version != version || positionTaken(st, e.TrainingDayID, position, id) {
			return repository.ErrConflict
		}
		e.Position = position
		e.Version++
		e.UpdatedAt = now()
		st.exercises[id] = e
		return nil
	})
}

func (r *exerciseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.exercises[id]; !ok {
			return repository.ErrNotFound
		}
		delete(st.exercises, id)
		return nil
	})
}

func (r *exerciseRepo) DeleteByDayIDs(ctx context.Context, dayIDs []primitive.ObjectID) ([]primitive.ObjectID, error) {
	days := idSet(dayIDs)
	var deleted []primitive.ObjectID
	err := r.s.write(ctx, func(st *state) error {
		for id, e := range st.exercises {
			if _, ok := days[e.TrainingDayID]; ok {
				deleted = append(deleted, id)
				delete(st.exercises, id)
			}
		}
		return nil
	})
	return deleted, err
}

func (r *exerciseRepo) DayIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	var out []primitive.ObjectID
	err := r.s.read(ctx, func(st *state) error {
		seen := map[primitive.ObjectID]struct{}{}
		for _, e := range st.exercises {
			if _, ok := seen[e.TrainingDayID]; ok {
				continue
			}
			seen[e.TrainingDayID] = struct{}{}
			out = append(out, e.TrainingDayID)
		}
		return nil
	})
	return out, err
}

type exerciseSetRepo struct{ s *Store }

func (r *exerciseSetRepo) Create(ctx context.Context, set *domain.ExerciseSet) (primitive.ObjectID, error) {
	if set.ExerciseID == primitive.NilObjectID || set.Reps <= 0 {
		return primitive.NilObjectID, errors.New("exercise set requires exerciseId and positive reps")
	}
	err := r.s.write(ctx, func(st *state) error {
		set.ID = primitive.NewObjectID()
		set.CreatedAt = now()
		st.exerciseSets[set.ID] = *set
		return nil
	})
	return set.ID, err
}

func (r *exerciseSetRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseSet, error) {
	var out *domain.ExerciseSet
	err := r.s.read(ctx, func(st *state) error {
		es, ok := st.exerciseSets[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &es
		return nil
	})
	return out, err
}

func (r *exerciseSetRepo) GetByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) ([]domain.ExerciseSet, error) {
	var out []domain.ExerciseSet
	err := r.s.read(ctx, func(st *state) error {
		out = sortedValues(st.exerciseSets,
			func(es domain.ExerciseSet) bool { return es.ExerciseID == exerciseID },
			func(a, b domain.ExerciseSet) bool { return lessID(a.ID, b.ID) })
		return nil
	})
	return out, err
}

func (r *exerciseSetRepo) UpdateReps(ctx context.Context, id primitive.ObjectID, reps int) error {
	if reps <= 0 {
		return errors.New("reps must be positive")
	}
	return r.s.write(ctx, func(st *state) error {
		es, ok := st.exerciseSets[id]
		if !ok {
			return repository.ErrNotFound
		}
		es.Reps = reps
		st.exerciseSets[id] = es
		return nil
	})
}

func (r *exerciseSetRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.exerciseSets[id]; !ok {
			return repository.ErrNotFound
		}
		delete(st.exerciseSets, id)
		return nil
	})
}

func (r *exerciseSetRepo) DeleteByExerciseIDs(ctx context.Context, exerciseIDs []primitive.ObjectID) error {
	ids := idSet(exerciseIDs)
	return r.s.write(ctx, func(st *state) error {
		for id, es := range st.exerciseSets {
			if _, ok := ids[es.ExerciseID]; ok {
				delete(st.exerciseSets, id)
			}
		}
		return nil
	})
}

type setRepo struct{ s *Store }

func (r *setRepo) Create(ctx context.Context, set *domain.Set) (primitive.ObjectID, error) {
	if set.ExerciseID == primitive.NilObjectID || set.TrainingSessionID == "" {
		return primitive.NilObjectID, errors.New("set requires exerciseId and trainingSessionId")
	}
	err := r.s.write(ctx, func(st *state) error {
		set.ID = primitive.NewObjectID()
		set.CreatedAt = now()
		st.sets[set.ID] = *set
		return nil
	})
	return set.ID, err
}

func (r *setRepo) GetBySession(ctx context.Context, exerciseID primitive.ObjectID, sessionID string) ([]domain.Set, error) {
	var out []domain.Set
	err := r.s.read(ctx, func(st *state) error {
		out = sortedValues(st.sets,
			func(s domain.Set) bool { return s.ExerciseID == exerciseID && s.TrainingSessionID == sessionID },
			func(a, b domain.Set) bool { return lessID(a.ID, b.ID) })
		return nil
	})
	return out, err
}

func (r *setRepo) DeleteByExerciseIDs(ctx context.Context, exerciseIDs []primitive.ObjectID) error {
	ids := idSet(exerciseIDs)
	return r.s.write(ctx, func(st *state) error {
		for id, s := range st.sets {
			if _, ok := ids[s.ExerciseID]; ok {
				delete(st.sets, id)
			}
		}
		return nil
	})
}
