package memory

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepo struct{ s *Store }

func (r *userRepo) GetByUserID(ctx context.Context, userID int64) (*domain.User, error) {
	var out *domain.User
	err := r.s.read(ctx, func(st *state) error {
		u, ok := st.users[userID]
		if !ok {
			return repository.ErrNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

func (r *userRepo) Upsert(ctx context.Context, user *domain.User) error {
	if user.UserID == 0 {
		return errors.New("user id is required")
	}
	return r.s.write(ctx, func(st *state) error {
		t := now()
		existing, ok := st.users[user.UserID]
		if ok {
			existing.Name = user.Name
			existing.Weight = user.Weight
			existing.UpdatedAt = t
			st.users[user.UserID] = existing
			*user = existing
			return nil
		}
		user.ID = primitive.NewObjectID()
		user.CreatedAt = t
		user.UpdatedAt = t
		st.users[user.UserID] = *user
		return nil
	})
}

func (r *userRepo) SetActiveProgram(ctx context.Context, userID int64, programID *primitive.ObjectID) error {
	return r.s.write(ctx, func(st *state) error {
		u, ok := st.users[userID]
		if !ok {
			return repository.ErrNotFound
		}
		if programID != nil {
			id := *programID
			u.ActiveProgramID = &id
		} else {
			u.ActiveProgramID = nil
		}
		u.UpdatedAt = now()
		st.users[userID] = u
		return nil
	})
}

func (r *userRepo) ClearActiveProgram(ctx context.Context, programID primitive.ObjectID) error {
	return r.s.write(ctx, func(st *state) error {
		for id, u := range st.users {
			if u.IsActiveProgram(programID) {
				u.ActiveProgramID = nil
				u.UpdatedAt = now()
				st.users[id] = u
			}
		}
		return nil
	})
}

type programRepo struct{ s *Store }

func (r *programRepo) Create(ctx context.Context, program *domain.TrainingProgram) (primitive.ObjectID, error) {
	if program.UserID == 0 || program.Name == "" {
		return primitive.NilObjectID, errors.New("program requires userId and name")
	}
	err := r.s.write(ctx, func(st *state) error {
		program.ID = primitive.NewObjectID()
		program.CreatedAt = now()
		program.UpdatedAt = program.CreatedAt
		st.programs[program.ID] = *program
		return nil
	})
	return program.ID, err
}

func (r *programRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingProgram, error) {
	var out *domain.TrainingProgram
	err := r.s.read(ctx, func(st *state) error {
		p, ok := st.programs[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r *programRepo) GetByUserID(ctx context.Context, userID int64) ([]domain.TrainingProgram, error) {
	var out []domain.TrainingProgram
	err := r.s.read(ctx, func(st *state) error {
		out = sortedValues(st.programs,
			func(p domain.TrainingProgram) bool { return p.UserID == userID },
			func(a, b domain.TrainingProgram) bool { return lessID(a.ID, b.ID) })
		return nil
	})
	return out, err
}

func (r *programRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.programs[id]; !ok {
			return repository.ErrNotFound
		}
		delete(st.programs, id)
		return nil
	})
}

type dayRepo struct{ s *Store }

func (r *dayRepo) Create(ctx context.Context, day *domain.TrainingDay) (primitive.ObjectID, error) {
	if day.TrainingProgramID == primitive.NilObjectID || day.DayOfWeek == "" {
		return primitive.NilObjectID, errors.New("training day requires trainingProgramId and dayOfWeek")
	}
	err := r.s.write(ctx, func(st *state) error {
		day.ID = primitive.NewObjectID()
		day.CreatedAt = now()
		day.UpdatedAt = day.CreatedAt
		st.days[day.ID] = *day
		return nil
	})
	return day.ID, err
}

func (r *dayRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingDay, error) {
	var out *domain.TrainingDay
	err := r.s.read(ctx, func(st *state) error {
		d, ok := st.days[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &d
		return nil
	})
	return out, err
}

func (r *dayRepo) GetByProgramID(ctx context.Context, programID primitive.ObjectID) ([]domain.TrainingDay, error) {
	var out []domain.TrainingDay
	err := r.s.read(ctx, func(st *state) error {
		out = sortedValues(st.days,
			func(d domain.TrainingDay) bool { return d.TrainingProgramID == programID },
			func(a, b domain.TrainingDay) bool { return lessID(a.ID, b.ID) })
		return nil
	})
	return out, err
}

func (r *dayRepo) DeleteByProgramID(ctx context.Context, programID primitive.ObjectID) error {
	return r.s.write(ctx, func(st *state) error {
		for id, d := range st.days {
			if d.TrainingProgramID == programID {
				delete(st.days, id)
			}
		}
		return nil
	})
}
