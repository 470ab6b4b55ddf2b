package memory

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type templateRepo struct{ s *Store }

func (r *templateRepo) CreateAdminExercise(ctx context.Context, exercise *domain.AdminExercise) (primitive.ObjectID, error) {
	if exercise.Name == "" || exercise.CategoryID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("admin exercise requires name and categoryId")
	}
	err := r.s.write(ctx, func(st *state) error {
		for _, e := range st.adminExercises {
			if e.Name == exercise.Name {
				return repository.ErrConflict
			}
		}
		exercise.ID = primitive.NewObjectID()
		exercise.CreatedAt = now()
		st.adminExercises[exercise.ID] = *exercise
		return nil
	})
	return exercise.ID, err
}

func (r *templateRepo) GetAdminExercise(ctx context.Context, id primitive.ObjectID) (*domain.AdminExercise, error) {
	var out *domain.AdminExercise
	err := r.s.read(ctx, func(st *state) error {
		e, ok := st.adminExercises[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &e
		return nil
	})
	return out, err
}

func (r *templateRepo) GetAdminExercisesByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]domain.AdminExercise, error) {
	var out []domain.AdminExercise
	err := r.s.read(ctx, func(st *state) error {
		out = sortedValues(st.adminExercises,
			func(e domain.AdminExercise) bool { return e.CategoryID == categoryID },
			func(a, b domain.AdminExercise) bool { return lessID(a.ID, b.ID) })
		return nil
	})
	return out, err
}

func (r *templateRepo) CreateUserExercise(ctx context.Context, exercise *domain.UserExercise) (primitive.ObjectID, error) {
	if exercise.Name == "" || exercise.UserID == 0 || exercise.CategoryID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("user exercise requires name, userId and categoryId")
	}
	err := r.s.write(ctx, func(st *state) error {
		exercise.ID = primitive.NewObjectID()
		exercise.CreatedAt = now()
		st.userExercises[exercise.ID] = *exercise
		return nil
	})
	return exercise.ID, err
}

func (r *templateRepo) GetUserExercise(ctx context.Context, id primitive.ObjectID) (*domain.UserExercise, error) {
	var out *domain.UserExercise
	err := r.s.read(ctx, func(st *state) error {
		e, ok := st.userExercises[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &e
		return nil
	})
	return out, err
}

func (r *templateRepo) GetUserExercises(ctx context.Context, userID int64) ([]domain.UserExercise, error) {
	var out []domain.UserExercise
	err := r.s.read(ctx, func(st *state) error {
		out = sortedValues(st.userExercises,
			func(e domain.UserExercise) bool { return e.UserID == userID },
			func(a, b domain.UserExercise) bool { return lessID(a.ID, b.ID) })
		return nil
	})
	return out, err
}

func (r *templateRepo) GetUserExercisesByCategory(ctx context.Context, categoryID primitive.ObjectID, userID int64) ([]domain.UserExercise, error) {
	var out []domain.UserExercise
	err := r.s.read(ctx, func(st *state) error {
		out = sortedValues(st.userExercises,
			func(e domain.UserExercise) bool { return e.UserID == userID && e.CategoryID == categoryID },
			func(a, b domain.UserExercise) bool { return lessID(a.ID, b.ID) })
		return nil
	})
	return out, err
}

type categoryRepo struct{ s *Store }

func (r *categoryRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	var out *domain.Category
	err := r.s.read(ctx, func(st *state) error {
		c, ok := st.categories[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *categoryRepo) ListWithCounts(ctx context.Context, userID int64) ([]domain.CategoryCount, error) {
	var out []domain.CategoryCount
	err := r.s.read(ctx, func(st *state) error {
		counts := map[primitive.ObjectID]int{}
		for _, e := range st.adminExercises {
			counts[e.CategoryID]++
		}
		for _, e := range st.userExercises {
			if e.UserID == userID {
				counts[e.CategoryID]++
			}
		}
		categories := sortedValues(st.categories,
			func(domain.Category) bool { return true },
			func(a, b domain.Category) bool { return a.Name < b.Name })
		out = make([]domain.CategoryCount, 0, len(categories))
		for _, c := range categories {
			out = append(out, domain.CategoryCount{Category: c, Count: counts[c.ID]})
		}
		return nil
	})
	return out, err
}

func (r *categoryRepo) CreateIfEmpty(ctx context.Context, names []string) (int, error) {
	created := 0
	err := r.s.write(ctx, func(st *state) error {
		if len(st.categories) > 0 {
			return nil
		}
		for _, name := range names {
			c := domain.Category{ID: primitive.NewObjectID(), Name: name}
			st.categories[c.ID] = c
			created++
		}
		return nil
	})
	return created, err
}

type bannerRepo struct{ s *Store }

func (r *bannerRepo) GetByName(ctx context.Context, name string) (*domain.Banner, error) {
	var out *domain.Banner
	err := r.s.read(ctx, func(st *state) error {
		b, ok := st.banners[name]
		if !ok {
			return repository.ErrNotFound
		}
		out = &b
		return nil
	})
	return out, err
}

func (r *bannerRepo) UpsertDescription(ctx context.Context, name, description string) error {
	return r.s.write(ctx, func(st *state) error {
		b, ok := st.banners[name]
		if !ok {
			b = domain.Banner{ID: primitive.NewObjectID(), Name: name}
		}
		b.Description = description
		b.UpdatedAt = now()
		st.banners[name] = b
		return nil
	})
}

// PutBanner stores a complete banner, replacing any banner with the same name.
func (s *Store) PutBanner(ctx context.Context, banner domain.Banner) error {
	return s.write(ctx, func(st *state) error {
		if banner.ID == primitive.NilObjectID {
			banner.ID = primitive.NewObjectID()
		}
		banner.UpdatedAt = now()
		st.banners[banner.Name] = banner
		return nil
	})
}
