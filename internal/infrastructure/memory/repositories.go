package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/domain/repository"
)

var (
	_ repository.RestaurantRepository   = (*RestaurantRepo)(nil)
	_ repository.UserRepository         = (*UserRepo)(nil)
	_ repository.ScheduleRepository     = (*ScheduleRepo)(nil)
	_ repository.ShiftRepository        = (*ShiftRepo)(nil)
	_ repository.AvailabilityRepository = (*AvailabilityRepo)(nil)
)

// ── Restaurants ──────────────────────────────────────────────────────────────

// RestaurantRepo implementación en memoria de RestaurantRepository.
type RestaurantRepo struct{ v view }

func (r *RestaurantRepo) Create(_ context.Context, rest *entity.Restaurant) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.restaurants[rest.ID]; ok {
			return domain.ErrDuplicate
		}
		st.restaurants[rest.ID] = copyRestaurant(rest)
		return nil
	})
}

func (r *RestaurantRepo) GetByID(_ context.Context, id int) (out *entity.Restaurant, err error) {
	err = r.v.do(func(st *state) error {
		if rest, ok := st.restaurants[id]; ok {
			out = copyRestaurant(rest)
		}
		return nil
	})
	return
}

func (r *RestaurantRepo) List(_ context.Context, f repository.RestaurantFilter) (out []*entity.Restaurant, err error) {
	err = r.v.do(func(st *state) error {
		for _, rest := range st.restaurants {
			if f.Status != nil && rest.Status != *f.Status {
				continue
			}
			out = append(out, copyRestaurant(rest))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return
}

func (r *RestaurantRepo) ListPending(ctx context.Context) ([]*entity.Restaurant, error) {
	pending := entity.StatusPending
	out, err := r.List(ctx, repository.RestaurantFilter{Status: &pending})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, err
}

func (r *RestaurantRepo) Update(_ context.Context, rest *entity.Restaurant) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.restaurants[rest.ID]; !ok {
			return fmt.Errorf("update restaurant %d: %w", rest.ID, domain.ErrNotFound)
		}
		st.restaurants[rest.ID] = copyRestaurant(rest)
		return nil
	})
}

// Delete replica las claves foráneas de PostgreSQL: no borra un restaurante referenciado.
func (r *RestaurantRepo) Delete(_ context.Context, id int) error {
	return r.v.do(func(st *state) error {
		if st.restaurantReferenced(id) {
			return fmt.Errorf("%w: el restaurante %d tiene registros asociados", domain.ErrConflict, id)
		}
		delete(st.restaurants, id)
		return nil
	})
}

// ── Users ────────────────────────────────────────────────────────────────────

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct{ v view }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.do(func(st *state) error {
		for _, existing := range st.users {
			if existing.Email == u.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		if _, ok := st.users[u.ID]; ok {
			return domain.ErrDuplicate
		}
		st.users[u.ID] = copyUser(u)
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (out *entity.User, err error) {
	err = r.v.do(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = copyUser(u)
		}
		return nil
	})
	return
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (out *entity.User, err error) {
	err = r.v.do(func(st *state) error {
		for _, u := range st.users {
			if u.Email == email {
				out = copyUser(u)
				break
			}
		}
		return nil
	})
	return
}

func (r *UserRepo) FirstByRestaurantAndRole(ctx context.Context, restaurantID int, role entity.Role) (*entity.User, error) {
	list, err := r.List(ctx, repository.UserFilter{RestaurantID: &restaurantID, Role: &role})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *UserRepo) List(_ context.Context, f repository.UserFilter) (out []*entity.User, err error) {
	err = r.v.do(func(st *state) error {
		for _, u := range st.users {
			if f.RestaurantID != nil && !u.BelongsTo(*f.RestaurantID) {
				continue
			}
			if f.Role != nil && u.Role != *f.Role {
				continue
			}
			if f.Status != nil && u.Status != *f.Status {
				continue
			}
			out = append(out, copyUser(u))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return
}

func (r *UserRepo) CountByRestaurant(ctx context.Context, restaurantID int) (int, error) {
	list, err := r.List(ctx, repository.UserFilter{RestaurantID: &restaurantID})
	return len(list), err
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.users[u.ID]; !ok {
			return fmt.Errorf("update user %s: %w", u.ID, domain.ErrNotFound)
		}
		st.users[u.ID] = copyUser(u)
		return nil
	})
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		if st.userReferenced(id) {
			return fmt.Errorf("%w: el usuario tiene registros asociados", domain.ErrConflict)
		}
		delete(st.users, id)
		return nil
	})
}

// ── Schedules ────────────────────────────────────────────────────────────────

// ScheduleRepo implementación en memoria de ScheduleRepository.
type ScheduleRepo struct{ v view }

func (r *ScheduleRepo) Create(_ context.Context, s *entity.Schedule) error {
	return r.v.do(func(st *state) error {
		st.schedules[s.ID] = copySchedule(s)
		return nil
	})
}

func (r *ScheduleRepo) GetByID(_ context.Context, id string) (out *entity.Schedule, err error) {
	err = r.v.do(func(st *state) error {
		if s, ok := st.schedules[id]; ok {
			out = copySchedule(s)
		}
		return nil
	})
	return
}

func (r *ScheduleRepo) ListByRestaurant(_ context.Context, restaurantID int) (out []*entity.Schedule, err error) {
	err = r.v.do(func(st *state) error {
		for _, s := range st.schedules {
			if s.RestaurantID == restaurantID {
				out = append(out, copySchedule(s))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return
}

func (r *ScheduleRepo) Update(_ context.Context, s *entity.Schedule) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.schedules[s.ID]; !ok {
			return fmt.Errorf("update schedule %s: %w", s.ID, domain.ErrNotFound)
		}
		st.schedules[s.ID] = copySchedule(s)
		return nil
	})
}

func (r *ScheduleRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		for _, sh := range st.shifts {
			if sh.ScheduleID != nil && *sh.ScheduleID == id {
				return fmt.Errorf("%w: el horario tiene turnos", domain.ErrConflict)
			}
		}
		delete(st.schedules, id)
		return nil
	})
}

// ── Shifts ───────────────────────────────────────────────────────────────────

// ShiftRepo implementación en memoria de ShiftRepository.
type ShiftRepo struct{ v view }

func (r *ShiftRepo) Create(_ context.Context, s *entity.Shift) error {
	return r.v.do(func(st *state) error {
		st.shifts[s.ID] = copyShift(s)
		return nil
	})
}

func (r *ShiftRepo) GetByID(_ context.Context, id string) (out *entity.Shift, err error) {
	err = r.v.do(func(st *state) error {
		if s, ok := st.shifts[id]; ok {
			out = copyShift(s)
		}
		return nil
	})
	return
}

func (r *ShiftRepo) List(_ context.Context, f repository.ShiftFilter) (out []*entity.Shift, err error) {
	err = r.v.do(func(st *state) error {
		for _, s := range st.shifts {
			if f.RestaurantID != nil && s.RestaurantID != *f.RestaurantID {
				continue
			}
			if f.ScheduleID != nil && (s.ScheduleID == nil || *s.ScheduleID != *f.ScheduleID) {
				continue
			}
			if f.AssignedToID != nil && (s.AssignedToID == nil || *s.AssignedToID != *f.AssignedToID) {
				continue
			}
			if f.Date != nil && !sameDay(s.Date, *f.Date) {
				continue
			}
			out = append(out, copyShift(s))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return
}

func (r *ShiftRepo) CountBySchedule(ctx context.Context, scheduleID string) (int, error) {
	list, err := r.List(ctx, repository.ShiftFilter{ScheduleID: &scheduleID})
	return len(list), err
}

func (r *ShiftRepo) HoursByAssignee(ctx context.Context, scheduleID string) ([]repository.AssigneeHours, error) {
	list, err := r.List(ctx, repository.ShiftFilter{ScheduleID: &scheduleID})
	if err != nil {
		return nil, err
	}
	var out []repository.AssigneeHours
	idx := map[string]int{}
	for _, s := range list {
		key := ""
		if s.AssignedToID != nil {
			key = *s.AssignedToID
		}
		i, ok := idx[key]
		if !ok {
			i = len(out)
			idx[key] = i
			out = append(out, repository.AssigneeHours{AssignedToID: copyStrPtr(s.AssignedToID)})
		}
		out[i].Shifts++
		out[i].Hours = out[i].Hours.Add(s.Hours())
	}
	return out, nil
}

func (r *ShiftRepo) Update(_ context.Context, s *entity.Shift) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.shifts[s.ID]; !ok {
			return fmt.Errorf("update shift %s: %w", s.ID, domain.ErrNotFound)
		}
		st.shifts[s.ID] = copyShift(s)
		return nil
	})
}

func (r *ShiftRepo) UnassignUser(_ context.Context, userID string) error {
	return r.v.do(func(st *state) error {
		for _, s := range st.shifts {
			if s.AssignedToID != nil && *s.AssignedToID == userID {
				s.AssignedToID = nil
			}
		}
		return nil
	})
}

func (r *ShiftRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		delete(st.shifts, id)
		return nil
	})
}

// ── Availabilities ───────────────────────────────────────────────────────────

// AvailabilityRepo implementación en memoria de AvailabilityRepository.
type AvailabilityRepo struct{ v view }

func (r *AvailabilityRepo) Create(_ context.Context, a *entity.Availability) error {
	return r.v.do(func(st *state) error {
		st.availabilities[a.ID] = copyAvailability(a)
		return nil
	})
}

func (r *AvailabilityRepo) GetByID(_ context.Context, id string) (out *entity.Availability, err error) {
	err = r.v.do(func(st *state) error {
		if a, ok := st.availabilities[id]; ok {
			out = copyAvailability(a)
		}
		return nil
	})
	return
}

func (r *AvailabilityRepo) ListByUser(_ context.Context, userID string, date *time.Time) (out []*entity.Availability, err error) {
	err = r.v.do(func(st *state) error {
		for _, a := range st.availabilities {
			if a.UserID != userID {
				continue
			}
			if date != nil && !sameDay(a.Date, *date) {
				continue
			}
			out = append(out, copyAvailability(a))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return
}

func (r *AvailabilityRepo) Update(_ context.Context, a *entity.Availability) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.availabilities[a.ID]; !ok {
			return fmt.Errorf("update availability %s: %w", a.ID, domain.ErrNotFound)
		}
		st.availabilities[a.ID] = copyAvailability(a)
		return nil
	})
}

func (r *AvailabilityRepo) Delete(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		delete(st.availabilities, id)
		return nil
	})
}

func (r *AvailabilityRepo) DeleteByUser(_ context.Context, userID string) error {
	return r.v.do(func(st *state) error {
		for id, a := range st.availabilities {
			if a.UserID == userID {
				delete(st.availabilities, id)
			}
		}
		return nil
	})
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
