// Package memory implementa los puertos de persistencia en memoria. Se usa en tests y en
// desarrollo local (STORAGE_DRIVER=memory). Las transacciones clonan el estado y lo
// reemplazan al confirmar, de modo que un error dentro de Run no deja escrituras parciales.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Horarios-api/internal/application/ports"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	restaurants    map[int]*entity.Restaurant
	users          map[string]*entity.User
	schedules      map[string]*entity.Schedule
	shifts         map[string]*entity.Shift
	availabilities map[string]*entity.Availability
}

func newState() *state {
	return &state{
		restaurants:    map[int]*entity.Restaurant{},
		users:          map[string]*entity.User{},
		schedules:      map[string]*entity.Schedule{},
		shifts:         map[string]*entity.Shift{},
		availabilities: map[string]*entity.Availability{},
	}
}

func (s *state) restaurantReferenced(id int) bool {
	for _, u := range s.users {
		if u.RestaurantID != nil && *u.RestaurantID == id {
			return true
		}
	}
	for _, sc := range s.schedules {
		if sc.RestaurantID == id {
			return true
		}
	}
	for _, sh := range s.shifts {
		if sh.RestaurantID == id {
			return true
		}
	}
	return false
}

func (s *state) userReferenced(id string) bool {
	for _, sh := range s.shifts {
		if sh.AssignedToID != nil && *sh.AssignedToID == id {
			return true
		}
	}
	for _, a := range s.availabilities {
		if a.UserID == id {
			return true
		}
	}
	return false
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.restaurants {
		c.restaurants[k] = copyRestaurant(v)
	}
	for k, v := range s.users {
		c.users[k] = copyUser(v)
	}
	for k, v := range s.schedules {
		c.schedules[k] = copySchedule(v)
	}
	for k, v := range s.shifts {
		c.shifts[k] = copyShift(v)
	}
	for k, v := range s.availabilities {
		c.availabilities[k] = copyAvailability(v)
	}
	return c
}

// Store almacén en memoria seguro para uso concurrente.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// view acceso al estado: tx != nil significa que estamos dentro de Run (el lock ya está tomado).
type view struct {
	store *Store
	tx    *state
}

func (v view) do(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

func (v view) repos() ports.TxRepos {
	return ports.TxRepos{
		Restaurants:    &RestaurantRepo{v: v},
		Users:          &UserRepo{v: v},
		Schedules:      &ScheduleRepo{v: v},
		Shifts:         &ShiftRepo{v: v},
		Availabilities: &AvailabilityRepo{v: v},
	}
}

// Repos devuelve repositorios fuera de transacción.
func (s *Store) Repos() ports.TxRepos {
	return view{store: s}.repos()
}

// Run ejecuta fn sobre una copia del estado y la confirma solo si fn no devuelve error.
// Las transacciones se serializan; dentro de fn solo deben usarse los repos recibidos.
func (s *Store) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(view{store: s, tx: work}.repos()); err != nil {
		return err
	}
	s.st = work
	return nil
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyStrPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyRestaurant(r *entity.Restaurant) *entity.Restaurant {
	c := *r
	return &c
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	c.RestaurantID = copyIntPtr(u.RestaurantID)
	return &c
}

func copySchedule(s *entity.Schedule) *entity.Schedule {
	c := *s
	return &c
}

func copyShift(s *entity.Shift) *entity.Shift {
	c := *s
	c.ScheduleID = copyStrPtr(s.ScheduleID)
	c.AssignedToID = copyStrPtr(s.AssignedToID)
	return &c
}

func copyAvailability(a *entity.Availability) *entity.Availability {
	c := *a
	return &c
}
