package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Horarios-api/internal/application/authz"
	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/application/ports"
	"github.com/jhoicas/Horarios-api/internal/application/usecase"
	"github.com/jhoicas/Horarios-api/internal/domain"
	"github.com/jhoicas/Horarios-api/internal/domain/entity"
	"github.com/jhoicas/Horarios-api/internal/domain/repository"
	"github.com/jhoicas/Horarios-api/internal/observability/metrics"
	"github.com/jhoicas/Horarios-api/pkg/jwt"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Deps colaboradores del caso de uso de auth.
type Deps struct {
	Users       repository.UserRepository
	Restaurants repository.RestaurantRepository
	Tx          ports.TxRunner
	Hasher      ports.PasswordHasher
	Cache       ports.ActorCache
	Allocator   *usecase.RestaurantIDAllocator
	Gate        *authz.Gate
	Log         zerolog.Logger
	Now         func() time.Time
}

// AuthUseCase registro, login y resolución del actor autenticado.
type AuthUseCase struct {
	users       repository.UserRepository
	restaurants repository.RestaurantRepository
	tx          ports.TxRunner
	hasher      ports.PasswordHasher
	cache       ports.ActorCache
	alloc       *usecase.RestaurantIDAllocator
	gate        *authz.Gate
	validate    *validator.Validate
	jwtCfg      JWTConfig
	log         zerolog.Logger
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(d Deps, jwtCfg JWTConfig) *AuthUseCase {
	if d.Cache == nil {
		d.Cache = ports.NopActorCache{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &AuthUseCase{
		users:       d.Users,
		restaurants: d.Restaurants,
		tx:          d.Tx,
		hasher:      d.Hasher,
		cache:       d.Cache,
		alloc:       d.Allocator,
		gate:        d.Gate,
		validate:    validator.New(),
		jwtCfg:      jwtCfg,
		log:         d.Log.With().Str("usecase", "auth").Logger(),
		now:         d.Now,
	}
}

// newUserInput campos comunes de alta de usuario antes de hashear.
type newUserInput struct {
	restaurantID  *int
	name          string
	email         string
	password      string
	phone         string
	consentToText bool
	role          entity.Role
}

// buildUser valida y construye el usuario pendiente con el password hasheado.
func (uc *AuthUseCase) buildUser(in newUserInput) (*entity.User, error) {
	name := strings.TrimSpace(in.name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	email := entity.NormalizeEmail(in.email)
	if err := uc.validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: email %q", domain.ErrInvalidInput, in.email)
	}
	if len(in.password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	phone, err := entity.NormalizePhone(in.phone)
	if err != nil {
		return nil, err
	}
	hash, err := uc.hasher.Hash(in.password)
	if err != nil {
		return nil, fmt.Errorf("hash de contraseña: %w", err)
	}
	now := uc.now()
	return &entity.User{
		ID:            uuid.New().String(),
		RestaurantID:  in.restaurantID,
		Name:          name,
		Email:         email,
		PasswordHash:  hash,
		PhoneNumber:   phone,
		ConsentToText: in.consentToText,
		Role:          in.role,
		Status:        entity.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// RegisterEmployee alta de un empleado (pending) en un restaurante existente.
func (uc *AuthUseCase) RegisterEmployee(ctx context.Context, in dto.JoinRequest) (*dto.UserResponse, error) {
	rid := in.RestaurantID
	u, err := uc.buildUser(newUserInput{
		restaurantID:  &rid,
		name:          in.Name,
		email:         in.Email,
		password:      in.Password,
		phone:         in.PhoneNumber,
		consentToText: in.ConsentToText,
		role:          entity.RoleEmployee,
	})
	if err != nil {
		return nil, rejectedUser(err)
	}
	r, err := uc.restaurants.GetByID(ctx, rid)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, rejectedUser(fmt.Errorf("%w: el restaurante %d no existe", domain.ErrInvalidInput, rid))
	}
	if err := uc.ensureEmailFree(ctx, u.Email); err != nil {
		return nil, err
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", u.ID).Int("restaurant_id", rid).Msg("empleado registrado")
	return dto.ToUserResponse(u), nil
}

// RegisterRestaurant crea el restaurante y su admin (ambos pending) en una sola transacción.
func (uc *AuthUseCase) RegisterRestaurant(ctx context.Context, in dto.RegisterRestaurantRequest) (*dto.RestaurantWithAdminResponse, error) {
	r, err := entity.NewRestaurant(in.RestaurantName, in.Location, in.RestaurantPhone, uc.now())
	if err != nil {
		metrics.ObserveValidationRejection("restaurant")
		return nil, err
	}
	admin, err := uc.buildUser(newUserInput{
		name:          in.AdminName,
		email:         in.Email,
		password:      in.Password,
		phone:         in.PhoneNumber,
		consentToText: in.ConsentToText,
		role:          entity.RoleAdmin,
	})
	if err != nil {
		return nil, rejectedUser(err)
	}
	if err := uc.ensureEmailFree(ctx, admin.Email); err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(repos ports.TxRepos) error {
		if err := uc.alloc.Allocate(ctx, repos.Restaurants, r); err != nil {
			return err
		}
		admin.RestaurantID = &r.ID
		return repos.Users.Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("restaurant_id", r.ID).Str("admin_id", admin.ID).Msg("restaurante registrado")
	return &dto.RestaurantWithAdminResponse{
		Restaurant: *dto.ToRestaurantResponse(r),
		Admin:      dto.ToUserResponse(admin),
	}, nil
}

// CreateAdmin alta de un admin (pending) para un restaurante existente. Solo super-admin.
func (uc *AuthUseCase) CreateAdmin(ctx context.Context, actor *entity.Actor, restaurantID int, in dto.CreateAdminRequest) (*dto.UserResponse, error) {
	if err := uc.gate.Require(actor, authz.SuperAdminOnly); err != nil {
		return nil, err
	}
	r, err := uc.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: restaurante %d", domain.ErrNotFound, restaurantID)
	}
	rid := r.ID
	u, err := uc.buildUser(newUserInput{
		restaurantID:  &rid,
		name:          in.Name,
		email:         in.Email,
		password:      in.Password,
		phone:         in.PhoneNumber,
		consentToText: in.ConsentToText,
		role:          entity.RoleAdmin,
	})
	if err != nil {
		return nil, rejectedUser(err)
	}
	if err := uc.ensureEmailFree(ctx, u.Email); err != nil {
		return nil, err
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(u), nil
}

// BootstrapSuperAdmin crea el super-admin inicial (aprobado y sin restaurante). No hay
// endpoint para esto: lo usa el comando de arranque. Si el email ya pertenece a un
// super-admin devuelve ese usuario con created=false.
func (uc *AuthUseCase) BootstrapSuperAdmin(ctx context.Context, name, email, password string) (*dto.UserResponse, bool, error) {
	existing, err := uc.users.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		if existing.Role != entity.RoleSuperAdmin {
			return nil, false, domain.ErrEmailAlreadyExists
		}
		return dto.ToUserResponse(existing), false, nil
	}
	u, err := uc.buildUser(newUserInput{name: name, email: email, password: password, role: entity.RoleSuperAdmin})
	if err != nil {
		return nil, false, err
	}
	u.Status = entity.StatusApproved
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, false, err
	}
	uc.log.Info().Str("user_id", u.ID).Msg("super-admin creado")
	return dto.ToUserResponse(u), true, nil
}

// Login verifica email/password, exige cuenta aprobada y emite el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.users.GetByEmail(ctx, entity.NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if u == nil || !uc.hasher.Verify(in.Password, u.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}
	if u.Status != entity.StatusApproved {
		return nil, domain.ErrUnapproved
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.RestaurantID, string(u.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		Dashboard: DashboardFor(u.Role),
		User:      *dto.ToUserResponse(u),
	}, nil
}

// Me devuelve el usuario del actor.
func (uc *AuthUseCase) Me(ctx context.Context, actor *entity.Actor) (*dto.UserResponse, error) {
	if actor == nil {
		return nil, domain.ErrRequiresLogin
	}
	u, err := uc.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(u), nil
}

// ResolveActor resuelve (rol, estado, restaurante) del usuario: caché primero y luego
// repositorio. Un usuario inexistente devuelve (nil, nil), es decir, sin sesión.
func (uc *AuthUseCase) ResolveActor(ctx context.Context, userID string) (*entity.Actor, error) {
	if userID == "" {
		return nil, nil
	}
	if a, ok, err := uc.cache.Get(ctx, userID); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("caché de actores no disponible")
	} else if ok {
		return a, nil
	}
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	a := entity.ActorOf(u)
	if err := uc.cache.Set(ctx, a); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo guardar el actor en caché")
	}
	return a, nil
}

// DashboardFor ruta del panel correspondiente al rol.
func DashboardFor(role entity.Role) string {
	switch role {
	case entity.RoleSuperAdmin:
		return "/super-admin-dashboard"
	case entity.RoleAdmin:
		return "/admin-dashboard"
	default:
		return "/employee-dashboard"
	}
}

func (uc *AuthUseCase) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	return nil
}

func rejectedUser(err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		metrics.ObserveValidationRejection("user")
	}
	return err
}
