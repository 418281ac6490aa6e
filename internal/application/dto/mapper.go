package dto

import "github.com/jhoicas/Horarios-api/internal/domain/entity"

const dateLayout = "2006-01-02"

// ToUserResponse convierte una entidad User en su salida pública.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:            u.ID,
		RestaurantID:  u.RestaurantID,
		Name:          u.Name,
		Email:         u.Email,
		PhoneNumber:   u.PhoneNumber,
		ConsentToText: u.ConsentToText,
		Role:          string(u.Role),
		Status:        string(u.Status),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// ToUserResponses convierte una lista de usuarios.
func ToUserResponses(list []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *ToUserResponse(u))
	}
	return out
}

func ToRestaurantResponse(r *entity.Restaurant) *RestaurantResponse {
	if r == nil {
		return nil
	}
	return &RestaurantResponse{
		ID:          r.ID,
		Name:        r.Name,
		Location:    r.Location,
		PhoneNumber: r.PhoneNumber,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func ToRestaurantResponses(list []*entity.Restaurant) []RestaurantResponse {
	out := make([]RestaurantResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *ToRestaurantResponse(r))
	}
	return out
}

func ToScheduleResponse(s *entity.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}
	return &ScheduleResponse{
		ID:           s.ID,
		RestaurantID: s.RestaurantID,
		Name:         s.Name,
		StartDate:    s.StartDate.Format(dateLayout),
		EndDate:      s.EndDate.Format(dateLayout),
		CreatedByID:  s.CreatedByID,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func ToScheduleResponses(list []*entity.Schedule) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *ToScheduleResponse(s))
	}
	return out
}

func ToShiftResponse(s *entity.Shift) *ShiftResponse {
	if s == nil {
		return nil
	}
	return &ShiftResponse{
		ID:           s.ID,
		RestaurantID: s.RestaurantID,
		ScheduleID:   s.ScheduleID,
		AssignedToID: s.AssignedToID,
		CreatedByID:  s.CreatedByID,
		Name:         s.Name,
		Role:         s.Role,
		Date:         s.Date.Format(dateLayout),
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func ToShiftResponses(list []*entity.Shift) []ShiftResponse {
	out := make([]ShiftResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *ToShiftResponse(s))
	}
	return out
}

func ToAvailabilityResponse(a *entity.Availability) *AvailabilityResponse {
	if a == nil {
		return nil
	}
	return &AvailabilityResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Date:      a.Date.Format(dateLayout),
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToAvailabilityResponses(list []*entity.Availability) []AvailabilityResponse {
	out := make([]AvailabilityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *ToAvailabilityResponse(a))
	}
	return out
}
