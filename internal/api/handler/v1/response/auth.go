package response

import "github.com/leoclub/points-tracker-api/internal/domain"

type LoginResponse struct {
	Token string         `json:"token"`
	User  domain.AppUser `json:"user"`
}

type CurrentUserResponse struct {
	User         domain.AppUser      `json:"user"`
	Capabilities domain.Capabilities `json:"capabilities"`
}
