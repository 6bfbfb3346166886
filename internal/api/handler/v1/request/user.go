package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateUserRequest struct {
	Email             string  `json:"email"`
	Password          string  `json:"password"`
	Username          string  `json:"username"`
	Designation       string  `json:"designation"`
	Role              string  `json:"role"`
	LinkedMemberRegNo *string `json:"linked_member_reg_no"`
}

func (req *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Designation, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Role, validation.Required, validation.In("super_admin", "editor", "viewer")),
	)
}

type UpdateUserRequest struct {
	Username          *string `json:"username"`
	Designation       *string `json:"designation"`
	Role              *string `json:"role"`
	LinkedMemberRegNo *string `json:"linked_member_reg_no"`
}

func (req *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.Designation, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.Role, validation.NilOrNotEmpty, validation.In("super_admin", "editor", "viewer")),
	)
}
