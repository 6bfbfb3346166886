package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateMemberRequest struct {
	RegNo            string  `json:"reg_no"`
	FullName         string  `json:"full_name"`
	NameWithInitials string  `json:"name_with_initials"`
	MyLCINum         *string `json:"my_lci_num"`
	Batch            string  `json:"batch"`
	Faculty          string  `json:"faculty"`
	WhatsApp         string  `json:"whatsapp"`
	PhotoURL         *string `json:"photo_url"`
	TotalPoints      *int    `json:"total_points"`
}

func (req *CreateMemberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RegNo, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.NameWithInitials, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Batch, validation.Required, validation.Length(1, 20)),
		validation.Field(&req.Faculty, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.WhatsApp, validation.Required, validation.Length(1, 30)),
		validation.Field(&req.TotalPoints, validation.Min(0)),
	)
}

// UpdateMemberRequest has no reg_no field; the registration number is not
// an updatable attribute.
type UpdateMemberRequest struct {
	FullName         *string `json:"full_name"`
	NameWithInitials *string `json:"name_with_initials"`
	MyLCINum         *string `json:"my_lci_num"`
	Batch            *string `json:"batch"`
	Faculty          *string `json:"faculty"`
	WhatsApp         *string `json:"whatsapp"`
	PhotoURL         *string `json:"photo_url"`
}

func (req *UpdateMemberRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FullName, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&req.NameWithInitials, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.Batch, validation.NilOrNotEmpty, validation.Length(1, 20)),
		validation.Field(&req.Faculty, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&req.WhatsApp, validation.NilOrNotEmpty, validation.Length(1, 30)),
	)
}
