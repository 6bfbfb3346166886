package domain

import "time"

// Member is identified by its registration number, which never changes
// once the member is created.
type Member struct {
	RegNo            string    `json:"reg_no"`
	PhotoURL         *string   `json:"photo_url"`
	FullName         string    `json:"full_name"`
	NameWithInitials string    `json:"name_with_initials"`
	MyLCINum         *string   `json:"my_lci_num"`
	Batch            string    `json:"batch"`
	Faculty          string    `json:"faculty"`
	WhatsApp         string    `json:"whatsapp"`
	TotalPoints      int       `json:"total_points"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MemberUpdate carries the mutable profile fields. RegNo is deliberately
// absent so the registration number can never be rewritten through an update.
type MemberUpdate struct {
	PhotoURL         *string `json:"photo_url"`
	FullName         *string `json:"full_name"`
	NameWithInitials *string `json:"name_with_initials"`
	MyLCINum         *string `json:"my_lci_num"`
	Batch            *string `json:"batch"`
	Faculty          *string `json:"faculty"`
	WhatsApp         *string `json:"whatsapp"`
}
