package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patients table. Records are authored offline on mobile
// devices, so the ID is usually minted by the client and preserved on sync.
type Patient struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	FirstName   string     `db:"first_name" json:"first_name"`
	LastName    string     `db:"last_name" json:"last_name"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Sex         string     `db:"sex" json:"sex,omitempty"`
	Village     string     `db:"village" json:"village,omitempty"`
	MissionTrip string     `db:"mission_trip" json:"mission_trip,omitempty"`
	Phone       string     `db:"phone" json:"phone,omitempty"`
	Notes       string     `db:"notes" json:"notes,omitempty"`
	PhotoHash   string     `db:"photo_hash" json:"photo_hash,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// DisplayName is the name shown on clinic worklists.
func (p *Patient) DisplayName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
