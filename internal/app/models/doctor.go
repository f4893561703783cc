package models

import (
	"doctor-appointment-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson"
)

type Address struct {
	Line1 string `json:"line1" bson:"line1"`
	Line2 string `json:"line2" bson:"line2"`
}

type Doctor struct {
	ID          string      `bson:"_id,omitempty"`
	Name        string      `bson:"name"`
	Email       string      `bson:"email"`
	Password    string      `bson:"password"`
	Image       string      `bson:"image"`
	Speciality  string      `bson:"speciality"`
	Degree      string      `bson:"degree"`
	Experience  string      `bson:"experience"`
	About       string      `bson:"about"`
	Fees        float64     `bson:"fees"`
	Available   bool        `bson:"available"`
	Address     Address     `bson:"address"`
	SlotsBooked BookedSlots `bson:"slots_booked"`
	TimeModel   `bson:",inline"`
}

// ProfileUpdate lists the fields a doctor may change on their own profile.
// The booked registry is deliberately absent.
func (d *Doctor) ProfileUpdate() bson.M {
	return bson.M{
		"fees":      d.Fees,
		"about":     d.About,
		"available": d.Available,
		"address":   d.Address,
		"updatedAt": d.UpdatedAt,
	}
}

func (d *Doctor) ToResponse() responses.Doctor {
	return responses.Doctor{
		ID:         d.ID,
		Name:       d.Name,
		Image:      d.Image,
		Speciality: d.Speciality,
		Degree:     d.Degree,
		Experience: d.Experience,
		About:      d.About,
		Fees:       d.Fees,
		Available:  d.Available,
		Address:    responses.Address{Line1: d.Address.Line1, Line2: d.Address.Line2},
	}
}

func (d *Doctor) ToProfileResponse() responses.DoctorProfile {
	return responses.DoctorProfile{
		Doctor: d.ToResponse(),
		Email:  d.Email,
	}
}
