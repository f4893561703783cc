package models

import (
	"doctor-appointment-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson"
)

const GenderNotSelected = "Not Selected"

type User struct {
	ID        string  `bson:"_id,omitempty"`
	Name      string  `bson:"name"`
	Email     string  `bson:"email"`
	Password  string  `bson:"password"`
	Image     string  `bson:"image"`
	Phone     string  `bson:"phone"`
	Gender    string  `bson:"gender"`
	Dob       string  `bson:"dob"`
	Address   Address `bson:"address"`
	TimeModel `bson:",inline"`
}

func (u *User) ProfileUpdate() bson.M {
	return bson.M{
		"name":      u.Name,
		"image":     u.Image,
		"phone":     u.Phone,
		"gender":    u.Gender,
		"dob":       u.Dob,
		"address":   u.Address,
		"updatedAt": u.UpdatedAt,
	}
}

func (u *User) ToProfileResponse() responses.UserProfile {
	return responses.UserProfile{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Image:   u.Image,
		Phone:   u.Phone,
		Address: responses.Address{Line1: u.Address.Line1, Line2: u.Address.Line2},
		Gender:  u.Gender,
		Dob:     u.Dob,
	}
}
