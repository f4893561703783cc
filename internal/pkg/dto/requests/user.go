package requests

type UpdateUserProfile struct {
	Name    string  `json:"name" validate:"required,min=2,max=100"`
	Phone   string  `json:"phone" validate:"omitempty,max=20"`
	Address Address `json:"address"`
	Gender  string  `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Dob     string  `json:"dob" validate:"omitempty,datetime=2006-01-02"`
}
