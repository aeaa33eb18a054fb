package entity

// Address is a value object embedded in profile entities. It has no
// identity of its own and is copied by value.
type Address struct {
	Street string `json:"street"`
	Detail string `json:"detail"`
	Zip    string `json:"zip"`
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)
