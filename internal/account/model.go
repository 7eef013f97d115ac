package account

import "time"

// Profile holds the fitness and demographic fields distinct from login
// credentials. All values travel as strings on the wire; weight, height and
// age are numeric strings validated client-side before submission.
type Profile struct {
	Weight      string `json:"weight"`
	WeightPhoto string `json:"weightPhoto,omitempty"`
	Height      string `json:"height"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Location    string `json:"location"`
	State       string `json:"state"`
	Village     string `json:"village,omitempty"`
}

// Account is the durable server-side record for a registered user.
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
	FullName     string
	Phone        string
	Profile      Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserData is the profile-update payload. Profile is a pointer so a missing
// "profile" key can be told apart from an empty one; fullName and phone are
// replaced along with the profile, not merged.
type UserData struct {
	FullName string   `json:"fullName,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Profile  *Profile `json:"profile"`
}

// Credentials carries a login or registration request.
type Credentials struct {
	Email    string
	Password string
}
