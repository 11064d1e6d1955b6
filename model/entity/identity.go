package entity

// Identity is an authenticated shopper reference supplied by the external
// identity provider. Only the UID is guaranteed.
type Identity struct {
	UID   string `json:"uid" mapstructure:"uid"`
	Name  string `json:"name,omitempty" mapstructure:"name"`
	Email string `json:"email,omitempty" mapstructure:"email"`
}
