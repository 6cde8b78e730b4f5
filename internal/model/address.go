package model

// Address is an embedded value object, stored as a JSONB snapshot on the
// order rather than referenced, so later profile edits never alter past
// orders.
type Address struct {
	FullName     string `json:"fullName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Country      string `json:"country"`
	PhoneNumber  string `json:"phoneNumber"`
}

// Complete reports whether all required address fields are present.
// AddressLine2 is the only optional field.
func (a *Address) Complete() bool {
	if a == nil {
		return false
	}
	return a.FullName != "" &&
		a.AddressLine1 != "" &&
		a.City != "" &&
		a.State != "" &&
		a.ZipCode != "" &&
		a.Country != "" &&
		a.PhoneNumber != ""
}
