package crecord

// Attorney is the lawyer filing petitions on a client's behalf.
type Attorney struct {
	Organization      string   `json:"organization"`
	FullName          string   `json:"full_name"`
	Address           *Address `json:"address,omitempty"`
	OrganizationPhone string   `json:"organization_phone"`
	BarID             string   `json:"bar_id"`
}
