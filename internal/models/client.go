package models

import "strings"

// Client is a storefront customer with a shipping address.
type Client struct {
	BaseModel
	Name     string `json:"name"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Street   string `json:"street"`
	Number   string `json:"number"`
	Comp     string `json:"comp,omitempty"`
	District string `json:"district"`
	Cep      string `json:"cep"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// Address renders the client's address on one line.
func (c Client) Address() string {
	parts := []string{c.Street + ", " + c.Number}
	if c.Comp != "" {
		parts = append(parts, c.Comp)
	}
	parts = append(parts, c.District, c.City+" - "+c.State, "CEP: "+c.Cep)
	return strings.Join(parts, ", ")
}
