package models

type User struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	Password   string `json:"password"` // bcrypt hash
	Contact    string `json:"contact"`
	NationalID string `json:"nationalId"`
}
