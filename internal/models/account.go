package models

type Account struct {
	Username string
	Password string
}
