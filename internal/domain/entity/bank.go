package entity

// Bank is a master record owned outside this core; only its name is needed
// for receipts and statements.
type Bank struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is the owner of one or more accounts.
type User struct {
	ID         string `json:"id"`
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	Patronymic string `json:"patronymic"`
}

// FullName returns the customer name as printed on statements.
func (u *User) FullName() string {
	name := u.LastName + " " + u.FirstName
	if u.Patronymic != "" {
		name += " " + u.Patronymic
	}
	return name
}
