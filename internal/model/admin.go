package model

// AdminCredentials is the login payload.
type AdminCredentials struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

// AdminIdentity is what a successful login reveals about the admin.
type AdminIdentity struct {
	Email string `json:"email"`
}
