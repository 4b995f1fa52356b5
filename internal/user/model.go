package user

// User is the stored record. Password carries the bcrypt hash, never the
// plaintext the client sent.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}

// MutateRequest is the body of POST /user.
// swagger:model UserMutateRequest
type MutateRequest struct {
	Command  string  `json:"command"  example:"create"`
	ID       int     `json:"id"       example:"1"`
	Username *string `json:"username" example:"alice"`
	Email    *string `json:"email"    example:"a@x.com"`
	Password *string `json:"password" example:"pw"`
}
