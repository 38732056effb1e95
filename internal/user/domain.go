// Package user holds shopper accounts. The demo flow runs unauthenticated;
// accounts exist so orders can be attributed and listed per user.
package user

// User is a shopper account. The password is stored as a bcrypt hash and
// never serialized.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
