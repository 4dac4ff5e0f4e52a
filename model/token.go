// file: model/token.go

package model

// TokenPair is the result of a successful login or refresh. Both values are
// delivered to the client as http-only cookies and are never embedded in
// response bodies.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
