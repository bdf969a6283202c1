package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrWrongTokenType indicates the token was issued for another purpose
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrPasswordMismatch indicates a supplied password does not match the stored one
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrKeyGeneration indicates the random source failed while generating an API key
	ErrKeyGeneration = errors.New("failed to generate api key")
)
