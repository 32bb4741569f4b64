// Package mock provides an in-process identity authority that facilitates testing
// of the tool host authorization path.
//
// It publishes a JSON Web Key Set, mints RS256 access tokens for arbitrary users
// and answers on-behalf-of token exchanges, so tests never reach a real tenant.
package mock
