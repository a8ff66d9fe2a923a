// Package customer provides the Customer aggregate: identity, contact details
// and the running account balance that every order transition moves.
package customer
