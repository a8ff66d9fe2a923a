// Package user holds the operators of the system and their roles.
package user
