// Package models defines the account records stored on the device and the
// session record derived from them.
package models
