package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmitrijs2005/localauth/internal/common"
)

// User is the identity visible to the session. It never carries a credential.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StoredUser is a persisted account. Password always holds a hasher digest.
type StoredUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Public returns a detached copy without the digest.
func (u StoredUser) Public() User {
	return User{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserDatabase is the ordered list of accounts, unique by normalized email.
type UserDatabase []StoredUser

// FindByEmail returns the index of the record whose email equals the already
// normalized email, or -1.
func (db UserDatabase) FindByEmail(email string) int {
	for i, u := range db {
		if NormalizeEmail(u.Email) == email {
			return i
		}
	}
	return -1
}

// DecodeUserDatabase parses the stored account list. Empty input is an empty
// database; anything malformed is common.ErrCorruptState.
func DecodeUserDatabase(data []byte) (UserDatabase, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return UserDatabase{}, nil
	}

	var db UserDatabase
	if err := strictUnmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("%w: user database: %v", common.ErrCorruptState, err)
	}
	if db == nil {
		db = UserDatabase{}
	}
	for i, u := range db {
		if u.ID == "" || u.Email == "" {
			return nil, fmt.Errorf("%w: user database: record %d lacks id or email", common.ErrCorruptState, i)
		}
	}
	return db, nil
}

func EncodeUserDatabase(db UserDatabase) ([]byte, error) {
	if db == nil {
		db = UserDatabase{}
	}
	return json.Marshal(db)
}

// DecodeSession parses the stored current-session record.
func DecodeSession(data []byte) (User, error) {
	var u User
	if err := strictUnmarshal(data, &u); err != nil {
		return User{}, fmt.Errorf("%w: session: %v", common.ErrCorruptState, err)
	}
	if u.ID == "" || u.Email == "" {
		return User{}, fmt.Errorf("%w: session lacks id or email", common.ErrCorruptState)
	}
	return u, nil
}

func EncodeSession(u User) ([]byte, error) {
	return json.Marshal(u)
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("trailing data after JSON value")
	}
	return nil
}
