package dto

import (
	"errors"
	"fmt"
	"strings"
)

type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (l Login) IsValid() error {
	var usernameErr, passwordErr error

	if strings.TrimSpace(l.Username) == "" {
		usernameErr = fmt.Errorf("username is required")
	}

	if strings.TrimSpace(l.Password) == "" {
		passwordErr = fmt.Errorf("password is required")
	}

	return errors.Join(usernameErr, passwordErr)
}

type Register struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r Register) IsValid() error {
	var errs []error

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}

	if !strings.Contains(r.Email, "@") {
		errs = append(errs, fmt.Errorf("valid email is required"))
	}

	if len(strings.TrimSpace(r.Username)) < 4 {
		errs = append(errs, fmt.Errorf("username must be at least 4 characters"))
	}

	if len(r.Password) < 6 {
		errs = append(errs, fmt.Errorf("password must be at least 6 characters"))
	}

	return errors.Join(errs...)
}
