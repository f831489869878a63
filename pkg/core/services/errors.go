package services

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}
