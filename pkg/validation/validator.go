// Gamedex
// Copyright (c) 2025 The Gamedex Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Gamedex.
//
// Gamedex is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gamedex is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gamedex.  If not, see <http://www.gnu.org/licenses/>.

// Package validation validates configuration and input records with
// go-playground/validator plus Gamedex specific tags.
package validation

import (
	"errors"
	"fmt"
	"time"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/codecollision/gamedex/pkg/platformdefs"
	"github.com/go-playground/validator/v10"
)

// Validator validates structs.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the custom tags registered:
//
//	duration  a Go duration string
//	platform  a platform known to the platform table
//	releasedate  a YYYY-MM-DD date
//	provider  a search provider name
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("duration", validateDuration)
	_ = v.RegisterValidation("platform", validatePlatform)
	_ = v.RegisterValidation("releasedate", validateReleaseDate)
	_ = v.RegisterValidation("provider", validateProvider)

	return &Validator{validate: v}
}

// DefaultValidator is the shared validator instance.
var DefaultValidator = NewValidator()

// Validate validates s and returns an *Error listing every failed field.
func (v *Validator) Validate(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewError(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// Validate validates s with DefaultValidator.
func Validate(s any) error {
	return DefaultValidator.Validate(s)
}

func validateDuration(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, err := time.ParseDuration(val)
	return err == nil
}

// validatePlatform accepts empty, "n/a" and any alias in the platform table.
func validatePlatform(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" || val == platformdefs.NotAvailable {
		return true
	}
	return platformdefs.Lookup(val).Name != platformdefs.NotAvailable
}

func validateReleaseDate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, ok := catalog.ParseDate(val)
	return ok
}

func validateProvider(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return catalog.Provider(val).IsSearchProvider()
}
