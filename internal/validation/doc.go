// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

// Package validation validates API request structs with go-playground/validator.
//
// A single validator instance is shared process-wide so struct metadata is
// parsed once. Field names in errors are taken from json tags, so messages
// name the field the client actually sent:
//
//	type PersonalizedRequest struct {
//	    PostIDs []string `json:"postIds" validate:"required,min=1,max=50,dive,postid"`
//	    Limit   *int     `json:"limit" validate:"omitempty,min=1,max=50"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError() // Code VALIDATION_ERROR
//	}
//
// The custom postid tag accepts 1 to 128 characters from [A-Za-z0-9_-].
package validation
