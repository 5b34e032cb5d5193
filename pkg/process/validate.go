// Copyright (C) 2025 Veridion Labs (oss@veridion-labs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package process

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Result is the outcome of validating a Description.
//
// Errors maps wire field names (e.g. "metal_type") to one human-readable
// message each. Validation errors are data, never raised: a failed Result
// blocks submission and is rendered inline per field, not as a global
// notification.
type Result struct {
	Valid  bool
	Errors map[string]string
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// engine returns the shared validator instance, configured to report field
// names by their json tag so error keys match the wire format.
func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// fieldMessages maps field -> violated rule -> message. One message per
// field reaches the caller; the engine reports the first violated rule for
// each field but evaluates every field, so a single pass yields the complete
// set of offending fields.
var fieldMessages = map[string]map[string]string{
	"metal_type": {
		"required": "Metal type is required",
		"oneof":    "Metal type must be one of: Aluminium, Copper, Steel, Zinc, Lead",
	},
	"process_route": {
		"required": "Process route is required",
		"oneof":    "Process route must be Primary or Recycled",
	},
	"production_capacity": {
		"required": "Production capacity is required",
		"gt":       "Production capacity must be greater than 0",
	},
	"energy_source": {
		"required": "Energy source is required",
	},
	"processing_location": {
		"required": "Processing location is required",
	},
	"end_of_life_option": {
		"required": "End of life option is required",
	},
	"energy_consumption": {
		"gte": "Energy consumption cannot be negative",
	},
	"transport_distance": {
		"gte": "Transport distance cannot be negative",
	},
	"ore_grade": {
		"gte": "Ore grade must be between 0 and 100",
		"lte": "Ore grade must be between 0 and 100",
	},
	"recycling_rate": {
		"gte": "Recycling rate must be between 0 and 100",
		"lte": "Recycling rate must be between 0 and 100",
	},
}

// Validate checks a Description for submission readiness: presence of every
// required field and range constraints on every bounded field that is
// present. Optional fields left nil are not errors — absence tells the
// service to predict the value.
//
// Pure and deterministic: no I/O, no mutation of d.
func Validate(d Description) Result {
	err := engine().Struct(d)
	if err == nil {
		return Result{Valid: true, Errors: map[string]string{}}
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Struct-level failure outside tag rules; should not happen for
		// Description, but never panic on user input.
		return Result{Valid: false, Errors: map[string]string{"_": err.Error()}}
	}

	messages := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		if byTag, ok := fieldMessages[field]; ok {
			if msg, ok := byTag[fe.Tag()]; ok {
				messages[field] = msg
				continue
			}
		}
		messages[field] = fe.Error()
	}
	return Result{Valid: false, Errors: messages}
}
