// Package validator validates request structs with go-playground/validator
// struct tags and reports failures as [ValidationErrors].
//
// Field names come from the `json` tag so messages match what API clients
// sent:
//
//	type SendRequest struct {
//	    To       string `json:"to" validate:"required,email"`
//	    Username string `json:"username" validate:"required_without=HTML"`
//	    HTML     string `json:"html" validate:"required_without=Username"`
//	}
//
//	if err := validator.ValidateStruct(req); err != nil {
//	    if ve := validator.ExtractValidationErrors(err); ve != nil {
//	        // ve[0].Field == "to", ve[0].Message == "to is required"
//	    }
//	}
//
// Each error carries a translation key and values so messages can be
// localised with [ValidationErrors.Translate].
package validator
