// Package validation wires the request-body validation rules and their
// Spanish client-facing messages into gin's binding engine.
package validation

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register installs the custom rules on gin's validator engine. Call once at
// startup, before the router handles traffic.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Report fields by their json name so error keys match request bodies.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("complexity", passwordComplexity)
	_ = v.RegisterValidation("notblank", notBlank)
}

// notBlank rejects values that are empty or whitespace only. The stock
// "required" rule lets "   " through.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// passwordComplexity requires at least one uppercase letter, one lowercase
// letter and one digit.
func passwordComplexity(fl validator.FieldLevel) bool {
	var hasUpper, hasLower, hasDigit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

var mensajes = map[string]string{
	"nombre.required":     "El nombre es obligatorio",
	"nombre.notblank":     "El nombre es obligatorio",
	"nombre.min":          "El nombre debe tener entre 2 y 50 caracteres",
	"nombre.max":          "El nombre debe tener entre 2 y 50 caracteres",
	"apellido.required":   "El apellido es obligatorio",
	"apellido.notblank":   "El apellido es obligatorio",
	"apellido.min":        "El apellido debe tener entre 2 y 50 caracteres",
	"apellido.max":        "El apellido debe tener entre 2 y 50 caracteres",
	"email.required":      "El email es obligatorio",
	"email.email":         "El email debe tener un formato válido",
	"telefono.required":   "El telefono es obligatorio",
	"telefono.notblank":   "El telefono es obligatorio",
	"password.required":   "La contraseña es obligatorio",
	"password.notblank":   "La contraseña es obligatorio",
	"password.min":        "La contraseña debe tener minimo 8 caracteres",
	"password.complexity": "La contraseña debe tener al menos una letra mayúscula, una letra minúscula y un número",
}

// ErrorResponse translates a binding failure into the structured 400 body:
// {status, message, errores: {campo: mensaje}}.
func ErrorResponse(err error) gin.H {
	errores := gin.H{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			key := fe.Field() + "." + fe.Tag()
			if msg, ok := mensajes[key]; ok {
				errores[fe.Field()] = msg
			} else {
				errores[fe.Field()] = "Valor inválido"
			}
		}
	} else {
		errores["body"] = "Cuerpo de la petición inválido"
	}

	return gin.H{
		"status":  http.StatusBadRequest,
		"message": "Error de validacion",
		"errores": errores,
	}
}
