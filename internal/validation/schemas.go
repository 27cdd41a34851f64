package validation

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/J-CamiloG/AppKit-API/internal/domain"
)

// phonePattern accepts digits with an optional leading plus and embedded
// spaces or dashes.
var phonePattern = regexp.MustCompile(`^\+?[\d\s-]+$`)

// RegisterPayload is the registration request body. preferredLanguage is
// required here even though the store defaults it; the default only covers
// values omitted below this layer.
type RegisterPayload struct {
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Password          string `json:"password"`
	CountryOfOrigin   string `json:"countryOfOrigin"`
	PreferredLanguage string `json:"preferredLanguage"`
	TravelerType      string `json:"travelerType"`
}

// LoginPayload is the login request body. No length rule applies to the
// password at login; any non-empty string is accepted for comparison.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration schema in declaration order.
func (p RegisterPayload) Validate() error {
	return apply([]fieldRules{
		{"fullName", p.FullName, []validation.Rule{
			validation.Required.Error("El nombre completo es requerido"),
			validation.Length(2, 0).Error("El nombre completo debe tener al menos 2 caracteres"),
			validation.Length(0, 100).Error("El nombre completo no puede tener más de 100 caracteres"),
		}},
		{"email", p.Email, []validation.Rule{
			validation.Required.Error("El email es requerido"),
			is.Email.Error("Debe ser un email válido"),
		}},
		{"phone", p.Phone, []validation.Rule{
			validation.Required.Error("El número de teléfono es requerido"),
			validation.Match(phonePattern).Error("El número de teléfono no es válido"),
		}},
		{"password", p.Password, []validation.Rule{
			validation.Required.Error("La contraseña es requerida"),
			validation.Length(6, 0).Error("La contraseña debe tener al menos 6 caracteres"),
		}},
		{"countryOfOrigin", p.CountryOfOrigin, []validation.Rule{
			validation.Required.Error("El país de origen es requerido"),
			validation.Length(2, 0).Error("El país de origen debe tener al menos 2 caracteres"),
			validation.Length(0, 50).Error("El país de origen no puede tener más de 50 caracteres"),
		}},
		{"preferredLanguage", p.PreferredLanguage, []validation.Rule{
			validation.Required.Error("El idioma preferido es requerido"),
			validation.In(languageValues()...).Error("El idioma preferido debe ser uno de: " + languageCatalog()),
		}},
		{"travelerType", p.TravelerType, []validation.Rule{
			validation.Required.Error("El tipo de viajero es requerido"),
			validation.In(travelerValues()...).Error("El tipo de viajero debe ser uno de: " + travelerCatalog()),
		}},
	})
}

// Validate checks the login schema in declaration order.
func (p LoginPayload) Validate() error {
	return apply([]fieldRules{
		{"email", p.Email, []validation.Rule{
			validation.Required.Error("El email es requerido"),
			is.Email.Error("Debe ser un email válido"),
		}},
		{"password", p.Password, []validation.Rule{
			validation.Required.Error("La contraseña es requerida"),
		}},
	})
}

func languageValues() []interface{} {
	langs := domain.PreferredLanguages()
	values := make([]interface{}, len(langs))
	for i, l := range langs {
		values[i] = string(l)
	}
	return values
}

func languageCatalog() string {
	langs := domain.PreferredLanguages()
	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}

func travelerValues() []interface{} {
	types := domain.TravelerTypes()
	values := make([]interface{}, len(types))
	for i, t := range types {
		values[i] = string(t)
	}
	return values
}

func travelerCatalog() string {
	types := domain.TravelerTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
