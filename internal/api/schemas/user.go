package schemas

import (
	"regexp"
	"strings"

	"github.com/rohits-web03/llamastore/internal/models"
)

const (
	emailMinLength    = 5
	emailMaxLength    = 254
	passwordMinLength = 8
	passwordMaxLength = 254
	passwordSymbols   = "@$!%*?&"
)

// EmailPattern is deliberately loose: anything@anything.anything.
var EmailPattern = regexp.MustCompile(`.+@.+\..+`)

const passwordRuleMsg = "Password must be at least 8 characters long, and contain at least " +
	"one letter, one number, and one special character"

// User is the public view of an account. The password hash is never part of it.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func UserFromModel(u models.User) User {
	return User{ID: u.ID, Email: u.Email}
}

func UsersFromModels(us []models.User) []User {
	out := make([]User, 0, len(us))
	for _, u := range us {
		out = append(out, UserFromModel(u))
	}
	return out
}

// UserRegistration is the body of POST /user and POST /token.
type UserRegistration struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Validate checks both fields and returns the values on success.
func (r UserRegistration) Validate() (email, password string, err error) {
	var v ValidationErrors
	if r.Email == nil {
		v.add("missing", bodyLoc("email"), "Field required", nil)
	} else {
		validateEmail(&v, bodyLoc("email"), *r.Email)
	}
	if r.Password == nil {
		v.add("missing", bodyLoc("password"), "Field required", nil)
	} else {
		validatePassword(&v, *r.Password)
	}
	if err := v.err(); err != nil {
		return "", "", err
	}
	return *r.Email, *r.Password, nil
}

// ValidateEmailPath checks the {email} path parameter.
func ValidateEmailPath(email string) error {
	var v ValidationErrors
	validateEmail(&v, []string{"path", "email"}, email)
	return v.err()
}

func validateEmail(v *ValidationErrors, loc []string, email string) {
	n := len([]rune(email))
	switch {
	case n < emailMinLength:
		v.add("string_too_short", loc, "String should have at least 5 characters", email)
	case n > emailMaxLength:
		v.add("string_too_long", loc, "String should have at most 254 characters", email)
	case !EmailPattern.MatchString(email):
		v.add("string_pattern_mismatch", loc, "String should match pattern '"+EmailPattern.String()+"'", email)
	}
}

// PasswordStrong reports whether p has only letters, digits and the allowed
// symbols, with at least one lowercase, uppercase, digit and symbol.
func PasswordStrong(p string) bool {
	var lower, upper, digit, symbol bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return len(p) >= passwordMinLength && lower && upper && digit && symbol
}

func validatePassword(v *ValidationErrors, p string) {
	loc := bodyLoc("password")
	n := len([]rune(p))
	switch {
	case n < passwordMinLength:
		v.add("string_too_short", loc, "String should have at least 8 characters", p)
	case n > passwordMaxLength:
		v.add("string_too_long", loc, "String should have at most 254 characters", p)
	case !PasswordStrong(p):
		v.add("assertion_error", loc, "Assertion failed, "+passwordRuleMsg, p)
	}
}

// APIToken is returned by POST /token.
type APIToken struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

func NewAPIToken(token string) APIToken {
	return APIToken{AccessToken: token, TokenType: "bearer"}
}
