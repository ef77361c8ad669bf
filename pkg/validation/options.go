package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/leadmarket/leadmarket/pkg/apis/options"
)

// Validate checks that required options are set and validates those that they
// are of the correct format
func Validate(o *options.Options) error {
	msgs := validateCookie(o.Cookie)

	if o.HTTPAddress == "" {
		msgs = append(msgs, "missing setting: http-address")
	}

	if o.Secret == "" {
		msgs = append(msgs, "missing setting: secret")
	}

	if o.DatabaseURL == "" {
		msgs = append(msgs, "missing setting: database-url")
	}

	if o.TokenTTL <= 0 {
		msgs = append(msgs, fmt.Sprintf("token-ttl must be a positive duration, got %q", o.TokenTTL))
	}

	if len(msgs) != 0 {
		return fmt.Errorf("invalid configuration:\n  %s", strings.Join(msgs, "\n  "))
	}
	return nil
}

func validateCookie(o options.Cookie) []string {
	msgs := []string{}

	if o.Name == "" {
		msgs = append(msgs, "missing setting: cookie-name")
	} else if strings.ContainsAny(o.Name, " \t;=") {
		msgs = append(msgs, fmt.Sprintf("invalid cookie name: %q", o.Name))
	}

	switch o.SameSite {
	case "", "none", "lax", "strict":
	default:
		msgs = append(msgs, fmt.Sprintf("cookie-samesite (%q) must be one of ['', 'lax', 'strict', 'none']", o.SameSite))
	}

	if o.Expire < time.Duration(0) {
		msgs = append(msgs, fmt.Sprintf("cookie-expire (%q) can't be negative", o.Expire))
	}

	return msgs
}
