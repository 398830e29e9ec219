package notice

import (
	"errors"
	"fmt"
	"testing"

	"github.com/astral-cool/astral-web/internal/api"
)

func TestFromError(t *testing.T) {
	wrapped := fmt.Errorf("save domain: %w", &api.Error{Status: 400, Message: "Invalid subdomain"})

	n := FromError(wrapped)
	if n.Kind != KindError || n.Message != "Something went wrong" || n.Description != "Invalid subdomain" {
		t.Errorf("FromError(api) = %+v", n)
	}

	n = FromError(errors.New("dial tcp: connection refused"))
	if n.Description != "Please try again later." {
		t.Errorf("FromError(other) leaked %q", n.Description)
	}
}

func TestValidation(t *testing.T) {
	n := Validation([]string{"Provide a valid username", "Provide a valid password"})
	if n.Message != "Provide the required fields" {
		t.Errorf("Message = %q", n.Message)
	}
	if n.Description != "Provide a valid username, Provide a valid password." {
		t.Errorf("Description = %q", n.Description)
	}
}

func TestZero(t *testing.T) {
	if !(Notice{}).Zero() {
		t.Error("empty notice should be zero")
	}
	if Success("ok").Zero() {
		t.Error("success notice should not be zero")
	}
}
