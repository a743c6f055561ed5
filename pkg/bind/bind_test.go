package bind_test

import (
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/shashiranjanraj/suby/pkg/bind"
)

func TestStringList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`["veg","non-veg"]`, []string{"veg", "non-veg"}},
		{`veg,non-veg`, []string{"veg", "non-veg"}},
		{` veg , non-veg `, []string{"veg", "non-veg"}},
		{`"south-indian"`, []string{"south-indian"}},
		{`bakery`, []string{"bakery"}},
		{``, nil},
		{`  `, nil},
	}
	for _, tc := range cases {
		if got := bind.StringList(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("StringList(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestJSONMalformedBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/vendor/register", strings.NewReader("{not json"))

	var dest struct {
		Email string `json:"email" validate:"required,email"`
	}
	if _, err := bind.JSON(req, &dest); err == nil {
		t.Fatal("expected malformed JSON error")
	}
}

func TestJSONValidation(t *testing.T) {
	req := httptest.NewRequest("POST", "/vendor/register", strings.NewReader(`{"email":"not-an-email"}`))

	var dest struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs, err := bind.JSON(req, &dest)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if errs["email"] == "" {
		t.Errorf("validation errors = %v, want email failure", errs)
	}
}
