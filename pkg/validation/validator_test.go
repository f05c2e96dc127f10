package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type registerForm struct {
	Email           string `json:"email" binding:"required,email"`
	Username        string `json:"username" binding:"required,uname"`
	Password        string `json:"password" binding:"required,pwd"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
}

func TestToDetailsFieldMessages(t *testing.T) {
	Init()

	bad := registerForm{
		Email:           "not-an-email",
		Username:        "x",
		Password:        "short",
		PasswordConfirm: "different",
	}
	err := binding.Validator.ValidateStruct(&bad)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	details := ToDetails(err)

	if details["email"] != "must be a valid email" {
		t.Errorf("email detail = %q", details["email"])
	}
	if details["username"] == "" {
		t.Error("username detail missing")
	}
	if details["password"] != "min length 8" {
		t.Errorf("password detail = %q", details["password"])
	}
	if details["password_confirm"] != "must be equal to Password field" {
		t.Errorf("password_confirm detail = %q", details["password_confirm"])
	}
}

func TestToDetailsValidStruct(t *testing.T) {
	Init()

	ok := registerForm{
		Email:           "a@x.com",
		Username:        "alice",
		Password:        "password1",
		PasswordConfirm: "password1",
	}
	if err := binding.Validator.ValidateStruct(&ok); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestToDetailsNil(t *testing.T) {
	if ToDetails(nil) != nil {
		t.Error("nil error should map to nil details")
	}
}
