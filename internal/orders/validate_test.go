package orders

import (
	"errors"
	"testing"
)

func validShipping() ShippingDetails {
	return ShippingDetails{
		FullName: "Asha Verma",
		Email:    "asha.verma@iitd.ac.in",
		Phone:    "9876543210",
		Address:  "Hostel 4, IIT Campus",
		City:     "New Delhi",
		State:    "Delhi",
		Zip:      "110016",
		Country:  "India",
	}
}

func TestValidateShipping_OK(t *testing.T) {
	if err := ValidateShipping(validShipping()); err != nil {
		t.Fatalf("expected valid shipping, got %v", err)
	}
}

func TestValidateShipping_RequiredFields(t *testing.T) {
	mutations := map[string]func(*ShippingDetails){
		"full_name": func(s *ShippingDetails) { s.FullName = "" },
		"email":     func(s *ShippingDetails) { s.Email = "   " },
		"phone":     func(s *ShippingDetails) { s.Phone = "" },
		"address":   func(s *ShippingDetails) { s.Address = "" },
		"city":      func(s *ShippingDetails) { s.City = "" },
		"state":     func(s *ShippingDetails) { s.State = "" },
		"zip":       func(s *ShippingDetails) { s.Zip = "" },
		"country":   func(s *ShippingDetails) { s.Country = "" },
	}
	for field, mutate := range mutations {
		s := validShipping()
		mutate(&s)
		err := ValidateShipping(s)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected ValidationError, got %v", field, err)
			continue
		}
		if ve.Field != field {
			t.Errorf("expected failure on %s, got %s", field, ve.Field)
		}
	}
}

func TestValidateShipping_Email(t *testing.T) {
	good := []string{
		"student@nitk.edu",
		"a.b@college.ac.in",
		"x_y@uni.edu.in",
	}
	bad := []string{
		"student@gmail.com",
		"no-at-sign.ac.in",
		"spaces in@uni.edu",
		"@uni.edu",
	}
	for _, e := range good {
		s := validShipping()
		s.Email = e
		if err := ValidateShipping(s); err != nil {
			t.Errorf("expected %q to pass, got %v", e, err)
		}
	}
	for _, e := range bad {
		s := validShipping()
		s.Email = e
		if err := ValidateShipping(s); err == nil {
			t.Errorf("expected %q to be rejected", e)
		}
	}
}

func TestValidateShipping_Phone(t *testing.T) {
	bad := []string{"1234567890", "98765", "98765432101", "9876abc210", "09876543210"}
	for _, p := range bad {
		s := validShipping()
		s.Phone = p
		if err := ValidateShipping(s); err == nil {
			t.Errorf("expected phone %q to be rejected", p)
		}
	}
	for _, p := range []string{"6000000000", "7123456789", "8999999999", "9876543210"} {
		s := validShipping()
		s.Phone = p
		if err := ValidateShipping(s); err != nil {
			t.Errorf("expected phone %q to pass, got %v", p, err)
		}
	}
}

func TestValidateShipping_Zip(t *testing.T) {
	for _, z := range []string{"1", "110016", "560"} {
		s := validShipping()
		s.Zip = z
		if err := ValidateShipping(s); err != nil {
			t.Errorf("expected zip %q to pass, got %v", z, err)
		}
	}
	for _, z := range []string{"1100165", "11a016", "-1100"} {
		s := validShipping()
		s.Zip = z
		if err := ValidateShipping(s); err == nil {
			t.Errorf("expected zip %q to be rejected", z)
		}
	}
}
