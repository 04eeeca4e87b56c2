package services

import "testing"

func TestValidatePassword(t *testing.T) {
	service := &UserService{BlackList: map[string]bool{"Password1!": true}}

	cases := []struct {
		password string
		wantErr  bool
	}{
		{"Sturdy7!pass", false},
		{"Ab1!", true},
		{"lowercase1!", true},
		{"NoDigits!!", true},
		{"NoSpecial12", true},
		{"Password1!", true},
	}

	for _, c := range cases {
		err := service.ValidatePassword(c.password)
		if c.wantErr && err == nil {
			t.Errorf("expected %q to be rejected", c.password)
		}
		if !c.wantErr && err != nil {
			t.Errorf("expected %q to be accepted, got: %v", c.password, err)
		}
	}
}
