package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain digits", input: "1234567890", want: "1234567890"},
		{name: "with plus prefix", input: "+1234567890", want: "+1234567890"},
		{name: "separators stripped", input: "123-456-7890", want: "1234567890"},
		{name: "spaces and parens stripped", input: "+1 (234) 567-8901", want: "+12345678901"},
		{name: "too short", input: "12345", wantErr: true},
		{name: "too long", input: "12345678901234567", wantErr: true},
		{name: "letters only", input: "notaphone", wantErr: true},
		{name: "empty passes through", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Phone(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ErrInvalidPhoneFormat, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple address", input: "john.doe@example.com"},
		{name: "plus tag", input: "john+tag@example.co.uk"},
		{name: "missing at sign", input: "john.doe.example.com", wantErr: true},
		{name: "missing tld", input: "john@example", wantErr: true},
		{name: "single letter tld", input: "john@example.c", wantErr: true},
		{name: "empty passes through", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Email(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ErrInvalidEmailFormat, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got, "email must be returned unchanged")
		})
	}
}

func TestZipcode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "us zip", input: "12345"},
		{name: "zip plus four", input: "12345-6789"},
		{name: "uk postcode", input: "SW1A 1AA"},
		{name: "minimum length", input: "123"},
		{name: "too short", input: "12", wantErr: true},
		{name: "too long", input: "12345678901", wantErr: true},
		{name: "illegal characters", input: "12@45", wantErr: true},
		{name: "empty passes through", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Zipcode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ErrInvalidZipcodeFormat, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
		})
	}
}
