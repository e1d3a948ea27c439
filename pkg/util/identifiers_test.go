package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPAN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"Valid PAN", "ABCDE1234F", true},
		{"Lowercase letters", "abcde1234f", false},
		{"Too short", "ABCDE123F", false},
		{"Too long", "ABCDE12345F", false},
		{"Digits in wrong place", "AB1DE2345F", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidPAN(tt.input))
		})
	}
}

func TestIsValidIFSC(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"Valid IFSC", "HDFC0001234", true},
		{"Valid alphanumeric branch", "SBIN0A12B34", true},
		{"Fifth character not zero", "HDFC1001234", false},
		{"Too short", "HDFC000123", false},
		{"Lowercase bank code", "hdfc0001234", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidIFSC(tt.input))
		})
	}
}

func TestIsValidAadhaar(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"Valid Aadhaar", "234567890123", true},
		{"Starts with zero", "034567890123", false},
		{"Starts with one", "134567890123", false},
		{"Too short", "23456789012", false},
		{"Contains letters", "2345678901AB", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidAadhaar(tt.input))
		})
	}
}

func TestIsValidGSTIN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"Valid GSTIN", "27ABCDE1234F1Z5", true},
		{"Missing Z at position 14", "27ABCDE1234F1X5", false},
		{"Too short", "27ABCDE1234F1Z", false},
		{"Lowercase", "27abcde1234f1z5", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidGSTIN(tt.input))
		})
	}
}

func TestIsValidPincode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"Valid pincode", "560001", true},
		{"Starts with zero", "060001", false},
		{"Too short", "56001", false},
		{"Too long", "5600012", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidPincode(tt.input))
		})
	}
}
