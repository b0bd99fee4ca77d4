package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Jon Jones", "jon jones"},
		{"José Aldo", "jose aldo"},
		{"  José   Aldo  ", "jose aldo"},
		{"Jiří Procházka", "jiri prochazka"},
		{"KHABIB NURMAGOMEDOV", "khabib nurmagomedov"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeName(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	for _, name := range []string{"José Aldo", "Weili Zhang", "Ciryl Gane"} {
		once := NormalizeName(name)
		assert.Equal(t, once, NormalizeName(once))
	}
}
