package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCPF(t *testing.T) {
	valid := []string{
		"111.222.333-44",
		"000.000.000-00",
	}
	for _, cpf := range valid {
		assert.True(t, ValidCPF(cpf), cpf)
	}

	invalid := []string{
		"11122233344",
		"111.222.333-4",
		"111.222.33-444",
		"abc.def.ghi-jk",
		"111.222.333-445",
		"",
	}
	for _, cpf := range invalid {
		assert.False(t, ValidCPF(cpf), cpf)
	}
}
