package utils

import "unicode"

// remove qualquer coisa que não seja dígito
func onlyDigits(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

func SanitizeCNPJ(s string) string { return onlyDigits(s) }

// ValidateCNPJ confere tamanho, rejeita sequências repetidas e valida os dois dígitos verificadores.
func ValidateCNPJ(cnpj string) bool {
	if len(cnpj) != 14 || allSame(cnpj) || !isDigits(cnpj) {
		return false
	}
	w1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	w2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	return checkDigit(cnpj[:12], w1) == int(cnpj[12]-'0') &&
		checkDigit(cnpj[:13], w2) == int(cnpj[13]-'0')
}

func checkDigit(s string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(s[i]-'0') * w
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
