package utils

func SanitizeCPF(s string) string { return onlyDigits(s) }

func ValidateCPF(cpf string) bool {
	if len(cpf) != 11 || allSame(cpf) || !isDigits(cpf) {
		return false
	}
	w1 := []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	w2 := []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
	return checkDigit(cpf[:9], w1) == int(cpf[9]-'0') &&
		checkDigit(cpf[:10], w2) == int(cpf[10]-'0')
}
