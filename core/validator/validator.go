package validator

import (
	"strconv"
	"strings"
)

const maxHostnameLength = 63

// IsValidIPv4Literal - проверка IPv4 адреса в точечной записи.
// Ведущие нули допускаются, пробелы по краям обрезаются.
func IsValidIPv4Literal(s string) bool {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 4 {
		return false
	}

	for _, part := range parts {
		if part == "" || !isDigits(part) {
			return false
		}
		n, err := strconv.Atoi(part)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}

// IsValidHostname - имя хоста: 1-63 символа из [A-Za-z0-9._-]
func IsValidHostname(s string) bool {
	if len(s) == 0 || len(s) > maxHostnameLength {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}

// IsValidTarget - единственная проверка перед запуском процесса
// или построением сетевого пути \\<target>\c$.
// Строка из цифр и точек считается адресом и как имя хоста не принимается.
func IsValidTarget(s string) bool {
	if IsValidIPv4Literal(s) {
		return true
	}
	return IsValidHostname(s) && !looksNumeric(s)
}

// NormalizeTarget убирает пробелы вокруг IPv4 адреса.
// Остальные значения возвращаются как есть.
func NormalizeTarget(s string) string {
	if IsValidIPv4Literal(s) {
		return strings.TrimSpace(s)
	}
	return s
}

// looksNumeric - только цифры и точки, хотя бы одна точка
func looksNumeric(s string) bool {
	return strings.Contains(s, ".") && strings.Trim(s, "0123456789.") == ""
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
