package utils

import (
	"math/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Bỏ dấu tiếng Việt để tạo tên đăng nhập chỉ gồm chữ cái ASCII.
// Chữ Đ/đ không phân rã được bằng NFD nên phải thay thủ công.
func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	result = strings.ReplaceAll(result, "Đ", "D")
	result = strings.ReplaceAll(result, "đ", "d")
	return result
}

// Tạo tên đăng nhập từ họ tên: lấy tên riêng đầy đủ, các từ còn lại
// lấy chữ cái đầu, kèm vài chữ số ngẫu nhiên để tránh trùng.
// Ví dụ: "Nguyễn Văn An" -> "annv42".
func GenerateUsernameFromFullName(fullName string) string {
	words := strings.Fields(removeDiacritics(strings.ToLower(fullName)))
	if len(words) == 0 {
		return GenerateRandomID(6, 2)
	}

	username := words[len(words)-1]
	for _, word := range words[:len(words)-1] {
		username += word[:1]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}
