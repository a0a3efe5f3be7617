package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveDiacritics(t *testing.T) {
	assert.Equal(t, "Nguyen Van An", removeDiacritics("Nguyễn Văn An"))
	assert.Equal(t, "Dang Duc Thang", removeDiacritics("Đặng Đức Thắng"))
	assert.Equal(t, "Tran Thi Huong", removeDiacritics("Trần Thị Hương"))
}

func TestGenerateUsernameFromFullName(t *testing.T) {
	username := GenerateUsernameFromFullName("Nguyễn Văn An")
	assert.True(t, strings.HasPrefix(username, "annv"), "username = %q", username)

	username = GenerateUsernameFromFullName("Đào Phúc")
	assert.True(t, strings.HasPrefix(username, "phucd"), "username = %q", username)

	for _, r := range username {
		assert.True(t, r >= 'a' && r <= 'z' || r >= '0' && r <= '9', "ký tự ngoài ASCII: %q", r)
	}
}
