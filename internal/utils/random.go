package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"Nguyễn", "Trần", "Lê", "Phạm", "Hoàng", "Huỳnh", "Phan", "Vũ", "Võ", "Đặng",
	"Bùi", "Đỗ", "Hồ", "Ngô", "Dương", "Lý", "Đinh", "Trịnh", "Đào", "Lương",
}
var commonMiddleNames = []string{
	"Văn", "Thị", "Hữu", "Đức", "Minh", "Quốc", "Xuân", "Ngọc", "Thanh", "Hồng",
}
var commonGivenNames = []string{
	"An", "Bình", "Cường", "Dũng", "Hà", "Hải", "Hạnh", "Hiếu", "Hùng", "Hương",
	"Khánh", "Lan", "Linh", "Long", "Mai", "Nam", "Nga", "Ngân", "Phong", "Phúc",
	"Quân", "Quang", "Sơn", "Thảo", "Thắng", "Trang", "Trung", "Tuấn", "Tùng", "Yến",
}

func GenerateRandomVietnameseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	middle := commonMiddleNames[rand.Intn(len(commonMiddleNames))]
	given := commonGivenNames[rand.Intn(len(commonGivenNames))]
	return surname + " " + middle + " " + given
}

var seedableRoles = []domain.Role{
	domain.RoleTeamLeader,
	domain.RoleDeputy,
	domain.RoleOfficer,
	domain.RoleSecretary,
}

func GenerateRandomRole() domain.Role {
	return seedableRoles[rand.Intn(len(seedableRoles))]
}

var digits = "0123456789"

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomVietnameseName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
		IsActive:     true,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

// Sinh một thời hạn ngẫu nhiên cho công việc mẫu, nằm trong khoảng
// từ 3 ngày trước đến 14 ngày sau thời điểm hiện tại để phủ đủ các
// mức độ khẩn cấp khi hiển thị.
func GenerateRandomDeadline() time.Time {
	offset := rand.Intn(18) - 3
	return time.Now().AddDate(0, 0, offset)
}
