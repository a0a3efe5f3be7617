package domain

import (
	"time"
)

type Role string

const (
	RoleSecretary  Role = "Văn thư"
	RoleTeamLeader Role = "Trưởng Công An Xã"
	RoleDeputy     Role = "Phó Công An Xã"
	RoleOfficer    Role = "Cán bộ"
	RoleAdmin      Role = "Quản trị viên"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
