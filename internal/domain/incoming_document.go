package domain

import "time"

type IncomingDocument struct {
	ID             int64     `json:"id"`
	ArrivalNumber  int32     `json:"arrivalNumber"`
	ArrivalDate    time.Time `json:"arrivalDate"`
	OriginalNumber string    `json:"originalNumber"`
	DocumentDate   time.Time `json:"documentDate"`
	DocumentTypeID int64     `json:"documentTypeID"`
	IssuingUnitID  int64     `json:"issuingUnitID"`
	Summary        string    `json:"summary"`
	InternalNotes  string    `json:"internalNotes"`
	CreatedByID    int64     `json:"createdByID"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}

// DocumentType, IssuingUnit và ReceivingUnit là các thực thể cấu hình, chỉ
// Văn thư hoặc Quản trị viên mới được phép chỉnh sửa.
type DocumentType struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}

type IssuingUnit struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}

type ReceivingUnit struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}
