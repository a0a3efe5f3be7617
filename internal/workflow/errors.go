package workflow

import (
	"fmt"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
)

type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindInactive          ErrorKind = "inactive"
	KindForbidden         ErrorKind = "forbidden"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindValidation        ErrorKind = "validation"
)

type ForbiddenReason string

const (
	ReasonRoleNotPermitted ForbiddenReason = "role_not_permitted"
	ReasonNotOwner         ForbiddenReason = "not_owner"
	ReasonSelfTarget       ForbiddenReason = "self_target"
	ReasonWrongStatus      ForbiddenReason = "wrong_status"
)

// Error là lỗi có kiểu của engine. Mỗi loại lỗi phân biệt được bằng Kind,
// lỗi Forbidden còn mang theo lý do cụ thể để client hiển thị thông báo
// chính xác.
type Error struct {
	Kind      ErrorKind
	Reason    ForbiddenReason   // chỉ dùng khi Kind == KindForbidden
	Current   domain.TaskStatus // chỉ dùng khi Kind == KindInvalidTransition
	Attempted Operation         // chỉ dùng khi Kind == KindInvalidTransition
	Message   string
}

func (e *Error) Error() string {
	return e.Message
}

func notFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func inactive(message string) *Error {
	return &Error{Kind: KindInactive, Message: message}
}

func forbidden(reason ForbiddenReason, message string) *Error {
	return &Error{Kind: KindForbidden, Reason: reason, Message: message}
}

func invalidTransition(current domain.TaskStatus, attempted Operation) *Error {
	return &Error{
		Kind:      KindInvalidTransition,
		Current:   current,
		Attempted: attempted,
		Message:   fmt.Sprintf("không thể thực hiện thao tác %s khi công việc đang ở trạng thái %q", attempted, current),
	}
}

func validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}
