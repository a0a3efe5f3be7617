package handler

type ContextKey string

var (
	RoleCtxKey          ContextKey = "role"
	SubCtxKey           ContextKey = "sub"
	MyInfoCtx           ContextKey = "myInfo"
	UserInfoCtx         ContextKey = "userInfo"
	TaskCtx             ContextKey = "task"
	IncomingDocumentCtx ContextKey = "incomingDocument"
	OutgoingDocumentCtx ContextKey = "outgoingDocument"
)
