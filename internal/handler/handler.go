package handler

import (
	"github.com/caxa-dev/doc-manager/backend/internal/config"
	"github.com/caxa-dev/doc-manager/backend/internal/domain"
	"github.com/caxa-dev/doc-manager/backend/internal/repository"
	"github.com/caxa-dev/doc-manager/backend/internal/workflow"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/vi"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	vi_translations "github.com/go-playground/validator/v10/translations/vi"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	engine      *workflow.Engine
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	vi := vi.New()
	uni := ut.New(vi, vi)
	trans, _ := uni.GetTranslator("vi")
	if err := vi_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		engine:      workflow.NewEngine(repo.TaskStore(), repo.HistoryStore(), repo.UserDirectory()),
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

var configRoles = []domain.Role{domain.RoleSecretary, domain.RoleAdmin}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// Xác thực
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// Các API dưới đây bắt buộc phải đăng nhập
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(h.myInfo)
			r.With(h.RequiredRole(configRoles)).Post("/", h.CreateTask)
			r.Get("/", h.GetTasks)
			r.Get("/eligible-assignees", h.GetEligibleAssignees)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.task)
				r.Get("/", h.GetTask)
				r.Get("/history", h.GetTaskHistory)
				r.Post("/assign", h.AssignTask)
				r.Post("/delegate", h.DelegateTask)
				r.Post("/forward", h.ForwardTask)
				r.Post("/submit-for-review", h.SubmitTaskForReview)
				r.Post("/review/approve", h.ApproveTask)
				r.Post("/review/reject", h.RejectTask)
				r.Patch("/", h.EditTask)
				r.Delete("/", h.DeleteTask)
				r.Route("/outgoing-documents", func(r chi.Router) {
					r.Get("/", h.GetTaskOutgoingDocuments)
					r.Post("/", h.LinkTaskToOutgoingDocument)
					r.Delete("/{documentID}", h.UnlinkTaskFromOutgoingDocument)
				})
			})
		})

		r.Route("/incoming-documents", func(r chi.Router) {
			r.With(h.RequiredRole(configRoles)).Post("/", h.CreateIncomingDocument)
			r.Get("/", h.GetAllIncomingDocuments)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.incomingDocument)
				r.Get("/", h.GetIncomingDocument)
				r.With(h.RequiredRole(configRoles)).Patch("/", h.UpdateIncomingDocument)
				r.With(h.RequiredRole(configRoles)).Delete("/", h.DeleteIncomingDocument)
			})
		})

		r.Route("/outgoing-documents", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.CreateOutgoingDocument)
			r.Get("/", h.GetAllOutgoingDocuments)
			r.Get("/eligible-drafters", h.GetEligibleDrafters)
			r.Get("/eligible-approvers", h.GetEligibleApprovers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.outgoingDocument)
				r.Get("/", h.GetOutgoingDocument)
				r.Patch("/", h.UpdateOutgoingDocument)
				r.Patch("/approval-status", h.UpdateOutgoingDocumentApprovalStatus)
				r.Delete("/", h.DeleteOutgoingDocument)
			})
		})

		r.Route("/document-types", func(r chi.Router) {
			r.With(h.RequiredRole(configRoles)).Post("/", h.CreateDocumentType)
			r.Get("/", h.GetAllDocumentTypes)
			r.With(h.RequiredRole(configRoles)).Patch("/{id}", h.UpdateDocumentType)
			r.With(h.RequiredRole(configRoles)).Delete("/{id}", h.DeleteDocumentType)
		})

		r.Route("/issuing-units", func(r chi.Router) {
			r.With(h.RequiredRole(configRoles)).Post("/", h.CreateIssuingUnit)
			r.Get("/", h.GetAllIssuingUnits)
			r.With(h.RequiredRole(configRoles)).Patch("/{id}", h.UpdateIssuingUnit)
			r.With(h.RequiredRole(configRoles)).Delete("/{id}", h.DeleteIssuingUnit)
		})

		r.Route("/receiving-units", func(r chi.Router) {
			r.With(h.RequiredRole(configRoles)).Post("/", h.CreateReceivingUnit)
			r.Get("/", h.GetAllReceivingUnits)
			r.With(h.RequiredRole(configRoles)).Patch("/{id}", h.UpdateReceivingUnit)
			r.With(h.RequiredRole(configRoles)).Delete("/{id}", h.DeleteReceivingUnit)
		})
	})
}
