package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/caxa-dev/doc-manager/backend/internal/config"
	"github.com/caxa-dev/doc-manager/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

// Tiêu đề và template tương ứng với từng loại mail mà API đẩy vào hàng đợi.
var mailTemplates = map[string]struct {
	Subject  string
	Template string
}{
	"create_user": {
		Subject:  "Hệ thống quản lý văn bản - Thông tin tài khoản",
		Template: "./templates/new_account_email.html",
	},
	"reset_password": {
		Subject:  "Hệ thống quản lý văn bản - Đặt lại mật khẩu",
		Template: "./templates/reset_password_otp_email.html",
	},
	"change_email": {
		Subject:  "Hệ thống quản lý văn bản - Đổi email",
		Template: "./templates/change_email_email.html",
	},
	"task_assigned": {
		Subject:  "Hệ thống quản lý văn bản - Công việc mới",
		Template: "./templates/task_assigned_email.html",
	},
}

func main() {
	/**********************************************
	 * Tạo logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * Nạp cấu hình
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("không nạp được cấu hình", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * Tạo client mail
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("không tạo được client mail", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// Kiểm tra kết nối tới máy chủ mail
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("không kết nối được máy chủ mail", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * Kết nối RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("không kết nối được RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("không mở được channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"notification_queue", // tên hàng đợi
		true,                 // durable
		false,                // không tự xóa để hàng đợi còn đó khi chưa có consumer
		false,                // không độc quyền
		false,                // chờ RabbitMQ xác nhận hàng đợi đã được tạo
		nil,                  // tham số bổ sung
	)
	if err != nil {
		logger.Error("không khai báo được hàng đợi", slog.String("error", err.Error()))
		return
	}

	// Bắt CTRL+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name, // hàng đợi
		"",     // để RabbitMQ tự cấp định danh consumer
		false,  // không tự ack
		false,  // không độc quyền
		false,  // no-local, RabbitMQ không hỗ trợ nên phải là false
		false,  // chờ RabbitMQ phản hồi
		nil,    // tham số bổ sung
	)
	if err != nil {
		logger.Error("không tiêu thụ được hàng đợi", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Context để dừng goroutine xử lý
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("nhận được tin nhắn", slog.String("message", string(msg.Body)))

				mailMessage := domain.MailMessage{}
				if err := json.Unmarshal(msg.Body, &mailMessage); err != nil {
					logger.Error("giải mã tin nhắn mail thất bại", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				spec, ok := mailTemplates[mailMessage.Type]
				if !ok {
					logger.Error("loại mail không được hỗ trợ", slog.String("type", mailMessage.Type))
					_ = msg.Nack(false, false)
					continue
				}

				m := mail.NewMsg()
				if err := m.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("không đặt được người gửi", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(mailMessage.To); err != nil {
					logger.Error("không đặt được người nhận", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				tmpl, err := template.ParseFiles(spec.Template)
				if err != nil {
					logger.Error("không parse được template mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
					logger.Error("không đặt được nội dung mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				m.Subject(spec.Subject)

				if err := client.DialAndSend(m); err != nil {
					logger.Error("gửi mail thất bại", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // đưa tin nhắn trở lại hàng đợi
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("đang chờ tin nhắn... (nhấn CTRL+C để thoát)")
	<-sigChan

	slog.Info("đang tắt notifier...")
	cancel()
	wg.Wait()
	slog.Info("notifier đã tắt thành công")
}
