package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
	"github.com/caxa-dev/doc-manager/backend/internal/repository"
	"github.com/caxa-dev/doc-manager/backend/internal/utils"
	"github.com/caxa-dev/doc-manager/backend/internal/workflow"
	"golang.org/x/crypto/bcrypt"
)

var documentTypes = []string{"Công văn", "Quyết định", "Kế hoạch", "Báo cáo", "Thông báo", "Chỉ thị"}

var issuingUnits = []string{
	"UBND huyện",
	"Công an tỉnh",
	"Công an huyện",
	"UBND xã",
	"Phòng Tư pháp",
}

var receivingUnits = []string{
	"Công an xã",
	"Ban Chỉ huy Quân sự xã",
	"Văn phòng UBND xã",
}

var sampleSummaries = []string{
	"Về việc tăng cường công tác đảm bảo an ninh trật tự dịp lễ",
	"Triển khai kế hoạch phòng chống tội phạm trên địa bàn",
	"Báo cáo tình hình an ninh trật tự tháng",
	"Về việc rà soát nhân khẩu tạm trú tạm vắng",
	"Kế hoạch tuần tra kiểm soát địa bàn",
	"Thông báo lịch trực ban công an xã",
}

// SeedConfigEntities chèn các loại văn bản và đơn vị mẫu. Chạy lại nhiều lần
// sẽ tạo bản ghi trùng tên, chỉ dùng trên cơ sở dữ liệu trống.
func SeedConfigEntities(ctx context.Context, repo *repository.Repository) {
	for _, name := range documentTypes {
		dt := &domain.DocumentType{Name: name}
		if err := repo.CreateDocumentType(ctx, dt); err != nil {
			slog.Error("không chèn được loại văn bản", "name", name, "error", err)
		}
	}
	for _, name := range issuingUnits {
		iu := &domain.IssuingUnit{Name: name}
		if err := repo.CreateIssuingUnit(ctx, iu); err != nil {
			slog.Error("không chèn được đơn vị ban hành", "name", name, "error", err)
		}
	}
	for _, name := range receivingUnits {
		ru := &domain.ReceivingUnit{Name: name}
		if err := repo.CreateReceivingUnit(ctx, ru); err != nil {
			slog.Error("không chèn được đơn vị nhận", "name", name, "error", err)
		}
	}
	slog.Info("chèn dữ liệu cấu hình thành công")
}

// SeedCoreUsers tạo mỗi vai trò nghiệp vụ một tài khoản với tên đăng nhập cố
// định, để có thể đăng nhập thử ngay sau khi seed.
func SeedCoreUsers(ctx context.Context, repo *repository.Repository, password string, emailDomain string) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("không băm được mật khẩu seed", "error", err)
		return
	}

	coreUsers := []*domain.User{
		{Username: "vanthu", FullName: "Nguyễn Thị Hạnh", Role: domain.RoleSecretary},
		{Username: "truongca", FullName: "Trần Văn Cường", Role: domain.RoleTeamLeader},
		{Username: "phoca", FullName: "Lê Minh Tuấn", Role: domain.RoleDeputy},
		{Username: "canbo", FullName: "Phạm Quốc Hùng", Role: domain.RoleOfficer},
	}

	cnt := 0
	for _, user := range coreUsers {
		user.PasswordHash = string(passwordHash)
		user.Email = user.Username + "@" + emailDomain
		user.IsActive = true
		if err := repo.CreateUser(ctx, user); err != nil {
			slog.Error("không chèn được người dùng", "username", user.Username, "error", err)
			continue
		}
		cnt++
	}

	slog.Info("chèn người dùng cốt lõi thành công", slog.Int("count", cnt))
}

// SeedRandomUsers chèn n người dùng với họ tên và vai trò ngẫu nhiên.
func SeedRandomUsers(ctx context.Context, repo *repository.Repository, n int, password string, emailDomain string) {
	cnt := 0
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(password, emailDomain)
		if err != nil {
			slog.Error("không sinh được người dùng ngẫu nhiên", slog.String("error", err.Error()))
			continue
		}

		if err := repo.CreateUser(ctx, user); err != nil {
			slog.Error("không chèn được người dùng", slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	slog.Info("chèn người dùng ngẫu nhiên thành công", slog.Int("count", cnt))
}

// SeedDocumentsAndTasks tạo văn bản đến và công việc mẫu, rồi dùng workflow
// engine để giao một phần công việc cho Trưởng Công An Xã như thao tác thật.
func SeedDocumentsAndTasks(ctx context.Context, repo *repository.Repository, n int) {
	secretary, err := repo.GetUserByUsername(ctx, "vanthu")
	if err != nil {
		slog.Error("không tìm thấy tài khoản văn thư, hãy seed người dùng trước", "error", err)
		return
	}
	leader, err := repo.GetUserByUsername(ctx, "truongca")
	if err != nil {
		slog.Error("không tìm thấy tài khoản trưởng công an xã, hãy seed người dùng trước", "error", err)
		return
	}

	types, err := repo.GetAllDocumentTypes(ctx, true)
	if err != nil || len(types) == 0 {
		slog.Error("không có loại văn bản nào, hãy seed dữ liệu cấu hình trước", "error", err)
		return
	}
	units, err := repo.GetAllIssuingUnits(ctx, true)
	if err != nil || len(units) == 0 {
		slog.Error("không có đơn vị ban hành nào, hãy seed dữ liệu cấu hình trước", "error", err)
		return
	}

	engine := workflow.NewEngine(repo.TaskStore(), repo.HistoryStore(), repo.UserDirectory())

	cnt := 0
	for i := 0; i < n; i++ {
		summary := sampleSummaries[rand.Intn(len(sampleSummaries))]

		doc := &domain.IncomingDocument{
			ArrivalDate:    time.Now().AddDate(0, 0, -rand.Intn(10)),
			OriginalNumber: fmt.Sprintf("%d/%s", rand.Intn(900)+100, "CV-UBND"),
			DocumentDate:   time.Now().AddDate(0, 0, -rand.Intn(15)),
			DocumentTypeID: types[rand.Intn(len(types))].ID,
			IssuingUnitID:  units[rand.Intn(len(units))].ID,
			Summary:        summary,
			CreatedByID:    secretary.ID,
		}
		if err := repo.CreateIncomingDocument(ctx, doc); err != nil {
			slog.Error("không chèn được văn bản đến", slog.String("error", err.Error()))
			continue
		}

		deadline := utils.GenerateRandomDeadline()
		task := &domain.Task{
			Description:        "Xử lý văn bản: " + summary,
			Status:             domain.StatusNotStarted,
			CreatedByID:        secretary.ID,
			IncomingDocumentID: &doc.ID,
			Deadline:           &deadline,
		}
		if err := repo.CreateTask(ctx, task, "Khởi tạo công việc"); err != nil {
			slog.Error("không chèn được công việc", slog.String("error", err.Error()))
			continue
		}

		// Giao khoảng một nửa số công việc qua engine để có dữ liệu lịch sử
		if rand.Intn(2) == 0 {
			leaderID := leader.ID
			if _, err := engine.Execute(ctx, workflow.Request{
				Operation:    workflow.OpAssign,
				ActorID:      secretary.ID,
				TaskID:       task.ID,
				TargetUserID: &leaderID,
				Note:         "Giao việc khi khởi tạo dữ liệu mẫu",
			}); err != nil {
				slog.Error("không giao được công việc mẫu", slog.String("error", err.Error()))
			}
		}

		cnt++
	}

	slog.Info("chèn văn bản và công việc mẫu thành công", slog.Int("count", cnt))
}
