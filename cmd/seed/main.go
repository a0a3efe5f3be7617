package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/caxa-dev/doc-manager/backend/internal/config"
	"github.com/caxa-dev/doc-manager/backend/internal/repository"
	"github.com/caxa-dev/doc-manager/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "thao tác cần thực hiện (1: chèn dữ liệu cấu hình, 2: chèn người dùng cốt lõi, 3: chèn người dùng ngẫu nhiên, 4: chèn văn bản và công việc mẫu, 5: tất cả)")
	flag.IntVar(&n, "n", 5, "số bản ghi cần chèn")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Nạp cấu hình
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("không nạp được cấu hình", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Tạo pool kết nối cơ sở dữ liệu
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("không tạo được pool kết nối cơ sở dữ liệu", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open chỉ tạo pool chứ chưa kết nối thật, nên phải ping để kiểm tra
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("không kết nối được cơ sở dữ liệu", "error", err)
		return
	}

	// Tạo repository
	repo := repository.NewRepository(cfg, dbpool)

	seedCtx := context.Background()

	switch op {
	case 0:
		slog.Error("chưa chỉ định thao tác")
	case 1:
		seed.SeedConfigEntities(seedCtx, repo)
	case 2:
		seed.SeedCoreUsers(seedCtx, repo, cfg.Seed.User.Password, cfg.Email.UserDomain)
	case 3:
		if n <= 0 {
			slog.Error("số người dùng không hợp lệ")
			return
		}
		seed.SeedRandomUsers(seedCtx, repo, n, cfg.Seed.User.Password, cfg.Email.UserDomain)
	case 4:
		if n <= 0 {
			slog.Error("số bản ghi không hợp lệ")
			return
		}
		seed.SeedDocumentsAndTasks(seedCtx, repo, n)
	case 5:
		seed.SeedConfigEntities(seedCtx, repo)
		seed.SeedCoreUsers(seedCtx, repo, cfg.Seed.User.Password, cfg.Email.UserDomain)
		seed.SeedRandomUsers(seedCtx, repo, n, cfg.Seed.User.Password, cfg.Email.UserDomain)
		seed.SeedDocumentsAndTasks(seedCtx, repo, n)
	default:
		slog.Error("thao tác không hợp lệ")
	}
}
