package app

import (
	"database/sql"

	"go-gym/internal/attendance"
	"go-gym/internal/auth"
	"go-gym/internal/branch"
	"go-gym/internal/gymclass"
	"go-gym/internal/invoice"
	"go-gym/internal/member"
	"go-gym/internal/messaging/kafka"
	"go-gym/internal/payment"
	"go-gym/internal/plan"
	"go-gym/internal/policy"
	"go-gym/internal/salary"
	"go-gym/internal/shared/counter"
	"go-gym/internal/staff"
	"go-gym/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	branchRepo := branch.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	gymclassRepo := gymclass.NewRepository(gormDB)
	invoiceRepo := invoice.NewRepository(gormDB)
	memberRepo := member.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	paymentRepo := payment.NewRepository(gormDB)
	planRepo := plan.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- Authorization Core ---
	engine, err := policy.NewEngine()
	if err != nil {
		return err
	}

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo, attendance.NewRedisNonceGuard(rdb), rdb, logger)
	authService := auth.NewService(userRepo, logger)
	branchService := branch.NewService(db, branchRepo, logger)
	gymclassService := gymclass.NewService(db, gymclassRepo, logger)
	invoiceService := invoice.NewService(db, invoiceRepo, counterRepo, logger)
	memberService := member.NewServiceWithOutbox(db, memberRepo, counterRepo, outboxRepo, rdb, logger)
	paymentService := payment.NewServiceWithOutbox(db, paymentRepo, outboxRepo, logger)
	planService := plan.NewService(db, planRepo, rdb)
	salaryService := salary.NewService(db, salaryRepo)
	staffService := staff.NewService(db, staffRepo, counterRepo, logger)
	userService := user.NewService(userRepo)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	authHandler := auth.NewHandler(authService, logger)
	branchHandler := branch.NewHandler(branchService)
	gymclassHandler := gymclass.NewHandler(gymclassService)
	invoiceHandler := invoice.NewHandler(invoiceService)
	memberHandler := member.NewHandler(memberService)
	paymentHandler := payment.NewHandler(paymentService)
	planHandler := plan.NewHandler(planService)
	policyHandler := policy.NewHandler(engine)
	salaryHandler := salary.NewHandler(salaryService)
	staffHandler := staff.NewHandler(staffService)
	userHandler := user.NewHandler(userService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, engine, logger)
		branch.RegisterRoutes(api, branchHandler, engine)
		gymclass.RegisterRoutes(api, gymclassHandler, engine, logger)
		invoice.RegisterRoutes(api, invoiceHandler, engine, logger)
		member.RegisterRoutes(api, memberHandler, engine, logger)
		payment.RegisterRoutes(api, paymentHandler, engine, logger)
		plan.RegisterRoutes(api, planHandler, engine)
		policy.RegisterRoutes(api, policyHandler, engine)
		salary.RegisterRoutes(api, salaryHandler, engine, logger)
		staff.RegisterRoutes(api, staffHandler, engine, logger)
		user.RegisterRoutes(api, userHandler, engine, logger)
	}

	return nil
}
