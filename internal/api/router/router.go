package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rafael7ms/operations-db/config"
	"github.com/rafael7ms/operations-db/internal/api/handler"
	"github.com/rafael7ms/operations-db/internal/api/middleware"
	"github.com/rafael7ms/operations-db/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 员工模块
		employees := v1.Group("/employees")
		{
			employees.POST("", h.Employee.Create)
			employees.GET("", h.Employee.List)
			employees.GET("/:id", h.Employee.Get)
			employees.PUT("/:id", h.Employee.Update)
			employees.DELETE("/:id", h.Employee.Archive)
			employees.GET("/:id/points", h.Reward.Balance)
			employees.GET("/:id/rewards", h.Reward.History)
		}

		// 排班模块
		schedules := v1.Group("/schedules")
		{
			schedules.POST("", h.Schedule.Create)
			schedules.GET("", h.Schedule.List)
			schedules.GET("/export/ics", h.Schedule.ExportICS)
			schedules.DELETE("/:id", h.Schedule.Delete)
		}

		// 考勤模块
		attendances := v1.Group("/attendances")
		{
			attendances.POST("", h.Attendance.Upsert)
			attendances.GET("", h.Attendance.List)
			attendances.PUT("/:employee_id/:date", h.Attendance.Update)
		}

		// 请假模块
		leaves := v1.Group("/leaves")
		{
			leaves.POST("", h.Leave.Create)
			leaves.GET("", h.Leave.List)
			leaves.POST("/:id/approve", h.Leave.Approve)
			leaves.POST("/:id/deny", h.Leave.Deny)
		}

		// 例外记录模块
		exceptions := v1.Group("/exceptions")
		{
			exceptions.POST("", h.Exception.Create)
			exceptions.GET("", h.Exception.List)
			exceptions.POST("/:id/process", h.Exception.Process)
		}

		// 积分模块
		rewards := v1.Group("/rewards")
		{
			rewards.POST("", h.Reward.Award)
			rewards.POST("/redeem", h.Reward.Redeem)
		}
		rewardReasons := v1.Group("/reward-reasons")
		{
			rewardReasons.POST("", h.Reward.CreateReason)
			rewardReasons.GET("", h.Reward.ListReasons)
		}

		// 下拉选项模块
		options := v1.Group("/options")
		{
			options.GET("", h.Option.ListAll)
			options.POST("", h.Option.Create)
			options.PUT("/:id", h.Option.Update)
			options.GET("/:category", h.Option.List)
		}

		// 批量导入模块（限制请求体大小并做频控，防止大文件拖垮服务）
		imports := v1.Group("/import")
		imports.Use(middleware.BodyLimit(cfg.Upload.MaxFileBytes))
		imports.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			imports.POST("/employees", h.Import.ImportEmployees)
			imports.POST("/schedules", h.Import.ImportSchedules)
			imports.POST("/attendances", h.Import.ImportAttendances)
			imports.POST("/exceptions", h.Import.ImportExceptions)
			imports.GET("/templates/:entity", h.Import.Template)
		}

		// 归档模块
		archive := v1.Group("/archive")
		{
			archive.POST("/run", h.Archive.Run)
		}
	}

	return r
}
