package main

import (
	"time"

	"iDrone/internal/config"
	"iDrone/internal/data"
	"iDrone/internal/handler"
	"iDrone/internal/model"
	"iDrone/internal/mq"
	"iDrone/internal/repository"
	"iDrone/internal/router"
	"iDrone/internal/service"
	"iDrone/internal/session"
	"iDrone/internal/upload"
	"iDrone/pkg/logger"
	"iDrone/pkg/rabbitmq"
	"iDrone/pkg/redis"
	"iDrone/pkg/wechat"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// 加载配置，再按配置初始化logger
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("配置加载失败: %v", err)
	}
	logger.InitLogger(cfg.Log.ToLoggerOptions())
	gin.SetMode(cfg.Server.Mode)

	// 数据源名称，用户名:密码@网络协议(地址:端口号)/数据库名?charset=字符集&parseTime=是否解析时间&loc=时区
	// TranslateError 把 1062 之类的驱动错误翻译成 gorm.ErrDuplicatedKey
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Log.Fatalf("无法连接到数据库: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Log.Fatalf("获取数据库连接池失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)
	logger.Log.Info("数据库连接成功")

	// db.AutoMigrate(),没有这个表就创建,没有属性列则创建列,没有约束则增加约束;不会主动删除和修改
	if err := db.AutoMigrate(model.All()...); err != nil {
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}
	logger.Log.Info("数据库迁移成功")

	// 初始化Redis
	redisClient, err := redis.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Log.Fatalf("无法连接到Redis: %v", err)
	}
	defer redisClient.Close()
	logger.Log.Info("Redis连接成功")

	// RabbitMQ是可选的，未启用时订单消息直接丢弃
	publisher := mq.NewNopPublisher()
	if cfg.RabbitMQ.Enabled {
		rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Log.Fatalf("无法连接到RabbitMQ: %v", err)
		}
		defer rabbitMQConn.Close() // 确保程序退出时关闭连接
		if err := rabbitmq.DeclareQueue(rabbitMQConn, mq.QueueOrderCreated); err != nil {
			logger.Log.Fatalf("队列声明失败: %v", err)
		}
		publisher = mq.NewPublisher(rabbitMQConn)
		logger.Log.Info("RabbitMQ连接成功")
	}

	userRepo := repository.NewUserRepository(db)
	cartRepo := repository.NewCartRepository(db)
	goodsRepo := repository.NewGoodsRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	videoRepo := repository.NewVideoRepository(db, redisClient)
	sessionRepo := repository.NewSessionRepository(redisClient, cfg.Session.TTL())

	uow := data.NewUnitOfWork(db, userRepo, cartRepo, goodsRepo, orderRepo)
	issuer := session.NewIssuer(cfg.Session.Secret, cfg.Session.TTL())
	wechatClient := wechat.NewClient(wechat.Config{
		AppID:            cfg.WeChat.AppID,
		AppSecret:        cfg.WeChat.AppSecret,
		AuthorizationURL: cfg.WeChat.AuthorizationURL,
		Timeout:          time.Duration(cfg.WeChat.TimeoutSeconds) * time.Second,
	})

	userService := service.NewUserService(userRepo, sessionRepo, uow, issuer, wechatClient)
	adminService := service.NewAdminService(cfg.Admin.Username, cfg.Admin.PasswordHash, sessionRepo, issuer)
	cartService := service.NewCartService(cartRepo)
	goodsService := service.NewGoodsService(goodsRepo)
	orderService := service.NewOrderService(orderRepo, uow, publisher)
	videoService := service.NewVideoService(videoRepo)

	up := cfg.Upload
	perPage := cfg.Server.PerPage
	handlers := router.Handlers{
		User:  handler.NewUserHandler(userService, uploadTarget("avatar", up.Avatar, up.ImageAllowed)),
		Admin: handler.NewAdminHandler(adminService),
		Cart:  handler.NewCartHandler(cartService),
		Goods: handler.NewGoodsHandler(goodsService, handler.GoodsUploads{
			Cover:      uploadTarget("goods_cover", up.GoodsCover, up.ImageAllowed),
			Preview:    uploadTarget("goods_preview", up.GoodsPreview, up.ImageAllowed),
			BriefImage: uploadTarget("goods_brief_image", up.GoodsBriefImage, up.ImageAllowed),
			BriefDir:   up.BriefDir,
		}, perPage),
		Order: handler.NewOrderHandler(orderService, perPage),
		Video: handler.NewVideoHandler(videoService,
			uploadTarget("video", up.Video, up.VideoAllowed),
			uploadTarget("video_cover", up.VideoCover, up.ImageAllowed),
			perPage),
	}

	r := router.SetupRouter(handlers, issuer, sessionRepo, cfg.Server.PublicDir)
	logger.Log.Printf("服务器将在: %s端口启动", cfg.Server.Port)

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Log.Fatalf("服务器启动失败: %v", err)
	}
}

func uploadTarget(name string, t config.UploadTarget, allowed []string) upload.Target {
	return upload.Target{Name: name, Dir: t.Dir, AllowedExt: allowed, MaxSize: t.MaxSize}
}
