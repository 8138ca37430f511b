// cmd/seeder/main.go

package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"iDrone/internal/config"
	"iDrone/internal/model"

	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	fmt.Println("🚀 开始填充测试数据...")

	// --- 1. 连接数据库 ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ 配置加载失败: %v", err)
	}
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ 无法连接到数据库: %v", err)
	}
	fmt.Println("✅ 数据库连接成功!")

	// --- 2. 清理旧数据 ---
	// 注意：这将删除所有数据！关联表要先删
	fmt.Println("🧹 正在清理旧数据...")
	db.Migrator().DropTable(&model.SaleRecord{}, &model.GoodsInOrder{}, &model.Order{}, &model.GoodsInCart{},
		&model.Video{}, &model.Goods{}, &model.GoodsCategory{}, &model.Cart{}, &model.User{})
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatalf("❌ 数据库迁移失败: %v", err)
	}
	fmt.Println("✅ 数据库迁移成功!")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- 3. 创建分类和商品 ---
	fmt.Println("🛒 正在创建分类和商品...")
	categories := make([]model.GoodsCategory, 0, 8)
	for i := 0; i < 8; i++ {
		category := model.GoodsCategory{Title: fmt.Sprintf("%s-%d", faker.Word(), i)}
		db.Create(&category)
		categories = append(categories, category)
	}
	goodsList := make([]model.Goods, 0, 200)
	for i := 0; i < 200; i++ {
		categoryID := categories[rng.Intn(len(categories))].ID
		goods := model.Goods{
			Title:      faker.Sentence(),
			Price:      decimal.New(int64(rng.Intn(100000)+100), -2),
			Sale:       rng.Intn(5000),
			Stock:      rng.Intn(1000),
			Freight:    decimal.New(int64(rng.Intn(2000)), -2),
			Image:      "cover.jpg",
			Previews:   "preview-1.jpg|preview-2.jpg",
			CategoryID: &categoryID,
		}
		db.Create(&goods)
		goodsList = append(goodsList, goods)
	}
	fmt.Printf("✅ 成功创建 %d 个分类, %d 个商品!\n", len(categories), len(goodsList))

	// --- 4. 创建用户和购物车 ---
	fmt.Println("👥 正在创建用户...")
	users := make([]model.User, 0, 100)
	for i := 0; i < 100; i++ {
		openid := faker.UUIDDigit()
		user := model.User{
			Nickname: faker.FirstName(),
			Avatar:   "avatar.jpg",
			OpenID:   &openid,
		}
		db.Create(&user)
		cart := model.Cart{UserID: user.ID}
		db.Create(&cart)

		// 随机往购物车里放几件商品，重复的商品什么都不做
		for j := 0; j < rng.Intn(5); j++ {
			item := model.GoodsInCart{CartID: cart.ID, GoodsID: goodsList[rng.Intn(len(goodsList))].ID, Amount: rng.Intn(3) + 1}
			db.Clauses(clause.OnConflict{DoNothing: true}).Create(&item)
		}
		users = append(users, user)
	}
	fmt.Printf("✅ 成功创建 %d 个用户!\n", len(users))

	// --- 5. 创建视频 ---
	fmt.Println("🎬 正在创建视频...")
	videoCount := 500
	for i := 0; i < videoCount; i++ {
		video := model.Video{
			// 从已创建的用户中，随机选择一个作为上传者
			UserID:   users[rng.Intn(len(users))].ID,
			Title:    faker.Sentence(),
			Source:   "video.mp4",
			Cover:    "cover.jpg",
			UploadAt: time.Now().Add(-time.Duration(rng.Intn(30*24)) * time.Hour),
		}
		db.Create(&video)
	}
	fmt.Printf("✅ 成功创建 %d 个视频!\n", videoCount)

	// --- 6. 管理员密码 ---
	// 把输出的哈希写进 ADMIN_PASSWORD_HASH
	if password := os.Getenv("SEED_ADMIN_PASSWORD"); password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("❌ 密码加密失败: %v", err)
		}
		fmt.Printf("🔑 ADMIN_PASSWORD_HASH=%s\n", hash)
	}

	fmt.Println("🎉🎉🎉 所有测试数据填充完毕! 🎉🎉🎉")
}
