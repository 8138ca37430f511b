package repository

import (
	"errors"
	"math"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// DefaultPerPage 每页默认条目数
const DefaultPerPage = 24

// Paginate 分页scope：page从1开始，非法值回退到第1页；perPage非法回退到默认值
// 页码大到offset溢出时一定超出末页，直接返回空结果
func Paginate(page, perPage int) func(db *gorm.DB) *gorm.DB {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page-1 > math.MaxInt/perPage {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("1 = 0")
		}
	}
	offset := (page - 1) * perPage
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(perPage)
	}
}

// IsDuplicateKey 判断是否为唯一键冲突：MySQL 1062、gorm翻译后的ErrDuplicatedKey、SQLite的UNIQUE约束
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// likeEscape 作为 LIKE ... ESCAPE 的转义符，MySQL 和 SQLite 都支持
const likeEscape = "!"

// containsPattern 把关键字转成 %keyword% 形式，关键字里的通配符按字面量匹配
func containsPattern(keyword string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(keyword) + "%"
}
