package repository

import (
	"gorm.io/gorm"

	"github.com/jose-c-campos/usc-scheduler/pkg/redis"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Catalog CatalogRepository
}

// NewRepository 创建 Repository 聚合
// rdb 可为 nil（评分查询退化为仅查库）
func NewRepository(db *gorm.DB, semester string, rdb *redis.Client) *Repository {
	return &Repository{
		Catalog: NewCatalogRepo(db, semester, rdb),
	}
}
