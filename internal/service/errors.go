package service

import (
	"errors"

	"iDrone/internal/apperr"

	"gorm.io/gorm"
)

// notFoundOr 没找到记录翻译成404，其余一律是存储错误
func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(message)
	}
	return apperr.Storage(err)
}
