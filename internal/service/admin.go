package service

import (
	"context"

	"iDrone/internal/apperr"
	"iDrone/internal/repository"
	"iDrone/internal/session"

	"golang.org/x/crypto/bcrypt"
)

type AdminService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type adminService struct {
	username     string
	passwordHash []byte
	sessions     repository.SessionRepository
	issuer       *session.Issuer
}

// passwordHash 为bcrypt哈希，为空时管理员登录永远失败
func NewAdminService(username, passwordHash string, sessions repository.SessionRepository, issuer *session.Issuer) AdminService {
	return &adminService{
		username:     username,
		passwordHash: []byte(passwordHash),
		sessions:     sessions,
		issuer:       issuer,
	}
}

// 管理员登录：1、比对用户名 2、bcrypt比对密码 3、签发token并写入 role=admin 的session
func (s *adminService) Login(ctx context.Context, username, password string) (string, error) {
	if len(s.passwordHash) == 0 || username != s.username {
		return "", apperr.Unauthorized("用户名或密码错误")
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", apperr.Unauthorized("用户名或密码错误")
	}

	token, err := s.issuer.Issue(username)
	if err != nil {
		return "", apperr.Storage(err)
	}
	err = s.sessions.Set(ctx, token, &session.Session{UserID: username, Role: session.RoleAdmin})
	if err != nil {
		return "", apperr.Storage(err)
	}
	return token, nil
}
