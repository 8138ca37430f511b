package service

import (
	"context"
	"errors"
	"net/http"

	"iDrone/internal/apperr"
	"iDrone/internal/data"
	"iDrone/internal/model"
	"iDrone/internal/repository"
	"iDrone/internal/session"
	"iDrone/pkg/logger"
	"iDrone/pkg/wechat"
)

// IDType 登录时用哪个字段查用户
type IDType string

const (
	IDTypeID      IDType = "id"
	IDTypeOpenID  IDType = "openid"
	IDTypeUnionID IDType = "unionid"
)

// IdentityExchanger 用小程序登录code换取微信身份
type IdentityExchanger interface {
	Code2Session(ctx context.Context, code string) (*wechat.Session, error)
}

// LoginResult 登录成功返回给小程序的信息
type LoginResult struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Token    string `json:"token"`
}

// 用户服务接口：1、登录/注册 2、code换session登录 3、修改昵称和头像
type UserService interface {
	Login(ctx context.Context, id string, idType IDType) (*model.User, error)
	Register(ctx context.Context, openid, unionid string) (*model.User, error)
	LoginWithCode(ctx context.Context, code, previousToken string) (*LoginResult, error)
	ChangeNickname(ctx context.Context, id, nickname string) error
	ChangeAvatar(ctx context.Context, id, filename string) error
}

type userService struct {
	userRepo repository.UserRepository
	sessions repository.SessionRepository
	uow      data.UnitOfWork
	issuer   *session.Issuer
	exchange IdentityExchanger
}

func NewUserService(userRepo repository.UserRepository, sessions repository.SessionRepository, uow data.UnitOfWork,
	issuer *session.Issuer, exchange IdentityExchanger) UserService {
	return &userService{
		userRepo: userRepo,
		sessions: sessions,
		uow:      uow,
		issuer:   issuer,
		exchange: exchange,
	}
}

func (s *userService) Login(ctx context.Context, id string, idType IDType) (*model.User, error) {
	var (
		user *model.User
		err  error
	)
	switch idType {
	case IDTypeID:
		user, err = s.userRepo.FindByID(ctx, id)
	case IDTypeOpenID:
		user, err = s.userRepo.FindByOpenID(ctx, id)
	case IDTypeUnionID:
		user, err = s.userRepo.FindByUnionID(ctx, id)
	default:
		return nil, apperr.Invalid(map[string]string{"id_type": "不支持的登录方式"})
	}
	if err != nil {
		return nil, notFoundOr(err, "用户不存在")
	}
	return user, nil
}

// 注册：1、开启事务 2、插入用户 3、为用户创建空购物车，任一步失败整体回滚
func (s *userService) Register(ctx context.Context, openid, unionid string) (*model.User, error) {
	user := &model.User{}
	if openid != "" {
		user.OpenID = &openid
	}
	if unionid != "" {
		user.UnionID = &unionid
	}

	err := s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		if err := repos.UserRepo.Create(ctx, user); err != nil {
			return err
		}
		cart := &model.Cart{UserID: user.ID}
		if err := repos.CartRepo.Create(ctx, cart); err != nil {
			return err
		}
		user.Cart = cart
		return nil
	})
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return user, nil
}

// 登录：
// 1、删除调用方之前的session
// 2、用code从微信服务器获取openid，unionid和session_key
// 3、优先按unionid，否则按openid查找用户，不存在则注册
// 4、签发新token，把session写入Redis
func (s *userService) LoginWithCode(ctx context.Context, code, previousToken string) (*LoginResult, error) {
	if previousToken != "" {
		if err := s.sessions.Delete(ctx, previousToken); err != nil {
			return nil, apperr.Storage(err)
		}
	}

	wx, err := s.exchange.Code2Session(ctx, code)
	if err == nil && (wx == nil || wx.OpenID == "") {
		err = &wechat.IdentityError{}
	}
	if err != nil {
		return nil, exchangeError(err)
	}

	id, idType := wx.OpenID, IDTypeOpenID
	if wx.UnionID != "" {
		id, idType = wx.UnionID, IDTypeUnionID
	}
	logCtx := logger.Log.WithField("id_type", idType)

	user, err := s.Login(ctx, id, idType)
	if apperr.IsNotFound(err) {
		logCtx.Info("用户不存在，开始注册")
		user, err = s.Register(ctx, wx.OpenID, wx.UnionID)
	}
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	// 这里失败时，刚注册的用户不会回滚
	err = s.sessions.Set(ctx, token, &session.Session{
		UserID:     user.ID,
		OpenID:     user.OpenIDValue(),
		SessionKey: wx.SessionKey,
		Role:       session.RoleUser,
	})
	if err != nil {
		logCtx.WithError(err).WithField("user_id", user.ID).Error("session写入失败")
		return nil, apperr.Storage(err)
	}

	return &LoginResult{Nickname: user.Nickname, Avatar: user.Avatar, Token: token}, nil
}

// exchangeError 微信错误翻译：errcode响应按500透传响应体，非2xx按原状态码透传
// 响应缺少openid按502透传响应体，连接失败为502
func exchangeError(err error) error {
	var identityErr *wechat.IdentityError
	if errors.As(err, &identityErr) {
		return apperr.Upstream(http.StatusBadGateway, identityErr.Body)
	}
	var apiErr *wechat.APIError
	if errors.As(err, &apiErr) {
		return apperr.Upstream(http.StatusInternalServerError, apiErr.Body)
	}
	var httpErr *wechat.HTTPError
	if errors.As(err, &httpErr) {
		return apperr.Upstream(httpErr.StatusCode, httpErr.Body)
	}
	return apperr.Unavailable("微信服务不可用", err)
}

func (s *userService) ChangeNickname(ctx context.Context, id, nickname string) error {
	rows, err := s.userRepo.UpdateNickname(ctx, id, nickname)
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.NotFound("用户不存在")
	}
	return nil
}

func (s *userService) ChangeAvatar(ctx context.Context, id, filename string) error {
	rows, err := s.userRepo.UpdateAvatar(ctx, id, filename)
	if err != nil {
		return apperr.Storage(err)
	}
	if rows == 0 {
		return apperr.NotFound("用户不存在")
	}
	return nil
}
