package dto

import "iDrone/internal/model"

// UserInfo 是在DTO中使用的、简化的用户公开信息
type UserInfo struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// UserResponse 注册返回的完整用户信息
type UserResponse struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	OpenID   string `json:"openid"`
	UnionID  string `json:"unionid,omitempty"`
	CartID   string `json:"cart_id,omitempty"`
}

func ToUserInfo(user *model.User) UserInfo {
	return UserInfo{ID: user.ID, Nickname: user.Nickname, Avatar: user.Avatar}
}

func ToUserResponse(user *model.User) UserResponse {
	resp := UserResponse{
		ID:       user.ID,
		Nickname: user.Nickname,
		Avatar:   user.Avatar,
		OpenID:   user.OpenIDValue(),
		UnionID:  user.UnionIDValue(),
	}
	if user.Cart != nil {
		resp.CartID = user.Cart.ID
	}
	return resp
}
