package model

type User struct {
	BaseModel        // 包括 ID, CreatedAt, UpdatedAt
	Nickname  string `gorm:"type:varchar(32);index"`
	Avatar    string `gorm:"type:varchar(1024)"`
	// 指针的零值是nil，写入数据库就是NULL，多个NULL不会触发唯一索引冲突
	OpenID  *string `gorm:"column:openid;type:varchar(255);uniqueIndex"`
	UnionID *string `gorm:"column:unionid;type:varchar(255);uniqueIndex"`

	Cart *Cart `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

// OpenIDValue 返回openid，未绑定时为空串
func (u *User) OpenIDValue() string {
	if u.OpenID == nil {
		return ""
	}
	return *u.OpenID
}

// UnionIDValue 返回unionid，未绑定时为空串
func (u *User) UnionIDValue() string {
	if u.UnionID == nil {
		return ""
	}
	return *u.UnionID
}
