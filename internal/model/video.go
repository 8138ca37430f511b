package model

import "time"

// Video结构：标题、视频地址、封面地址、上传时间、上传者
type Video struct {
	BaseModel
	Title    string    `gorm:"type:varchar(255);not null;index"`
	Source   string    `gorm:"type:text;not null"` // 视频文件名/地址
	Cover    string    `gorm:"type:text;not null"` // 封面文件名/地址
	UploadAt time.Time `gorm:"not null;index"`
	UserID   string    `gorm:"type:char(36);not null;index"`

	// 外键UserID和User表的ID
	User *User `gorm:"foreignKey:UserID;references:ID"`
}

func (Video) TableName() string {
	return "videos"
}
