package handler

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var setupValidatorOnce sync.Once

// SetupValidator 让校验错误里的字段名使用 json/form 标签，和客户端看到的字段名一致
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
	})
}

func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return field.Name
}

// bindingErrors 把绑定/校验错误转成 字段 -> 提示 的形式
// 提示优先取请求结构体字段上的 msg 标签
func bindingErrors(req any, err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": "请求格式错误"}
	}

	reqType := reflect.TypeOf(req)
	for reqType != nil && reqType.Kind() == reflect.Ptr {
		reqType = reqType.Elem()
	}

	detail := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fe.Field()
		if parts := strings.SplitN(fe.Namespace(), ".", 2); len(parts) == 2 {
			key = parts[1]
		}
		detail[key] = fieldMessage(reqType, fe)
	}
	return detail
}

func fieldMessage(reqType reflect.Type, fe validator.FieldError) string {
	if reqType != nil && reqType.Kind() == reflect.Struct {
		// 只有顶层字段才查 msg 标签，嵌套字段用通用提示
		if strings.Count(fe.StructNamespace(), ".") == 1 {
			if field, ok := reqType.FieldByName(fe.StructField()); ok {
				if msg := field.Tag.Get("msg"); msg != "" {
					return msg
				}
			}
		}
	}
	switch fe.Tag() {
	case "required":
		return "缺少参数"
	case "min", "max", "len":
		return "长度或数值超出范围"
	}
	return "参数不合法"
}
