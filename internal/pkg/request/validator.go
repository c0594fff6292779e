package request

import (
	"regexp"
	"sync"

	cErr "voxrelay/internal/pkg/error"

	"github.com/go-playground/validator/v10"
)

type Validator interface {
	GetMessages() ValidatorMessages
}

type ValidatorMessages map[string]string

var (
	reg = regexp.MustCompile(`\[\d+\]`)

	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate 以 struct tag 驗證，錯誤時轉為 400
func Validate(request any) *cErr.Error {
	if err := instance().Struct(request); err != nil {
		return GetError(request, err)
	}
	return nil
}

// GetError 從請求和錯誤中獲取錯誤信息
func GetError(request any, err error) *cErr.Error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return cErr.ValidateErr("Parameter error")
	}
	v, isValidator := request.(Validator)
	for _, fe := range errs {
		if isValidator {
			field := reg.ReplaceAllString(fe.Field(), ".*")
			if message, exist := v.GetMessages()[field+"."+fe.Tag()]; exist {
				return cErr.ValidateErr(message)
			}
		}
		return cErr.ValidateErr(fe.Error())
	}
	return cErr.ValidateErr("Parameter error")
}
