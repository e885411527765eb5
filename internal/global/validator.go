package global

import (
	"github.com/go-playground/validator/v10"
)

// Danh sách platform được hỗ trợ, dùng cho custom validation "platform"
var supportedPlatforms = map[string]bool{
	"telegram":  true,
	"whatsapp":  true,
	"instagram": true,
	"facebook":  true,
	"signal":    true,
}

// InitValidator khởi tạo validator toàn cục và đăng ký các custom validators.
func InitValidator() {
	Validate = validator.New()

	// platform: giá trị phải là một platform được hỗ trợ
	_ = Validate.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
		return supportedPlatforms[fl.Field().String()]
	})
}

// IsSupportedPlatform kiểm tra platform có được hỗ trợ không.
func IsSupportedPlatform(platform string) bool {
	return supportedPlatforms[platform]
}
