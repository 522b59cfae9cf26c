package blogservice

import (
	"github.com/quillfeed/quillfeed/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(v.CheckNotBlank(title), "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 200), "title", "must be between 1 and 200 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(v.CheckNotBlank(content), "content", "must be provided")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
