package engagementservice

import (
	"github.com/quillfeed/quillfeed/internal/common"
)

func validateCommentContent(v *common.Validator, content string) {
	v.Check(v.CheckNotBlank(content), "content", "must be provided")
	v.Check(v.CheckStringLength(content, 1, 2000), "content", "must be between 1 and 2000 characters long")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
