package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// paramInt64 解析路径参数为 int64；解析失败返回 (0, false)
func paramInt64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
