package util

import (
	"strconv"
)

// ParseUint 将路径参数转换为无符号整数
func ParseUint(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// TruncateText shortens s to max runes, appending an ellipsis when cut.
func TruncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
