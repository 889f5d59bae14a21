package utils

import (
	"strconv"

	"github.com/wyfcoding/storefront/pkg/errorsx"
)

// MaxQty 单次数量变更的绝对值上限
const MaxQty = 1_000_000

// ParseID 解析正整数 ID
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errorsx.Validationf("invalid id %q", raw)
	}
	return uint(id), nil
}

// ParseQty 解析必填的有符号数量参数，present 表示参数是否出现
func ParseQty(raw string, present bool) (int, error) {
	if !present {
		return 0, errorsx.Validation("qty is required")
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errorsx.Validationf("invalid qty %q", raw)
	}
	if err := CheckQty(qty); err != nil {
		return 0, err
	}
	return qty, nil
}

// CheckQty 校验数量变更不超过 MaxQty
func CheckQty(qty int) error {
	if qty > MaxQty || qty < -MaxQty {
		return errorsx.Validationf("qty must be between %d and %d", -MaxQty, MaxQty)
	}
	return nil
}

// ParseIntDefault 解析可选整数参数，为空时返回 def
func ParseIntDefault(raw, name string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errorsx.Validationf("invalid %s %q", name, raw)
	}
	return v, nil
}
