package util

import "strconv"

// PathID 路由参数里的记录 id。非法输入按 0 处理，
// 查询层对 id=0 查不到记录，最终表现为 404。
func PathID(raw string) uint {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
