package convert

import (
	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
)

// StructAssign copies same-named fields from src into dst and returns dst
// StructAssign 把 src 与 dst 的同名字段值复制到 dst 中并返回 dst
func StructAssign(src any, dst any) any {
	copier.Copy(dst, src)
	return dst
}

// StructToMap converts a struct to a map through JSON
// StructToMap 通过 JSON 将结构体转换为 map
func StructToMap(param any, data map[string]interface{}) error {
	str, err := sonic.Marshal(param)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(str, &data)
}
