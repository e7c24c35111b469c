// Package tagger gán nhãn cho chuỗi token thông qua một Classifier bên ngoài
// và gộp các nhãn liên tiếp thành span.
package tagger

import "fmt"

// Tag nhãn của một token
type Tag string

// Tập nhãn cố định, do model đã train quy định
const (
	TagName  Tag = "NAME"
	TagAddr  Tag = "ADDR"
	TagLoc   Tag = "LOC"
	TagPost  Tag = "POST"
	TagPhone Tag = "PHONE"
	TagEmail Tag = "EMAIL"
	TagOther Tag = "O"
)

// AllTags danh sách nhãn theo thứ tự hiển thị
var AllTags = []Tag{TagName, TagAddr, TagLoc, TagPost, TagPhone, TagEmail, TagOther}

// Colors màu hiển thị cho từng nhãn (không có OTHER)
var Colors = map[Tag]string{
	TagName:  "#fbd46d",
	TagAddr:  "#ff847c",
	TagLoc:   "#87d4c5",
	TagPost:  "#def4f0",
	TagPhone: "#ffbffe",
	TagEmail: "#91a6b8",
}

// ParseTag chuyển chuỗi từ classifier thành Tag, từ chối nhãn lạ
func ParseTag(s string) (Tag, error) {
	switch t := Tag(s); t {
	case TagName, TagAddr, TagLoc, TagPost, TagPhone, TagEmail, TagOther:
		return t, nil
	}
	return "", fmt.Errorf("nhãn không hợp lệ: %q", s)
}
