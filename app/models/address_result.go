package models

import (
	"github.com/thai-address-parser/internal/tagger"
)

// ParsedAddress các trường của một địa chỉ giao hàng, chuỗi rỗng là không có
type ParsedAddress struct {
	Text        string `json:"text" bson:"text"`                 // Văn bản đã chuẩn hoá
	Name        string `json:"name" bson:"name"`                 // Tên người nhận
	Address     string `json:"address" bson:"address"`           // Số nhà, đường, ngõ
	Location    string `json:"location" bson:"location"`         // Đoạn LOC gốc
	Subdistrict string `json:"subdistrict" bson:"subdistrict"`   // ตำบล / แขวง
	District    string `json:"district" bson:"district"`         // อำเภอ / เขต
	Province    string `json:"province" bson:"province"`         // จังหวัด
	PostalCode  string `json:"postal_code" bson:"postal_code"`   // Mã bưu chính
	PhoneNumber string `json:"phone_number" bson:"phone_number"` // Số điện thoại
	Email       string `json:"email" bson:"email"`
}

// IsEmpty không có trường nào được điền
func (p ParsedAddress) IsEmpty() bool {
	return p == ParsedAddress{}
}

// AddressResult kết quả parse đầy đủ
type AddressResult struct {
	Raw              string          `json:"raw" bson:"raw"`                                   // Địa chỉ gốc
	Parsed           ParsedAddress   `json:"parsed" bson:"parsed"`                             // Các trường đã tách
	Tokens           []string        `json:"tokens" bson:"tokens"`                             // Token trên văn bản đã chuẩn hoá
	Tags             []tagger.Tag    `json:"tags" bson:"tags"`                                 // Nhãn từng token
	Entities         []tagger.Entity `json:"entities,omitempty" bson:"-"`                      // Chỉ có khi được yêu cầu
	Engine           string          `json:"engine" bson:"engine"`                             // Tokenizer đã dùng
	ModelVersion     string          `json:"model_version,omitempty" bson:"model_version"`     // Fingerprint model CRF
	GazetteerVersion string          `json:"gazetteer_version,omitempty" bson:"gazetteer_version"`
}
