package requests

// ParseAddressRequest request parse địa chỉ đơn lẻ
type ParseAddressRequest struct {
	Address string       `json:"address" binding:"required"` // Địa chỉ cần parse
	Options ParseOptions `json:"options,omitempty"`          // Tùy chọn parse
}

// ParseOptions tùy chọn parse
type ParseOptions struct {
	TokenizeEngine string `json:"tokenize_engine,omitempty"` // Tokenizer, rỗng là engine mặc định
	UseCache       bool   `json:"use_cache,omitempty"`       // Có sử dụng cache không
	ReturnEntities bool   `json:"return_entities,omitempty"` // Có trả về entities để hiển thị không
}

// BatchParseRequest request parse hàng loạt địa chỉ
type BatchParseRequest struct {
	Addresses []string     `json:"addresses" binding:"required,min=1,max=20000"` // Danh sách địa chỉ (tối đa 20k)
	Options   ParseOptions `json:"options,omitempty"`                            // Tùy chọn parse
}

// ResolveLocationRequest request chuẩn hoá một đoạn địa danh
type ResolveLocationRequest struct {
	Text       string `json:"text" binding:"required"`   // Đoạn văn bản chứa địa danh
	Option     string `json:"option" binding:"required"` // province | district | subdistrict
	Province   string `json:"province,omitempty"`        // Tỉnh đã biết (ngữ cảnh)
	PostalCode string `json:"postal_code,omitempty"`     // Mã bưu chính đã biết (ngữ cảnh)
}

// SeedGazetteerRequest request seed gazetteer
type SeedGazetteerRequest struct {
	RebuildIndexes bool `json:"rebuild_indexes,omitempty"` // Có rebuild index Meilisearch không
}

// InvalidateCacheRequest request xoá cache của phiên bản gazetteer khác
type InvalidateCacheRequest struct {
	KeepVersion string `json:"keep_version,omitempty"` // Rỗng là phiên bản hiện tại
}
