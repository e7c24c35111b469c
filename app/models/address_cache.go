package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddressCache cache kết quả parse địa chỉ
type AddressCache struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Fingerprint      string             `bson:"fingerprint" json:"fingerprint"`             // sha256(normalized|engine|model)
	RawAddress       string             `bson:"raw_address" json:"raw_address"`             // Địa chỉ gốc
	NormalizedText   string             `bson:"normalized_text" json:"normalized_text"`     // Văn bản đã chuẩn hoá
	Result           AddressResult      `bson:"result" json:"result"`                       // Kết quả parse
	GazetteerVersion string             `bson:"gazetteer_version" json:"gazetteer_version"` // Phiên bản gazetteer
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	LastAccessed     time.Time          `bson:"last_accessed" json:"last_accessed"`
	AccessCount      int                `bson:"access_count" json:"access_count"`
}

// NewAddressCache tạo mới một AddressCache
func NewAddressCache(fingerprint string, result AddressResult) *AddressCache {
	now := time.Now()
	return &AddressCache{
		Fingerprint:      fingerprint,
		RawAddress:       result.Raw,
		NormalizedText:   result.Parsed.Text,
		Result:           result,
		GazetteerVersion: result.GazetteerVersion,
		CreatedAt:        now,
		LastAccessed:     now,
		AccessCount:      1,
	}
}

// UpdateAccess cập nhật thông tin truy cập
func (ac *AddressCache) UpdateAccess() {
	ac.LastAccessed = time.Now()
	ac.AccessCount++
}

// IsExpired kiểm tra cache có hết hạn không (dựa trên thời gian tạo)
func (ac *AddressCache) IsExpired(ttl time.Duration) bool {
	return time.Since(ac.CreatedAt) > ttl
}

// IsValidGazetteerVersion kiểm tra phiên bản gazetteer có khớp không
func (ac *AddressCache) IsValidGazetteerVersion(currentVersion string) bool {
	return ac.GazetteerVersion == currentVersion
}
