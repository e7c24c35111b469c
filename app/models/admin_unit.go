package models

import (
	"time"

	"github.com/thai-address-parser/internal/gazetteer"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminUnit đại diện cho đơn vị hành chính Thái Lan (จังหวัด, อำเภอ/เขต, ตำบล/แขวง)
type AdminUnit struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AdminID          string             `bson:"admin_id" json:"admin_id"`                   // ID theo cấp hành chính
	Level            int                `bson:"level" json:"level"`                         // 1=province, 2=district, 3=subdistrict
	Name             string             `bson:"name" json:"name"`                           // Tên đơn vị hành chính
	NormalizedName   string             `bson:"normalized_name" json:"normalized_name"`     // Tên phiên âm Latin
	Province         string             `bson:"province" json:"province"`                   // Tỉnh chứa đơn vị
	District         string             `bson:"district,omitempty" json:"district,omitempty"` // Chỉ có với ตำบล
	PostalCodes      []string           `bson:"postal_codes" json:"postal_codes"`
	GazetteerVersion string             `bson:"gazetteer_version" json:"gazetteer_version"` // Phiên bản gazetteer (SHA256)
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// Level constants
const (
	LevelProvince    = gazetteer.LevelProvince
	LevelDistrict    = gazetteer.LevelDistrict
	LevelSubdistrict = gazetteer.LevelSubdistrict
)

// NewAdminUnit tạo AdminUnit từ đơn vị của gazetteer
func NewAdminUnit(u gazetteer.Unit, normalizedName, version string, now time.Time) AdminUnit {
	return AdminUnit{
		AdminID:          u.ID,
		Level:            u.Level,
		Name:             u.Name,
		NormalizedName:   normalizedName,
		Province:         u.Province,
		District:         u.District,
		PostalCodes:      u.PostalCodes,
		GazetteerVersion: version,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// IsValidLevel kiểm tra level có hợp lệ không
func (au *AdminUnit) IsValidLevel() bool {
	return au.Level >= LevelProvince && au.Level <= LevelSubdistrict
}

// GetFullPath trả về đường dẫn đầy đủ từ tỉnh xuống
func (au *AdminUnit) GetFullPath() string {
	switch au.Level {
	case LevelProvince:
		return au.Name
	case LevelDistrict:
		return au.Province + " > " + au.Name
	}
	return au.Province + " > " + au.District + " > " + au.Name
}
