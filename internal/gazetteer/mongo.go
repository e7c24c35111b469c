package gazetteer

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Cấp đơn vị hành chính
const (
	LevelProvince    = 1
	LevelDistrict    = 2
	LevelSubdistrict = 3
)

// AdminUnitsCollection collection chứa đơn vị hành chính
const AdminUnitsCollection = "admin_units"

// unitDoc các field cần để dựng lại Record từ một đơn vị cấp xã
type unitDoc struct {
	Name        string   `bson:"name"`
	Province    string   `bson:"province"`
	District    string   `bson:"district"`
	PostalCodes []string `bson:"postal_codes"`
}

// MongoSource đọc gazetteer từ collection admin_units
type MongoSource struct {
	collection *mongo.Collection
	version    string
}

// NewMongoSource tạo mới MongoSource. version rỗng thì đọc mọi phiên bản.
func NewMongoSource(db *mongo.Database, version string) *MongoSource {
	return &MongoSource{collection: db.Collection(AdminUnitsCollection), version: version}
}

// Records mỗi đơn vị cấp xã sinh một Record cho mỗi mã bưu chính
func (s *MongoSource) Records(ctx context.Context) ([]Record, error) {
	filter := bson.M{"level": LevelSubdistrict}
	if s.version != "" {
		filter["gazetteer_version"] = s.version
	}
	opts := options.Find().SetSort(bson.D{{Key: "admin_id", Value: 1}})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("lỗi query admin_units: %w", err)
	}
	defer cursor.Close(ctx)

	var records []Record
	for cursor.Next(ctx) {
		var doc unitDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("lỗi decode admin unit: %w", err)
		}
		records = append(records, unitRecords(doc)...)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("lỗi cursor admin_units: %w", err)
	}
	return records, nil
}

func unitRecords(doc unitDoc) []Record {
	if len(doc.PostalCodes) == 0 {
		return []Record{{Province: doc.Province, District: doc.District, Subdistrict: doc.Name}}
	}
	out := make([]Record, 0, len(doc.PostalCodes))
	for _, code := range doc.PostalCodes {
		out = append(out, Record{
			Province:    doc.Province,
			District:    doc.District,
			Subdistrict: doc.Name,
			PostalCode:  code,
		})
	}
	return out
}
