// Package models chứa các model cho domain Company (tenant).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của công ty
const (
	CompanyStatusActive    = "active"    // Đang hoạt động
	CompanyStatusSuspended = "suspended" // Tạm ngưng, webhook bị từ chối xử lý
)

// Company đại diện cho một công ty (tenant) trong hệ thống.
// Mọi hội thoại, tin nhắn và cấu hình kênh chat đều thuộc về một công ty.
type Company struct {
	ID     primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"` // ID của công ty
	Name   string                 `json:"name" bson:"name" index:"text"`     // Tên công ty
	Status string                 `json:"status" bson:"status" index:"single:1"` // Trạng thái: active / suspended
	Metadata map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"` // Thông tin bổ sung

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
