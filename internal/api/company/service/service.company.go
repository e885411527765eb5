// Package companysvc chứa service cho domain Company.
// File: service.company.go
package companysvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/EldarGGG/nexus-back/internal/api/base/service"
	companymodels "github.com/EldarGGG/nexus-back/internal/api/company/models"
	"github.com/EldarGGG/nexus-back/internal/common"
	"github.com/EldarGGG/nexus-back/internal/global"
)

// CompanyService là cấu trúc chứa các phương thức liên quan đến công ty (tenant)
type CompanyService struct {
	*basesvc.BaseServiceMongoImpl[companymodels.Company]
}

// NewCompanyService tạo mới CompanyService
func NewCompanyService() (*CompanyService, error) {
	companyCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Companies)
	if !exist {
		return nil, fmt.Errorf("failed to get companies collection: %v", common.ErrNotFound)
	}

	return &CompanyService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[companymodels.Company](companyCollection),
	}, nil
}

// FindActiveById tìm công ty theo ID và kiểm tra trạng thái hoạt động.
// Công ty bị suspended được coi như không tồn tại đối với pipeline webhook.
func (s *CompanyService) FindActiveById(ctx context.Context, id primitive.ObjectID) (*companymodels.Company, error) {
	company, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	if company.Status != companymodels.CompanyStatusActive {
		return nil, common.NewError(common.ErrCodeBusinessState,
			"Công ty đang bị tạm ngưng", common.StatusForbidden, nil)
	}
	return &company, nil
}

// CreateCompany tạo mới một công ty với trạng thái mặc định là active
func (s *CompanyService) CreateCompany(ctx context.Context, name string, metadata map[string]interface{}) (*companymodels.Company, error) {
	company := companymodels.Company{
		Name:     name,
		Status:   companymodels.CompanyStatusActive,
		Metadata: metadata,
	}
	created, err := s.InsertOne(ctx, company)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStatus cập nhật trạng thái của công ty (active / suspended)
func (s *CompanyService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if status != companymodels.CompanyStatusActive && status != companymodels.CompanyStatusSuspended {
		return common.ErrInvalidInput
	}
	_, err := s.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}}, nil)
	return err
}
