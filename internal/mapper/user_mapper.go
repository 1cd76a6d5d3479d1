package mapper

import (
	"encoding/json"

	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/model"

	"gorm.io/datatypes"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	var cities []string
	if len(u.SelectedCities) > 0 {
		// Invalid JSON in the column degrades to an empty selection.
		_ = json.Unmarshal(u.SelectedCities, &cities)
	}
	userType := ""
	if u.UserType != nil {
		userType = *u.UserType
	}
	return &entity.User{
		Id:             u.Id,
		Code:           u.Code,
		Email:          u.Email,
		PasswordHash:   u.Password,
		Role:           entity.UserRole(u.Role),
		UserType:       userType,
		IsAdmin:        u.IsAdmin,
		IsBlocked:      u.IsBlocked,
		OrgId:          u.OrgId,
		Name:           u.Name,
		Username:       u.Username,
		Department:     u.Department,
		Memo:           u.Memo,
		PayPayId:       u.PayPayId,
		PayPayStatus:   entity.PayPayStatus(u.PayPayStatus),
		SelectedCities: cities,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	cities, _ := json.Marshal(u.SelectedCities)
	var userType *string
	if u.UserType != "" {
		t := u.UserType
		userType = &t
	}
	return &model.User{
		Id:             u.Id,
		Code:           u.Code,
		Email:          u.Email,
		Password:       u.PasswordHash,
		Role:           string(u.Role),
		UserType:       userType,
		IsAdmin:        u.IsAdmin,
		IsBlocked:      u.IsBlocked,
		OrgId:          u.OrgId,
		Name:           u.Name,
		Username:       u.Username,
		Department:     u.Department,
		Memo:           u.Memo,
		PayPayId:       u.PayPayId,
		PayPayStatus:   string(u.PayPayStatus),
		SelectedCities: datatypes.JSON(cities),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
