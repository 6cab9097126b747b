package persistent

import (
	"encoding/json"

	"homefind/internal/entity"
	"homefind/internal/model"
)

func ToPropertyEntity(m *model.PropertyModel) *entity.Property {
	if m == nil {
		return nil
	}

	p := &entity.Property{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Title:        m.Title,
		Description:  m.Description,
		PropertyType: entity.PropertyType(m.PropertyType),
		ListingType:  entity.ListingType(m.ListingType),
		Address:      m.Address,
		City:         m.City,
		State:        m.State,
		LGA:          m.LGA,
		Landmark:     m.Landmark,
		Price:        m.Price,
		Bedrooms:     m.Bedrooms,
		Bathrooms:    m.Bathrooms,
		Toilets:      m.Toilets,
		SquareMeters: m.SquareMeters,
		PlotSize:     m.PlotSize,
		MainImage:    m.MainImage,
		VerificationStatus: entity.VerificationStatus(m.VerificationStatus),
		VerifiedBy:         m.VerifiedBy,
		VerifiedAt:         m.VerifiedAt,
		ViewCount:          m.ViewCount,
		Version:            m.Version,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}

	if m.VerificationNotes != nil {
		p.VerificationNotes = *m.VerificationNotes
	}

	p.Features = []string{}
	if m.Features != "" {
		_ = json.Unmarshal([]byte(m.Features), &p.Features)
	}

	p.OwnershipDocuments = []entity.OwnershipDocument{}
	if m.OwnershipDocuments != "" {
		_ = json.Unmarshal([]byte(m.OwnershipDocuments), &p.OwnershipDocuments)
	}

	if m.VideoURL != "" {
		p.Video = &entity.PropertyVideo{
			VideoURL: m.VideoURL,
			Provider: entity.VideoProvider(m.VideoProvider),
		}
	}

	if len(m.Images) > 0 {
		p.Images = make([]entity.PropertyImage, len(m.Images))
		for i, img := range m.Images {
			p.Images[i] = ToPropertyImageEntity(&img)
		}
	}

	return p
}

func ToPropertyModel(e *entity.Property) *model.PropertyModel {
	if e == nil {
		return nil
	}

	m := &model.PropertyModel{
		ID:           e.ID,
		OwnerID:      e.OwnerID,
		Title:        e.Title,
		Description:  e.Description,
		PropertyType: string(e.PropertyType),
		ListingType:  string(e.ListingType),
		Address:      e.Address,
		City:         e.City,
		State:        e.State,
		LGA:          e.LGA,
		Landmark:     e.Landmark,
		Price:        e.Price,
		Bedrooms:     e.Bedrooms,
		Bathrooms:    e.Bathrooms,
		Toilets:      e.Toilets,
		SquareMeters: e.SquareMeters,
		PlotSize:     e.PlotSize,
		MainImage:    e.MainImage,
		VerificationStatus: string(e.VerificationStatus),
		VerifiedBy:         e.VerifiedBy,
		VerifiedAt:         e.VerifiedAt,
		ViewCount:          e.ViewCount,
		Version:            e.Version,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}

	if e.VerificationNotes != "" {
		notes := e.VerificationNotes
		m.VerificationNotes = &notes
	}

	features := e.Features
	if features == nil {
		features = []string{}
	}
	featuresJSON, _ := json.Marshal(features)
	m.Features = string(featuresJSON)

	docs := e.OwnershipDocuments
	if docs == nil {
		docs = []entity.OwnershipDocument{}
	}
	docsJSON, _ := json.Marshal(docs)
	m.OwnershipDocuments = string(docsJSON)

	if e.Video != nil {
		m.VideoURL = e.Video.VideoURL
		m.VideoProvider = string(e.Video.Provider)
	}

	if len(e.Images) > 0 {
		m.Images = make([]model.PropertyImageModel, len(e.Images))
		for i, img := range e.Images {
			m.Images[i] = *ToPropertyImageModel(&img)
		}
	}

	return m
}

func ToPropertyImageEntity(m *model.PropertyImageModel) entity.PropertyImage {
	if m == nil {
		return entity.PropertyImage{}
	}

	return entity.PropertyImage{
		ID:           m.ID,
		PropertyID:   m.PropertyID,
		ImageURL:     m.ImageURL,
		IsMain:       m.IsMain,
		Caption:      m.Caption,
		DisplayOrder: m.DisplayOrder,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToPropertyImageModel(e *entity.PropertyImage) *model.PropertyImageModel {
	if e == nil {
		return nil
	}

	return &model.PropertyImageModel{
		ID:           e.ID,
		PropertyID:   e.PropertyID,
		ImageURL:     e.ImageURL,
		IsMain:       e.IsMain,
		Caption:      e.Caption,
		DisplayOrder: e.DisplayOrder,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	u := &entity.User{
		ID:                m.ID,
		Email:             m.Email,
		PhoneNumber:       m.PhoneNumber,
		FullName:          m.FullName,
		Password:          m.PasswordHash,
		VerificationLevel: entity.VerificationLevel(m.VerificationLevel),
		IsActive:          m.IsActive,
		Address:           m.Address,
		City:              m.City,
		State:             m.State,
		LGA:               m.LGA,
		PhoneVerificationCode:   m.PhoneVerificationCode,
		PhoneVerificationExpiry: m.PhoneVerificationExpiry,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}

	u.Capabilities = []entity.Capability{}
	if m.Capabilities != "" {
		_ = json.Unmarshal([]byte(m.Capabilities), &u.Capabilities)
	}

	return u
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	m := &model.UserModel{
		ID:                e.ID,
		Email:             e.Email,
		PhoneNumber:       e.PhoneNumber,
		FullName:          e.FullName,
		PasswordHash:      e.Password,
		VerificationLevel: string(e.VerificationLevel),
		IsActive:          e.IsActive,
		Address:           e.Address,
		City:              e.City,
		State:             e.State,
		LGA:               e.LGA,
		PhoneVerificationCode:   e.PhoneVerificationCode,
		PhoneVerificationExpiry: e.PhoneVerificationExpiry,
		CreatedAt:               e.CreatedAt,
		UpdatedAt:               e.UpdatedAt,
	}

	caps := e.Capabilities
	if caps == nil {
		caps = []entity.Capability{}
	}
	capsJSON, _ := json.Marshal(caps)
	m.Capabilities = string(capsJSON)

	return m
}
