package usecase

import (
	"context"
	"io"

	"homefind/internal/entity"
	"homefind/internal/repo/persistent"
	"homefind/internal/search"

	"github.com/stretchr/testify/mock"
)

// MockPropertyRepository is a mock implementation of persistent.PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *entity.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Property), args.Error(1)
}

func (m *MockPropertyRepository) GetByOwnerID(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Property, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Property), args.Error(1)
}

func (m *MockPropertyRepository) List(ctx context.Context, params search.FilterParams) ([]*entity.Property, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Property), args.Error(1)
}

func (m *MockPropertyRepository) ListPending(ctx context.Context, limit, offset int) ([]*entity.Property, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Property), args.Error(1)
}

func (m *MockPropertyRepository) Update(ctx context.Context, property *entity.Property, expectedVersion int) error {
	args := m.Called(ctx, property, expectedVersion)
	return args.Error(0)
}

func (m *MockPropertyRepository) ReplaceImages(ctx context.Context, propertyID string, images []entity.PropertyImage) error {
	args := m.Called(ctx, propertyID, images)
	return args.Error(0)
}

func (m *MockPropertyRepository) IncrementViewCount(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ persistent.PropertyRepository = (*MockPropertyRepository)(nil)

// MockUserRepository is a mock implementation of persistent.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*entity.User, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

// MockFileStore is a mock implementation of FileStore
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) UploadFile(key string, file io.Reader, contentType string) (string, error) {
	args := m.Called(key, file, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) DeleteFile(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockFileStore) KeyFromURL(url string) string {
	args := m.Called(url)
	return args.String(0)
}

var _ FileStore = (*MockFileStore)(nil)

// MockListingCache is a mock implementation of ListingCache
type MockListingCache struct {
	mock.Mock
}

func (m *MockListingCache) Get(ctx context.Context, listingID string) (*entity.Property, bool) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*entity.Property), args.Bool(1)
}

func (m *MockListingCache) Set(ctx context.Context, property *entity.Property) {
	m.Called(ctx, property)
}

func (m *MockListingCache) Delete(ctx context.Context, listingID string) {
	m.Called(ctx, listingID)
}

var _ ListingCache = (*MockListingCache)(nil)

// MockResultPublisher is a mock implementation of ResultPublisher
type MockResultPublisher struct {
	mock.Mock
}

func (m *MockResultPublisher) PublishVerificationResult(task map[string]interface{}) error {
	args := m.Called(task)
	return args.Error(0)
}

var _ ResultPublisher = (*MockResultPublisher)(nil)
