package mocks

import (
	"context"

	"couplesite/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockVoiceMailRepository struct {
	mock.Mock
}

func (m *MockVoiceMailRepository) Create(ctx context.Context, vm *model.VoiceMail) (*model.VoiceMail, error) {
	args := m.Called(ctx, vm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VoiceMail), args.Error(1)
}

func (m *MockVoiceMailRepository) List(ctx context.Context) ([]model.VoiceMail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VoiceMail), args.Error(1)
}

func (m *MockVoiceMailRepository) FindByID(ctx context.Context, id string) (*model.VoiceMail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VoiceMail), args.Error(1)
}

func (m *MockVoiceMailRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVoiceMailRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockVoiceMailRepository) Oldest(ctx context.Context) (*model.VoiceMail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VoiceMail), args.Error(1)
}
