package mocks

import (
	"context"
	"io"

	"couplesite/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockVoiceMailService struct {
	mock.Mock
}

func (m *MockVoiceMailService) Ingest(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*model.VoiceMail, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VoiceMail), args.Error(1)
}

func (m *MockVoiceMailService) List(ctx context.Context) ([]model.VoiceMail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VoiceMail), args.Error(1)
}

func (m *MockVoiceMailService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
