package mock_sms

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SMSSender struct {
	mock.Mock
}

func (m *SMSSender) SendDirect(ctx context.Context, phone string, text string) error {
	args := m.Called(ctx, phone, text)

	return args.Error(0)
}
