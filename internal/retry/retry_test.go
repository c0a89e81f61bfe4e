package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"code-auditor/internal/retry"

	"github.com/stretchr/testify/suite"
)

type RetrySuite struct {
	suite.Suite
}

func (s *RetrySuite) Test_Eventual_Success() {

	calls := 0

	err := retry.Do(
		context.Background(),
		3,
		1*time.Millisecond,
		func() error {
			calls++
			if calls < 2 {
				return errors.New("fail")
			}
			return nil
		},
	)

	s.NoError(err)
	s.Equal(2, calls)
}

func (s *RetrySuite) Test_Exhausted_ReturnsLastError() {

	calls := 0
	last := errors.New("still failing")

	err := retry.Do(
		context.Background(),
		3,
		1*time.Millisecond,
		func() error {
			calls++
			return last
		},
	)

	s.ErrorIs(err, last)
	s.Equal(3, calls)
}

func (s *RetrySuite) Test_CanceledContext_StopsEarly() {

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retry.Do(ctx, 3, time.Millisecond, func() error {
		calls++
		return errors.New("fail")
	})

	s.ErrorIs(err, context.Canceled)
	s.Equal(0, calls)
}

func TestRetrySuite(t *testing.T) {
	suite.Run(t, new(RetrySuite))
}
