package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gymhub/members-api/internal/apperr"
	"github.com/gymhub/members-api/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetMember(ctx context.Context, id string) (*models.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}
func (m *RepoMock) ListAttendedActivities(ctx context.Context, memberID string) ([]models.AttendedActivity, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttendedActivity), args.Error(1)
}

type ClientMock struct{ mock.Mock }

func (m *ClientMock) ListAttendances(ctx context.Context, memberID string) ([]models.RemoteAttendance, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RemoteAttendance), args.Error(1)
}
func (m *ClientMock) GetActivity(ctx context.Context, activityID string) (map[string]any, error) {
	args := m.Called(ctx, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func wrapNoRows() error {
	return fmt.Errorf("storage.GetMember: %w", sql.ErrNoRows)
}

func TestLocalSource_History(t *testing.T) {
	t.Run("missing member", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetMember", mock.Anything, "nope").Return(nil, wrapNoRows()).Once()

		s := NewLocalSource(repo, noopLogger())
		_, err := s.History(context.Background(), "nope")

		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("records and total", func(t *testing.T) {
		records := []models.AttendedActivity{
			{ID: "a2", Date: time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC), Activity: models.Activity{Name: "Spinning"}},
			{ID: "a1", Date: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), Activity: models.Activity{Name: "Yoga"}},
		}

		repo := new(RepoMock)
		repo.On("GetMember", mock.Anything, "m1").Return(&models.Member{ID: "m1"}, nil).Once()
		repo.On("ListAttendedActivities", mock.Anything, "m1").Return(records, nil).Once()

		s := NewLocalSource(repo, noopLogger())
		history, err := s.History(context.Background(), "m1")

		require.NoError(t, err)
		assert.Equal(t, 2, history.Total)
		assert.Equal(t, records, history.Records)
		assert.Nil(t, history.Member)
		repo.AssertExpectations(t)
	})

	t.Run("member with no attendances", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetMember", mock.Anything, "m1").Return(&models.Member{ID: "m1"}, nil).Once()
		repo.On("ListAttendedActivities", mock.Anything, "m1").Return([]models.AttendedActivity{}, nil).Once()

		s := NewLocalSource(repo, noopLogger())
		history, err := s.History(context.Background(), "m1")

		require.NoError(t, err)
		assert.Equal(t, 0, history.Total)
	})
}

func newRemote(repo *RepoMock, client *ClientMock) *RemoteSource {
	s := NewRemoteSource(repo, client, noopLogger())
	s.nowFn = func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestRemoteSource_History(t *testing.T) {
	member := &models.Member{
		ID:               "m1",
		Name:             "Ana",
		BirthDate:        time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC),
		RegistrationDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("missing member", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetMember", mock.Anything, "nope").Return(nil, wrapNoRows()).Once()

		s := newRemote(repo, new(ClientMock))
		_, err := s.History(context.Background(), "nope")

		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("attendance service failure is an aggregation error", func(t *testing.T) {
		repo := new(RepoMock)
		client := new(ClientMock)
		repo.On("GetMember", mock.Anything, "m1").Return(member, nil).Once()
		client.On("ListAttendances", mock.Anything, "m1").
			Return(nil, errors.New("connection refused")).Once()

		s := newRemote(repo, client)
		_, err := s.History(context.Background(), "m1")

		require.Error(t, err)
		assert.Equal(t, apperr.KindAggregation, apperr.KindOf(err))
	})

	t.Run("filters asistio=false and deduplicates activity ids", func(t *testing.T) {
		repo := new(RepoMock)
		client := new(ClientMock)
		repo.On("GetMember", mock.Anything, "m1").Return(member, nil).Once()
		client.On("ListAttendances", mock.Anything, "m1").Return([]models.RemoteAttendance{
			{MemberID: "m1", ActivityID: "yoga", Attended: true},
			{MemberID: "m1", ActivityID: "spinning", Attended: false},
			{MemberID: "m1", ActivityID: "yoga", Attended: true},
			{MemberID: "m1", ActivityID: "pilates", Attended: true},
		}, nil).Once()
		client.On("GetActivity", mock.Anything, "yoga").
			Return(map[string]any{"nombre": "Yoga"}, nil).Once()
		client.On("GetActivity", mock.Anything, "pilates").
			Return(map[string]any{"nombre": "Pilates"}, nil).Once()

		s := newRemote(repo, client)
		history, err := s.History(context.Background(), "m1")

		require.NoError(t, err)
		assert.Equal(t, 2, history.Total)
		require.Len(t, history.Details, 2)
		assert.Equal(t, "Yoga", history.Details[0]["nombre"])
		assert.Equal(t, "Pilates", history.Details[1]["nombre"])
		require.NotNil(t, history.Member)
		assert.Equal(t, 35, history.Member.Age)
		client.AssertExpectations(t)
	})

	t.Run("activity detail failure yields no partial result", func(t *testing.T) {
		repo := new(RepoMock)
		client := new(ClientMock)
		repo.On("GetMember", mock.Anything, "m1").Return(member, nil).Once()
		client.On("ListAttendances", mock.Anything, "m1").Return([]models.RemoteAttendance{
			{MemberID: "m1", ActivityID: "yoga", Attended: true},
			{MemberID: "m1", ActivityID: "pilates", Attended: true},
		}, nil).Once()
		client.On("GetActivity", mock.Anything, "yoga").
			Return(map[string]any{"nombre": "Yoga"}, nil).Maybe()
		client.On("GetActivity", mock.Anything, "pilates").
			Return(nil, errors.New("status 503")).Once()

		s := newRemote(repo, client)
		history, err := s.History(context.Background(), "m1")

		require.Error(t, err)
		assert.Nil(t, history)
		assert.Equal(t, apperr.KindAggregation, apperr.KindOf(err))
	})

	t.Run("no attended rows", func(t *testing.T) {
		repo := new(RepoMock)
		client := new(ClientMock)
		repo.On("GetMember", mock.Anything, "m1").Return(member, nil).Once()
		client.On("ListAttendances", mock.Anything, "m1").Return([]models.RemoteAttendance{
			{MemberID: "m1", ActivityID: "yoga", Attended: false},
		}, nil).Once()

		s := newRemote(repo, client)
		history, err := s.History(context.Background(), "m1")

		require.NoError(t, err)
		assert.Equal(t, 0, history.Total)
		assert.Empty(t, history.Details)
	})
}
